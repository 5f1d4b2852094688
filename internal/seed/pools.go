package seed

import "github.com/yungbote/rentals-backend/internal/domain/rental"

var firstNames = []string{
	"John", "Jane", "Mike", "Sarah", "David", "Lisa", "Chris", "Emma",
	"Alex", "Maria", "Tom", "Anna", "James", "Sophie", "Robert", "Lucy",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
	"Wilson", "Anderson", "Thomas",
}

var locations = []string{
	"New York, NY", "Los Angeles, CA", "Chicago, IL", "Houston, TX",
	"Phoenix, AZ", "Philadelphia, PA", "San Antonio, TX", "San Diego, CA",
	"Dallas, TX", "San Jose, CA", "Austin, TX", "Jacksonville, FL",
	"Fort Worth, TX", "Columbus, OH", "Charlotte, NC", "San Francisco, CA",
	"Indianapolis, IN", "Seattle, WA", "Denver, CO", "Washington, DC",
}

var titles = []string{
	"Cozy Apartment in Downtown", "Beautiful House with Garden",
	"Modern Condo with City View", "Luxury Villa by the Beach",
	"Charming Studio in Historic District", "Spacious Family Home",
	"Elegant Apartment with Balcony", "Rustic Cabin in the Woods",
	"Contemporary Loft", "Traditional House with Pool",
	"Penthouse with Panoramic Views", "Cottage by the Lake",
	"Urban Apartment Near Metro", "Mountain Retreat",
	"Beachfront Condo", "Historic Brownstone",
	"Modern Townhouse", "Garden Apartment",
	"Luxury Penthouse", "Cozy Bungalow",
}

var descriptions = []string{
	"A beautiful and comfortable space perfect for your stay.",
	"Modern amenities and stunning views await you here.",
	"Experience luxury and comfort in this amazing property.",
	"Perfect location with easy access to all attractions.",
	"A home away from home with all the comforts you need.",
	"Stunning architecture and thoughtful design throughout.",
	"Prime location with excellent transportation links.",
	"Peaceful retreat in the heart of the city.",
	"Spacious and well-appointed for your perfect getaway.",
	"Charming property with character and modern conveniences.",
}

var amenities = []string{
	"WiFi, Air Conditioning, Kitchen, Parking",
	"WiFi, Pool, Gym, Balcony",
	"WiFi, Hot Tub, Fireplace, Garden",
	"WiFi, Air Conditioning, Kitchen, Washer",
	"WiFi, Pool, Gym, Balcony, Parking",
	"WiFi, Hot Tub, Fireplace, Garden, Pool",
	"WiFi, Air Conditioning, Kitchen, Balcony",
	"WiFi, Pool, Gym, Parking, Washer",
	"WiFi, Hot Tub, Fireplace, Garden, Pool, Gym",
	"WiFi, Air Conditioning, Kitchen, Balcony, Parking",
}

// Empty entries are repeated so most bookings carry no request.
var specialRequests = []string{
	"", "Late check-in requested", "Early check-in if possible",
	"Quiet hours please", "Extra towels needed", "",
	"Pet-friendly accommodation", "Wheelchair accessible needed", "",
}

var comments = []string{
	"Excellent stay! Highly recommended.",
	"Great location and very clean.",
	"Perfect for our family vacation.",
	"Beautiful property with amazing views.",
	"Host was very responsive and helpful.",
	"Would definitely stay here again.",
	"Clean, comfortable, and well-equipped.",
	"Great value for money.",
	"Lovely place with character.",
	"Perfect location for exploring the city.",
	"Amazing amenities and great service.",
	"Very comfortable and spacious.",
	"Host went above and beyond.",
	"Beautiful property, highly recommend.",
	"Great experience overall.",
	"Clean, modern, and well-maintained.",
	"Perfect for a weekend getaway.",
	"Excellent communication from host.",
	"Lovely place with great atmosphere.",
	"Would book again in a heartbeat.",
}

var statusWeights = []struct {
	status rental.BookingStatus
	weight float64
}{
	{rental.BookingPending, 0.10},
	{rental.BookingConfirmed, 0.60},
	{rental.BookingCompleted, 0.25},
	{rental.BookingCancelled, 0.05},
}
