package rental

import "github.com/yungbote/rentals-backend/internal/domain/user"

// IsHost reports whether id hosts the listing the booking is for.
func IsHost(b *Booking, id user.Identity) bool {
	return b != nil && b.Listing != nil && id.Is(b.Listing.HostID)
}

// OwnsListing reports whether id is the listing's host.
func OwnsListing(l *Listing, id user.Identity) bool {
	return l != nil && id.Is(l.HostID)
}
