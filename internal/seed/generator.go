package seed

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/rentals-backend/internal/data/repos"
	"github.com/yungbote/rentals-backend/internal/data/store"
	"github.com/yungbote/rentals-backend/internal/domain/rental"
	"github.com/yungbote/rentals-backend/internal/domain/user"
	"github.com/yungbote/rentals-backend/internal/platform/dbctx"
	"github.com/yungbote/rentals-backend/internal/platform/logger"
)

// DefaultPassword is the plaintext password given to every generated user.
const DefaultPassword = "password123"

const maxRedraws = 50

type Options struct {
	Users    int
	Listings int
	Clear    bool
}

type Summary struct {
	Cleared  bool
	Users    int
	Listings int
	Bookings int
	Reviews  int
}

// Hasher turns a plaintext password into the stored hash.
type Hasher func(password string) (string, error)

func BcryptHasher(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

type Repos struct {
	Users    repos.UserRepo
	Listings repos.ListingRepo
	Bookings repos.BookingRepo
	Reviews  repos.ReviewRepo
}

// Generator fills the database with plausible marketplace data. Each phase
// commits in its own transaction.
type Generator struct {
	log   *logger.Logger
	tx    store.TxRunner
	repos Repos
	rng   *rand.Rand
	out   io.Writer

	Hash Hasher
	Now  func() time.Time
}

func NewGenerator(log *logger.Logger, tx store.TxRunner, r Repos, rng *rand.Rand, out io.Writer) *Generator {
	if out == nil {
		out = io.Discard
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{
		log:   log.With("service", "SeedGenerator"),
		tx:    tx,
		repos: r,
		rng:   rng,
		out:   out,
		Hash:  BcryptHasher,
		Now:   time.Now,
	}
}

func (g *Generator) Run(ctx context.Context, opts Options) (Summary, error) {
	var sum Summary
	if opts.Users < 1 {
		return sum, fmt.Errorf("at least one user is required, got %d", opts.Users)
	}
	if opts.Listings < 0 {
		return sum, fmt.Errorf("listing count must not be negative, got %d", opts.Listings)
	}

	if opts.Clear {
		g.printf("Clearing existing data...")
		if err := g.clear(ctx); err != nil {
			return sum, fmt.Errorf("clear: %w", err)
		}
		sum.Cleared = true
		g.printf("Existing data cleared.")
	}

	g.printf("Creating users...")
	users, err := g.createUsers(ctx, opts.Users)
	if err != nil {
		return sum, fmt.Errorf("create users: %w", err)
	}
	sum.Users = len(users)
	g.printf("Created %d users.", sum.Users)

	g.printf("Creating listings...")
	listings, err := g.createListings(ctx, opts.Listings, users)
	if err != nil {
		return sum, fmt.Errorf("create listings: %w", err)
	}
	sum.Listings = len(listings)
	g.printf("Created %d listings.", sum.Listings)

	g.printf("Creating bookings...")
	bookings, err := g.createBookings(ctx, listings, users)
	if err != nil {
		return sum, fmt.Errorf("create bookings: %w", err)
	}
	sum.Bookings = len(bookings)
	g.printf("Created %d bookings.", sum.Bookings)

	g.printf("Creating reviews...")
	reviews, err := g.createReviews(ctx, bookings)
	if err != nil {
		return sum, fmt.Errorf("create reviews: %w", err)
	}
	sum.Reviews = len(reviews)
	g.printf("Created %d reviews.", sum.Reviews)

	g.printf("Database seeding completed successfully!")
	g.log.Info("Seeding finished", "users", sum.Users, "listings", sum.Listings, "bookings", sum.Bookings, "reviews", sum.Reviews)
	return sum, nil
}

func (g *Generator) printf(format string, args ...any) {
	fmt.Fprintf(g.out, format+"\n", args...)
}

func (g *Generator) clear(ctx context.Context) error {
	return g.tx.InTx(ctx, func(dbc dbctx.Context) error {
		if _, err := g.repos.Reviews.DeleteAll(dbc); err != nil {
			return err
		}
		if _, err := g.repos.Bookings.DeleteAll(dbc); err != nil {
			return err
		}
		if _, err := g.repos.Listings.DeleteAll(dbc); err != nil {
			return err
		}
		_, err := g.repos.Users.DeleteNonSuperusers(dbc)
		return err
	})
}

func (g *Generator) createUsers(ctx context.Context, count int) ([]*user.User, error) {
	hashes, err := g.hashPasswords(ctx, count)
	if err != nil {
		return nil, err
	}

	var created []*user.User
	err = g.tx.InTx(ctx, func(dbc dbctx.Context) error {
		users := make([]*user.User, 0, count)
		taken := map[string]bool{}
		for i := 0; i < count; i++ {
			first, last, username, err := g.drawUsername(dbc, i, taken)
			if err != nil {
				return err
			}
			taken[username] = true
			users = append(users, &user.User{
				ID:        uuid.New(),
				Username:  username,
				Email:     username + "@example.com",
				Password:  hashes[i],
				FirstName: first,
				LastName:  last,
			})
		}
		out, err := g.repos.Users.Create(dbc, users)
		if err != nil {
			return err
		}
		created = out
		return nil
	})
	return created, err
}

// drawUsername redraws the name pair until first+last+index is unused.
func (g *Generator) drawUsername(dbc dbctx.Context, index int, taken map[string]bool) (string, string, string, error) {
	for attempt := 0; attempt < maxRedraws; attempt++ {
		first := pick(g.rng, firstNames)
		last := pick(g.rng, lastNames)
		username := fmt.Sprintf("%s%s%d", strings.ToLower(first), strings.ToLower(last), index)
		if taken[username] {
			continue
		}
		exists, err := g.repos.Users.UsernameExists(dbc, username)
		if err != nil {
			return "", "", "", err
		}
		if !exists {
			return first, last, username, nil
		}
	}
	return "", "", "", fmt.Errorf("no free username for index %d after %d attempts", index, maxRedraws)
}

func (g *Generator) hashPasswords(ctx context.Context, count int) ([]string, error) {
	hashes := make([]string, count)
	eg, _ := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())
	for i := range hashes {
		eg.Go(func() error {
			h, err := g.Hash(DefaultPassword)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			hashes[i] = h
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return hashes, nil
}

func (g *Generator) createListings(ctx context.Context, count int, hosts []*user.User) ([]*rental.Listing, error) {
	var created []*rental.Listing
	err := g.tx.InTx(ctx, func(dbc dbctx.Context) error {
		created = make([]*rental.Listing, 0, count)
		for i := 0; i < count; i++ {
			l := rental.NewListing(pick(g.rng, hosts).ID)
			l.Title = pick(g.rng, titles)
			l.Description = pick(g.rng, descriptions)
			l.Price = g.price()
			l.Location = pick(g.rng, locations)
			l.PropertyType = pick(g.rng, rental.PropertyTypes)
			l.Bedrooms = between(g.rng, 1, 5)
			l.Bathrooms = between(g.rng, 1, 3)
			l.MaxGuests = between(g.rng, 1, 8)
			l.Amenities = pick(g.rng, amenities)
			l.IsAvailable = g.rng.Intn(4) != 0
			if err := l.Validate(); err != nil {
				return err
			}
			if err := g.repos.Listings.Create(dbc, l); err != nil {
				return err
			}
			created = append(created, l)
		}
		return nil
	})
	return created, err
}

// price is uniform in [50, 500) with two decimal places, drawn in whole cents.
func (g *Generator) price() decimal.Decimal {
	return decimal.New(int64(5000+g.rng.Intn(45000)), -2)
}

func (g *Generator) createBookings(ctx context.Context, listings []*rental.Listing, guests []*user.User) ([]*rental.Booking, error) {
	if len(listings) == 0 {
		return nil, nil
	}
	count := between(g.rng, 15, 30)
	today := time.Time(rental.Date(g.Now()))

	var created []*rental.Booking
	err := g.tx.InTx(ctx, func(dbc dbctx.Context) error {
		created = make([]*rental.Booking, 0, count)
		used := map[string]bool{}
		for i := 0; i < count; i++ {
			b, err := g.drawBooking(dbc, listings, guests, today, used)
			if err != nil {
				return err
			}
			if err := g.repos.Bookings.Create(dbc, b); err != nil {
				return err
			}
			created = append(created, b)
		}
		return nil
	})
	return created, err
}

// drawBooking redraws listing and dates until the exact range is free.
func (g *Generator) drawBooking(dbc dbctx.Context, listings []*rental.Listing, guests []*user.User, today time.Time, used map[string]bool) (*rental.Booking, error) {
	for attempt := 0; attempt < maxRedraws; attempt++ {
		listing := pick(g.rng, listings)
		checkIn := today.AddDate(0, 0, between(g.rng, -30, 60))
		nights := between(g.rng, 1, 14)
		checkOut := checkIn.AddDate(0, 0, nights)

		key := listing.ID.String() + "|" + checkIn.Format(time.DateOnly) + "|" + checkOut.Format(time.DateOnly)
		if used[key] {
			continue
		}
		taken, err := g.repos.Bookings.RangeTaken(dbc, listing.ID, rental.Date(checkIn), rental.Date(checkOut), uuid.Nil)
		if err != nil {
			return nil, err
		}
		if taken {
			continue
		}
		used[key] = true

		return &rental.Booking{
			ID:              uuid.New(),
			ListingID:       listing.ID,
			Listing:         listing,
			GuestID:         pick(g.rng, guests).ID,
			CheckIn:         rental.Date(checkIn),
			CheckOut:        rental.Date(checkOut),
			TotalPrice:      listing.Price.Mul(decimal.NewFromInt(int64(nights))),
			Status:          g.status(),
			SpecialRequests: pick(g.rng, specialRequests),
		}, nil
	}
	return nil, fmt.Errorf("no free booking range after %d attempts", maxRedraws)
}

func (g *Generator) status() rental.BookingStatus {
	r := g.rng.Float64()
	for _, w := range statusWeights {
		if r < w.weight {
			return w.status
		}
		r -= w.weight
	}
	return statusWeights[len(statusWeights)-1].status
}

// createReviews reviews the first half of the completed bookings.
func (g *Generator) createReviews(ctx context.Context, bookings []*rental.Booking) ([]*rental.Review, error) {
	var completed []*rental.Booking
	for _, b := range bookings {
		if b.Status == rental.BookingCompleted {
			completed = append(completed, b)
		}
	}
	completed = completed[:len(completed)/2]
	if len(completed) == 0 {
		return nil, nil
	}

	var created []*rental.Review
	err := g.tx.InTx(ctx, func(dbc dbctx.Context) error {
		created = make([]*rental.Review, 0, len(completed))
		for _, b := range completed {
			r := &rental.Review{
				ID:        uuid.New(),
				ListingID: b.ListingID,
				GuestID:   b.GuestID,
				BookingID: b.ID,
				Rating:    between(g.rng, 3, 5),
				Comment:   pick(g.rng, comments),
			}
			if err := g.repos.Reviews.Create(dbc, r); err != nil {
				return err
			}
			created = append(created, r)
		}
		return nil
	})
	return created, err
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.Intn(len(items))]
}

// between returns a uniform integer in [lo, hi].
func between(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}
