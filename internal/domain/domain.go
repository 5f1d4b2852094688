package domain

import (
	"github.com/yungbote/rentals-backend/internal/domain/rental"
	"github.com/yungbote/rentals-backend/internal/domain/user"
)

type User = user.User

// Models lists every persisted entity in migration order.
func Models() []any {
	return []any{
		&user.User{},
		&rental.Listing{},
		&rental.Booking{},
		&rental.Review{},
	}
}
