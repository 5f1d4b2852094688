package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username    string    `gorm:"size:150;uniqueIndex;not null;column:username" json:"username"`
	Email       string    `gorm:"size:254;not null;column:email" json:"email"`
	Password    string    `gorm:"not null;column:password" json:"-"`
	FirstName   string    `gorm:"size:150;not null;column:first_name" json:"first_name"`
	LastName    string    `gorm:"size:150;not null;column:last_name" json:"last_name"`
	IsSuperuser bool      `gorm:"not null;column:is_superuser" json:"-"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "user" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Identity is the caller of an operation. The zero value is anonymous.
type Identity struct {
	UserID   uuid.UUID
	Username string
}

func Anonymous() Identity { return Identity{} }

func (i Identity) IsAnonymous() bool { return i.UserID == uuid.Nil }

// Is reports whether the identity is the given (non-nil) user.
func (i Identity) Is(userID uuid.UUID) bool {
	return !i.IsAnonymous() && userID != uuid.Nil && i.UserID == userID
}
