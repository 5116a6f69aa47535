package domain

import (
	"context"
	"time"
)

// User is an account identity. ProviderUID links the external identity
// provider account once the user has logged in through it.
type User struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	ProviderUID string    `bson:"provider_uid,omitempty" json:"provider_uid"`
	Email       string    `bson:"email" json:"email"`
	Name        string    `bson:"name" json:"name"`
	Roles       []string  `bson:"roles" json:"roles"`
	Profile     Profile   `bson:"profile" json:"profile"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// Profile holds the editable fitness profile shown on the profile form.
type Profile struct {
	Age          int     `bson:"age" json:"age"`
	HeightCm     float64 `bson:"height_cm" json:"height_cm"`
	WeightKg     float64 `bson:"weight_kg" json:"weight_kg"`
	Goal         string  `bson:"goal" json:"goal"` // lose_weight|gain_muscle|maintain
	ActivityTier string  `bson:"activity_tier" json:"activity_tier"`
}

// HasRole checks if user has a specific role
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// UserRepository defines operations for managing users
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByProviderUID(ctx context.Context, uid string) (*User, error)
	Update(ctx context.Context, user *User) error
	UpdateProviderUID(ctx context.Context, userID string, providerUID string) error
	UpdateProfile(ctx context.Context, userID string, profile Profile) (*User, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// Role constants
const (
	RoleMember = "member"
	RoleAdmin  = "admin" // manages the global exercise and food libraries
)
