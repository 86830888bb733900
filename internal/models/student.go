package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Student is a document in the "students" collection. Credential and
// one-time-code fields are never serialized to JSON.
type Student struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	FirstName        string `bson:"first_name" json:"first_name"`
	LastName         string `bson:"last_name" json:"last_name"`
	Gender           string `bson:"gender,omitempty" json:"gender,omitempty"`
	DateOfBirth      string `bson:"date_of_birth,omitempty" json:"date_of_birth,omitempty"`
	PhoneNumber      string `bson:"phone_number,omitempty" json:"phone_number,omitempty"`
	StateOfResidence string `bson:"state_of_residence,omitempty" json:"state_of_residence,omitempty"`

	Email    string `bson:"email" json:"email"`
	Password string `bson:"password" json:"-"` // bcrypt hash, never returned

	IsVerified bool      `bson:"is_verified" json:"is_verified"`
	LastLogin  time.Time `bson:"last_login" json:"last_login"`

	// Pending email verification. Both fields are set and cleared together;
	// a verified student never carries a live code.
	VerificationCode   string     `bson:"verification_code,omitempty" json:"-"`
	VerificationExpire *time.Time `bson:"verification_expire,omitempty" json:"-"`

	// Pending password reset. Both fields are set and cleared together.
	ResetToken  string     `bson:"reset_token,omitempty" json:"-"`
	ResetExpire *time.Time `bson:"reset_expire,omitempty" json:"-"`

	// Federated identity linkage (google / microsoft), empty for local accounts.
	FederatedID  string `bson:"federated_id,omitempty" json:"-"`
	AuthProvider string `bson:"auth_provider,omitempty" json:"auth_provider,omitempty"`
}
