package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Company is a document in the "companies" collection. It shares the
// credential lifecycle fields with Student but lives in its own email
// namespace: a student and a company may register the same address.
type Company struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	CompanyName          string `bson:"company_name" json:"company_name"`
	CompanyPhoneNumber   string `bson:"company_phone_number,omitempty" json:"company_phone_number,omitempty"`
	IndustryType         string `bson:"industry_type,omitempty" json:"industry_type,omitempty"`
	HeadquarterLocation  string `bson:"headquarter_location,omitempty" json:"headquarter_location,omitempty"`
	CompanySize          string `bson:"company_size,omitempty" json:"company_size,omitempty"`
	YearOfEstablishment  string `bson:"year_of_establishment,omitempty" json:"year_of_establishment,omitempty"`
	ContactFirstName     string `bson:"contact_first_name,omitempty" json:"contact_first_name,omitempty"`
	ContactLastName      string `bson:"contact_last_name,omitempty" json:"contact_last_name,omitempty"`
	ContactDesignation   string `bson:"contact_designation,omitempty" json:"contact_designation,omitempty"`
	ContactEmail         string `bson:"contact_email,omitempty" json:"contact_email,omitempty"`
	ContactPhoneNumber   string `bson:"contact_phone_number,omitempty" json:"contact_phone_number,omitempty"`
	JobRoles             []string `bson:"job_roles,omitempty" json:"job_roles,omitempty"`
	AreasOfExpertise     []string `bson:"areas_of_expertise,omitempty" json:"areas_of_expertise,omitempty"`
	CompanyWebsite       string `bson:"company_website,omitempty" json:"company_website,omitempty"`
	LinkedInProfile      string `bson:"linkedin_profile,omitempty" json:"linkedin_profile,omitempty"`

	Email    string `bson:"email" json:"email"`
	Password string `bson:"password" json:"-"` // bcrypt hash, never returned

	IsVerified bool      `bson:"is_verified" json:"is_verified"`
	LastLogin  time.Time `bson:"last_login" json:"last_login"`

	VerificationCode   string     `bson:"verification_code,omitempty" json:"-"`
	VerificationExpire *time.Time `bson:"verification_expire,omitempty" json:"-"`

	ResetToken  string     `bson:"reset_token,omitempty" json:"-"`
	ResetExpire *time.Time `bson:"reset_expire,omitempty" json:"-"`

	FederatedID  string `bson:"federated_id,omitempty" json:"-"`
	AuthProvider string `bson:"auth_provider,omitempty" json:"auth_provider,omitempty"`
}
