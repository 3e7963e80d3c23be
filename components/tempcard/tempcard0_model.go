package tempcard

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateTempCard is a placeholder profile for an invitee without an account.
// InvitedCard points back at the inviter's card.
type CreateTempCard struct {
	Name        string             `json:"name" bson:"name"`
	CompanyName string             `json:"company_name" bson:"company_name"`
	Address     string             `json:"address" bson:"address"`
	Email       []string           `json:"email" bson:"email"`
	Designation string             `json:"designation" bson:"designation"`
	PhoneNumber []string           `json:"phone_number" bson:"phone_number"`
	InvitedCard primitive.ObjectID `json:"invited_card" bson:"invited_card"`
	CreatedAt   time.Time          `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt   time.Time          `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

type DBTempCard struct {
	Id          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	CompanyName string             `json:"company_name" bson:"company_name"`
	Address     string             `json:"address" bson:"address"`
	Email       []string           `json:"email" bson:"email"`
	Designation string             `json:"designation" bson:"designation"`
	PhoneNumber []string           `json:"phone_number" bson:"phone_number"`
	InvitedCard primitive.ObjectID `json:"invited_card" bson:"invited_card"`
	CreatedAt   time.Time          `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt   time.Time          `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}
