package otp

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status values. A code is single use: verifying flips it to used, and used
// codes never verify again.
const (
	StatusPending = 0
	StatusUsed    = 1
)

type CreateOTP struct {
	Email     string    `json:"email" bson:"email"`
	Code      string    `json:"otp" bson:"otp"`
	Status    int       `json:"status" bson:"status"`
	CreatedAt time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`
}

type DBOTP struct {
	Id        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Email     string             `json:"email" bson:"email"`
	Code      string             `json:"otp" bson:"otp"`
	Status    int                `json:"status" bson:"status"`
	CreatedAt time.Time          `json:"created_at,omitempty" bson:"created_at,omitempty"`
}
