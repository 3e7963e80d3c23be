package fcm

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// One device token per user. Login upserts it, logout and account deletion
// remove it.
type CreateFcmToken struct {
	UserId    primitive.ObjectID `json:"user_id" bson:"user_id"`
	Token     string             `json:"fcm_token" bson:"fcm_token"`
	CreatedAt time.Time          `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt time.Time          `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

type DBFcmToken struct {
	Id        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserId    primitive.ObjectID `json:"user_id" bson:"user_id"`
	Token     string             `json:"fcm_token" bson:"fcm_token"`
	CreatedAt time.Time          `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt time.Time          `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}
