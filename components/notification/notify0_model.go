package notification

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateNotification is a directed notice from one card to another. Receiver
// is always the card whose inbox shows it.
type CreateNotification struct {
	Sender      primitive.ObjectID `json:"sender" bson:"sender"`
	Receiver    primitive.ObjectID `json:"receiver" bson:"receiver"`
	Text        string             `json:"text" bson:"text"`
	RedirectURL string             `json:"redirect_url" bson:"redirect_url"`
	Read        bool               `json:"read" bson:"read"`
	CreatedAt   time.Time          `json:"created_at,omitempty" bson:"created_at,omitempty"`
}

type DBNotification struct {
	Id          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Sender      primitive.ObjectID `json:"sender" bson:"sender"`
	Receiver    primitive.ObjectID `json:"receiver" bson:"receiver"`
	Text        string             `json:"text" bson:"text"`
	RedirectURL string             `json:"redirect_url" bson:"redirect_url"`
	Read        bool               `json:"read" bson:"read"`
	CreatedAt   time.Time          `json:"created_at,omitempty" bson:"created_at,omitempty"`
}
