package aitoken

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AI integration settings managed by operators. At most one config per
// token name is enabled at a time.
type CreateAIToken struct {
	TokenName        string    `json:"token_name" bson:"token_name"`
	EnableModel      string    `json:"enable_model" bson:"enable_model"`
	ApiKey           string    `json:"api_key" bson:"api_key"`
	MaxToken         int       `json:"max_token" bson:"max_token"`
	FrequencyPenalty float64   `json:"frequency_penalty" bson:"frequency_penalty"`
	Temperature      float64   `json:"temperature" bson:"temperature"`
	IsEnabled        bool      `json:"is_enabled" bson:"is_enabled"`
	CreatedAt        time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt        time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

type DBAIToken struct {
	Id               primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	TokenName        string             `json:"token_name" bson:"token_name"`
	EnableModel      string             `json:"enable_model" bson:"enable_model"`
	ApiKey           string             `json:"api_key" bson:"api_key"`
	MaxToken         int                `json:"max_token" bson:"max_token"`
	FrequencyPenalty float64            `json:"frequency_penalty" bson:"frequency_penalty"`
	Temperature      float64            `json:"temperature" bson:"temperature"`
	IsEnabled        bool               `json:"is_enabled" bson:"is_enabled"`
	CreatedAt        time.Time          `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt        time.Time          `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}
