package card

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Friend list entries keep the direction the connection was made from.
const (
	OriginIncoming = "incoming"
	OriginOutgoing = "outgoing"
	OriginMutual   = ""
)

// FriendRef is one established connection. Placeholder entries point at a
// temp card until the invitee registers.
type FriendRef struct {
	Friend      primitive.ObjectID `json:"friend" bson:"friend"`
	Origin      string             `json:"origin" bson:"origin"`
	ConnectedAt time.Time          `json:"connected_at" bson:"connected_at"`
	Placeholder bool               `json:"placeholder,omitempty" bson:"placeholder,omitempty"`
}

type CreateCard struct {
	Design      string    `json:"design" bson:"design"`
	Color       string    `json:"color" bson:"color"`
	Name        string    `json:"name" bson:"name"`
	ProfileImg  string    `json:"profile_image" bson:"profile_image"`
	CoverImg    string    `json:"cover_image" bson:"cover_image"`
	Bio         string    `json:"bio" bson:"bio"`
	CompanyName string    `json:"company_name" bson:"company_name"`
	CompanyLogo string    `json:"company_logo" bson:"company_logo"`
	Email       []string  `json:"email" bson:"email"`
	Designation string    `json:"designation" bson:"designation"`
	PhoneNumber []string  `json:"phone_number" bson:"phone_number"`
	IsMaster    bool      `json:"is_master" bson:"is_master"`
	CreatedAt   time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

type DBCard struct {
	Id          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Design      string             `json:"design" bson:"design"`
	Color       string             `json:"color" bson:"color"`
	Name        string             `json:"name" bson:"name"`
	ProfileImg  string             `json:"profile_image" bson:"profile_image"`
	CoverImg    string             `json:"cover_image" bson:"cover_image"`
	Bio         string             `json:"bio" bson:"bio"`
	CompanyName string             `json:"company_name" bson:"company_name"`
	CompanyLogo string             `json:"company_logo" bson:"company_logo"`
	Email       []string           `json:"email" bson:"email"`
	Designation string             `json:"designation" bson:"designation"`
	PhoneNumber []string           `json:"phone_number" bson:"phone_number"`

	Links      []primitive.ObjectID `json:"links" bson:"links"`
	Activities []primitive.ObjectID `json:"activities" bson:"activities"`

	FriendList    []FriendRef          `json:"friend_list" bson:"friend_list"`
	Incoming      []primitive.ObjectID `json:"incoming_friend_request" bson:"incoming_friend_request"`
	Outgoing      []primitive.ObjectID `json:"outgoing_friend_request" bson:"outgoing_friend_request"`
	Notifications []primitive.ObjectID `json:"notifications" bson:"notifications"`

	TotalPoints   int  `json:"total_points" bson:"total_points"`
	InviteCount   int  `json:"invite_count" bson:"invite_count"`
	IsPrivate     bool `json:"is_private" bson:"is_private"`
	IsMaster      bool `json:"is_master" bson:"is_master"`
	ViaInvitation bool `json:"via_invitation" bson:"via_invitation"`

	CreatedAt time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// HasIncomingFrom reports whether other sits in the incoming request set.
func (me *DBCard) HasIncomingFrom(other primitive.ObjectID) bool {
	for _, id := range me.Incoming {
		if id == other {
			return true
		}
	}
	return false
}

func (me *DBCard) HasOutgoingTo(other primitive.ObjectID) bool {
	for _, id := range me.Outgoing {
		if id == other {
			return true
		}
	}
	return false
}

func (me *DBCard) HasFriend(other primitive.ObjectID) bool {
	for _, ref := range me.FriendList {
		if ref.Friend == other {
			return true
		}
	}
	return false
}

type Activity struct {
	Id               primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name             string             `json:"name" bson:"name"`
	StartDate        string             `json:"start_date" bson:"start_date"`
	EndDate          string             `json:"end_date" bson:"end_date"`
	CurrentlyOngoing bool               `json:"currently_ongoing" bson:"currently_ongoing"`
	Attachments      []string           `json:"attachments" bson:"attachments"`
	Description      string             `json:"description" bson:"description"`
	Link             ActivityLink       `json:"link" bson:"link"`
	CreatedAt        time.Time          `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt        time.Time          `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

type ActivityLink struct {
	Platform string `json:"platform" bson:"platform"`
	URL      string `json:"url" bson:"url"`
}

type Link struct {
	Id        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Platform  string             `json:"platform" bson:"platform"`
	Link      string             `json:"link" bson:"link"`
	CreatedAt time.Time          `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt time.Time          `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

type SearchContact struct {
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Company     string `json:"company"`
	Email       string `json:"email"`
	Phone       string `json:"phone_number"`
}
