package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PersonalInfo struct {
	PhoneNumber string `json:"phone_number" bson:"phone_number"`
	Address     string `json:"address" bson:"address"`
	DateOfBirth string `json:"date_of_birth" bson:"date_of_birth"`
	Designation string `json:"designation" bson:"designation"`
	CompanyName string `json:"company_name" bson:"company_name"`
	Website     string `json:"website" bson:"website"`
}

type CreateUser struct {
	Name         string               `json:"name" bson:"name"`
	Email        string               `json:"email" bson:"email"`
	Password     string               `json:"password" bson:"password"`
	Avatar       string               `json:"avatar" bson:"avatar"`
	GoogleAuth   bool                 `json:"google_auth" bson:"google_auth"`
	IsVerified   bool                 `json:"is_verified" bson:"is_verified"`
	Provisional  bool                 `json:"provisional" bson:"provisional"`
	Cards        []primitive.ObjectID `json:"cards" bson:"cards"`
	PersonalInfo PersonalInfo         `json:"personal_info" bson:"personal_info"`
	CreatedAt    time.Time            `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt    time.Time            `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// Provisional marks accounts created on someone else's behalf by the
// invitation gateway. They stay provisional until the invitee verifies.
type DBUser struct {
	Id           primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string               `json:"name" bson:"name"`
	Email        string               `json:"email" bson:"email"`
	Password     string               `json:"-" bson:"password"`
	Avatar       string               `json:"avatar" bson:"avatar"`
	GoogleAuth   bool                 `json:"google_auth" bson:"google_auth"`
	IsVerified   bool                 `json:"is_verified" bson:"is_verified"`
	Provisional  bool                 `json:"provisional" bson:"provisional"`
	Cards        []primitive.ObjectID `json:"cards" bson:"cards"`
	PersonalInfo PersonalInfo         `json:"personal_info" bson:"personal_info"`
	CreatedAt    time.Time            `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt    time.Time            `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"otp"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FcmToken string `json:"fcm_token"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type RecoverVerifyRequest struct {
	Email string `json:"email"`
}

type RecoverResetRequest struct {
	ResetToken  string `json:"reset_token"`
	NewPassword string `json:"new_password"`
}

type ResponseUser struct {
	Id           primitive.ObjectID   `json:"id"`
	Name         string               `json:"name"`
	Email        string               `json:"email"`
	Avatar       string               `json:"avatar"`
	GoogleAuth   bool                 `json:"google_auth"`
	IsVerified   bool                 `json:"is_verified"`
	Cards        []primitive.ObjectID `json:"cards"`
	PersonalInfo PersonalInfo         `json:"personal_info"`
	AccessToken  string               `json:"access_token,omitempty"`
	RefreshToken string               `json:"refresh_token,omitempty"`
}

type ResponseStatus struct {
	Status string `json:"status"`
}
