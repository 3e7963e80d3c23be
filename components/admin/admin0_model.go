package admin

import (
	"networth/components/card"
	"networth/components/user"
)

type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AdminLoginResult struct {
	AccessToken string `json:"access_token"`
}

// PageMeta describes one page of the user listing.
type PageMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"total_pages"`
}

type UserListResult struct {
	Users []*user.ResponseUser `json:"users"`
	Meta  PageMeta             `json:"meta"`
}

type UserDetailResult struct {
	User  *user.ResponseUser `json:"user"`
	Cards []*card.DBCard     `json:"cards"`
}
