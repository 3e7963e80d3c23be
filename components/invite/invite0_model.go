package invite

// InvitePayload is the sealed content of an invitation deep link. TempCardID
// is empty for email invitations bound to a provisioned card instead.
type InvitePayload struct {
	Email      string `json:"email"`
	TempCardID string `json:"temp_card_id,omitempty"`
	CardID     string `json:"card_id,omitempty"`
}

// Outcomes of inviteByEmail.
const (
	OutcomePendingRegistration = "pending_registration"
	OutcomeRequestSent         = "request_sent"
)

type EmailInviteRequest struct {
	SenderCardID   string `json:"sender_card_id"`
	RecipientEmail string `json:"recipient_email"`
}

type EmailInviteResult struct {
	Outcome string `json:"outcome"`
}

type TempCardInviteRequest struct {
	InviterCardID string   `json:"inviter_card_id"`
	Name          string   `json:"name"`
	CompanyName   string   `json:"company_name"`
	Address       string   `json:"address"`
	Email         []string `json:"email"`
	Designation   string   `json:"designation"`
	PhoneNumber   []string `json:"phone_number"`
}

type TempCardInviteResult struct {
	TempCardID string `json:"temp_card_id"`
	Link       string `json:"link"`
}

type MaterializeRequest struct {
	TempCardID    string   `json:"temp_card_id"`
	InviterCardID string   `json:"inviter_card_id"`
	Design        string   `json:"design"`
	Color         string   `json:"color"`
	Name          string   `json:"name"`
	Bio           string   `json:"bio"`
	CompanyName   string   `json:"company_name"`
	Designation   string   `json:"designation"`
	Email         []string `json:"email"`
	PhoneNumber   []string `json:"phone_number"`
}
