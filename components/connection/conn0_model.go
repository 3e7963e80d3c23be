package connection

import (
	"errors"
)

// Points awarded when a pending request resolves into a connection. The
// pending recipient earns the larger share no matter which side triggers
// the accept.
const (
	PointsRecipient = 250
	PointsRequester = 150
)

var (
	ErrInvalidOperation = errors.New("a card can not connect to itself")
	ErrDuplicateRequest = errors.New("connection request already sent")
	ErrRequestedByPeer  = errors.New("this card already requested to connect with you")
	ErrAlreadyConnected = errors.New("cards are already connected")
	ErrNoPendingRequest = errors.New("no pending request between these cards")
)

// PairState is the relationship between an ordered pair of cards, computed
// once from both documents and dispatched over a single switch.
type PairState int

const (
	StateNone PairState = iota
	StatePendingFromFirst  // first card requested, second has it incoming
	StatePendingFromSecond // second card requested, first has it incoming
	StateConnected
)

func (s PairState) String() string {
	switch s {
	case StatePendingFromFirst:
		return "pending_outgoing"
	case StatePendingFromSecond:
		return "pending_incoming"
	case StateConnected:
		return "connected"
	default:
		return "none"
	}
}

type PairRequest struct {
	SenderID    string `json:"sender_id"`
	RecipientID string `json:"recipient_id"`
}

type QrScanRequest struct {
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
}

type UnfriendRequest struct {
	OwnID          string `json:"own_id"`
	RemoveFriendID string `json:"remove_friend_id"`
}
