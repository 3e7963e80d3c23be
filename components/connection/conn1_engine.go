package connection

import (
	"fmt"
	"time"

	"networth/components/card"
	"networth/components/notification"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Pusher delivers a best effort push message to whoever owns the card. It
// must never block the caller beyond its own bounded timeout.
type Pusher interface {
	PushToCard(cardId primitive.ObjectID, message string)
}

// Engine owns the connection state machine between two cards. Every
// operation re-reads both documents, validates the transition once through
// pairState, mutates both sides with idempotent single-document updates and
// fires the notification and point side effects afterwards. Side effects
// never roll back a committed transition.
type Engine struct {
	cards    card.I_CardRepo
	notifs   notification.I_NotifRepo
	pusher   Pusher
	cardLink string
}

func NewEngine(cards card.I_CardRepo, notifs notification.I_NotifRepo, pusher Pusher, cardLink string) *Engine {
	return &Engine{cards: cards, notifs: notifs, pusher: pusher, cardLink: cardLink}
}

// pairState derives the relationship from both documents. A half written
// transition (present on only one side) counts as the state the present
// side implies, so a retry or a later read heals it instead of wedging.
// Connected wins over pending because friend entries are written before the
// pending sets are cleared.
func pairState(first, second *card.DBCard) PairState {
	switch {
	case first.HasFriend(second.Id) || second.HasFriend(first.Id):
		return StateConnected
	case first.HasOutgoingTo(second.Id) || second.HasIncomingFrom(first.Id):
		return StatePendingFromFirst
	case first.HasIncomingFrom(second.Id) || second.HasOutgoingTo(first.Id):
		return StatePendingFromSecond
	default:
		return StateNone
	}
}

func (me *Engine) loadPair(aId, bId primitive.ObjectID) (*card.DBCard, *card.DBCard, error) {
	a, err := me.cards.FindCardById(aId)
	if err != nil {
		return nil, nil, err
	}
	b, err := me.cards.FindCardById(bId)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// SendRequest moves the pair from NONE to pending sender→recipient.
func (me *Engine) SendRequest(senderId, recipientId primitive.ObjectID) error {
	if senderId == recipientId {
		return ErrInvalidOperation
	}

	sender, recipient, err := me.loadPair(senderId, recipientId)
	if err != nil {
		return err
	}

	switch pairState(sender, recipient) {
	case StateConnected:
		return ErrAlreadyConnected
	case StatePendingFromSecond:
		return ErrRequestedByPeer
	case StatePendingFromFirst:
		if sender.HasOutgoingTo(recipientId) && recipient.HasIncomingFrom(senderId) {
			return ErrDuplicateRequest
		}
		// half applied by an earlier interrupted send, finish it below
	}

	if err := me.cards.AddOutgoing(senderId, recipientId); err != nil {
		return fmt.Errorf("write sender outgoing: %w", err)
	}
	if err := me.cards.AddIncoming(recipientId, senderId); err != nil {
		// compensate so the pair does not linger half pending; if this
		// fails too, the next SendRequest completes the transition
		if cerr := me.cards.PullOutgoing(senderId, recipientId); cerr != nil {
			Logger.Error(cerr, "compensation failed, pair left half pending",
				"sender", senderId.Hex(), "recipient", recipientId.Hex())
		}
		return fmt.Errorf("write recipient incoming: %w", err)
	}

	me.notify(senderId, recipientId, "requested to connect", me.cardDeepLink(senderId))
	me.push(recipientId, fmt.Sprintf("%s requested to connect", sender.Name))

	return nil
}

// AcceptRequest resolves a pending request between the two cards into a
// connection, no matter which side initiated it or which side calls accept.
func (me *Engine) AcceptRequest(accepterId, requesterId primitive.ObjectID) error {
	if accepterId == requesterId {
		return ErrInvalidOperation
	}

	accepter, requester, err := me.loadPair(accepterId, requesterId)
	if err != nil {
		return err
	}

	var origRequester, origRecipient *card.DBCard
	switch pairState(accepter, requester) {
	case StatePendingFromSecond:
		origRequester, origRecipient = requester, accepter
	case StatePendingFromFirst:
		// caller turned out to be the original requester (UI flow)
		origRequester, origRecipient = accepter, requester
	case StateConnected:
		// a crash inside connect can leave one friend entry written while
		// the pending pair is still in place; resume that accept instead of
		// rejecting it, connect's writes are all idempotent
		switch {
		case requester.HasOutgoingTo(accepterId) || accepter.HasIncomingFrom(requesterId):
			origRequester, origRecipient = requester, accepter
		case accepter.HasOutgoingTo(requesterId) || requester.HasIncomingFrom(accepterId):
			origRequester, origRecipient = accepter, requester
		default:
			return ErrNoPendingRequest
		}
	default:
		return ErrNoPendingRequest
	}

	completed, err := me.connect(origRequester.Id, origRecipient.Id)
	if err != nil {
		return err
	}

	if completed {
		me.awardPoints(origRequester.Id, origRecipient.Id)
		me.notify(origRecipient.Id, origRequester.Id, "accepted your connection request", me.cardDeepLink(origRecipient.Id))
		me.push(origRequester.Id, fmt.Sprintf("%s accepted your connection request", origRecipient.Name))
	}

	return nil
}

// connect writes the friend entries on both sides before clearing the
// pending sets, so a crash in between reads as CONNECTED, never as limbo.
// The requester entry is the pair's last missing piece, so whoever inserts
// it completed the transition; that resolver owns points and notifications.
func (me *Engine) connect(origRequesterId, origRecipientId primitive.ObjectID) (bool, error) {
	now := time.Now()

	_, err := me.cards.PushFriend(origRecipientId, card.FriendRef{
		Friend:      origRequesterId,
		Origin:      card.OriginIncoming,
		ConnectedAt: now,
	})
	if err != nil {
		return false, fmt.Errorf("write recipient friend entry: %w", err)
	}

	completed, err := me.cards.PushFriend(origRequesterId, card.FriendRef{
		Friend:      origRecipientId,
		Origin:      card.OriginOutgoing,
		ConnectedAt: now,
	})
	if err != nil {
		return false, fmt.Errorf("write requester friend entry: %w", err)
	}

	if err := me.cards.PullIncoming(origRecipientId, origRequesterId); err != nil {
		return completed, fmt.Errorf("clear recipient incoming: %w", err)
	}
	if err := me.cards.PullOutgoing(origRequesterId, origRecipientId); err != nil {
		return completed, fmt.Errorf("clear requester outgoing: %w", err)
	}

	return completed, nil
}

// CancelIncoming drops a pending request the holder received.
func (me *Engine) CancelIncoming(holderId, requesterId primitive.ObjectID) error {
	if holderId == requesterId {
		return ErrInvalidOperation
	}

	holder, requester, err := me.loadPair(holderId, requesterId)
	if err != nil {
		return err
	}

	if pairState(requester, holder) != StatePendingFromFirst {
		return ErrNoPendingRequest
	}

	if err := me.cards.PullIncoming(holderId, requesterId); err != nil {
		return fmt.Errorf("clear holder incoming: %w", err)
	}
	if err := me.cards.PullOutgoing(requesterId, holderId); err != nil {
		return fmt.Errorf("clear requester outgoing: %w", err)
	}

	return nil
}

// CancelOutgoing withdraws a pending request the holder sent.
func (me *Engine) CancelOutgoing(holderId, recipientId primitive.ObjectID) error {
	if holderId == recipientId {
		return ErrInvalidOperation
	}

	holder, recipient, err := me.loadPair(holderId, recipientId)
	if err != nil {
		return err
	}

	if pairState(holder, recipient) != StatePendingFromFirst {
		return ErrNoPendingRequest
	}

	if err := me.cards.PullOutgoing(holderId, recipientId); err != nil {
		return fmt.Errorf("clear holder outgoing: %w", err)
	}
	if err := me.cards.PullIncoming(recipientId, holderId); err != nil {
		return fmt.Errorf("clear recipient incoming: %w", err)
	}

	return nil
}

// Unfriend removes the connection from both sides. It is idempotent: a
// second call, or an entry already missing on one side, is not an error.
func (me *Engine) Unfriend(ownId, friendId primitive.ObjectID) error {
	if ownId == friendId {
		return ErrInvalidOperation
	}

	if _, err := me.cards.FindCardById(ownId); err != nil {
		return err
	}

	if err := me.cards.PullFriend(ownId, friendId); err != nil {
		return fmt.Errorf("clear own friend entry: %w", err)
	}
	if err := me.cards.PullFriend(friendId, ownId); err != nil && err != card.ErrCardNotFound {
		return fmt.Errorf("clear friend entry on other side: %w", err)
	}

	return nil
}

// ConnectViaQr short circuits the whole lifecycle: an existing connection is
// a no-op, an existing pending in either direction resolves exactly like an
// accept, and two unrelated cards connect directly with the scanner treated
// as the requester.
func (me *Engine) ConnectViaQr(scannerId, scannedId primitive.ObjectID) error {
	if scannerId == scannedId {
		return ErrInvalidOperation
	}

	scanner, scanned, err := me.loadPair(scannerId, scannedId)
	if err != nil {
		return err
	}

	var origRequester, origRecipient *card.DBCard
	switch pairState(scanner, scanned) {
	case StateConnected:
		return nil
	case StatePendingFromFirst:
		origRequester, origRecipient = scanner, scanned
	case StatePendingFromSecond:
		origRequester, origRecipient = scanned, scanner
	case StateNone:
		origRequester, origRecipient = scanner, scanned
	}

	completed, err := me.connect(origRequester.Id, origRecipient.Id)
	if err != nil {
		return err
	}

	if completed {
		me.awardPoints(origRequester.Id, origRecipient.Id)
		me.notify(scannerId, scannedId, "connected with you via QR scan", me.cardDeepLink(scannerId))
		me.push(scannedId, fmt.Sprintf("%s connected with you", scanner.Name))
	}

	return nil
}

// IsFriend answers the friend-list membership query for a card pair.
func (me *Engine) IsFriend(ownId, otherId primitive.ObjectID) (bool, error) {
	own, err := me.cards.FindCardById(ownId)
	if err != nil {
		return false, err
	}
	return own.HasFriend(otherId), nil
}

func (me *Engine) IncomingList(cardId primitive.ObjectID) ([]*card.DBCard, error) {
	c, err := me.cards.FindCardById(cardId)
	if err != nil {
		return nil, err
	}
	return me.cards.FindCardsByIds(c.Incoming)
}

func (me *Engine) OutgoingList(cardId primitive.ObjectID) ([]*card.DBCard, error) {
	c, err := me.cards.FindCardById(cardId)
	if err != nil {
		return nil, err
	}
	return me.cards.FindCardsByIds(c.Outgoing)
}

func (me *Engine) cardDeepLink(cardId primitive.ObjectID) string {
	return fmt.Sprintf("%s/%s", me.cardLink, cardId.Hex())
}

// awardPoints credits both sides of a resolved request. Best effort.
func (me *Engine) awardPoints(origRequesterId, origRecipientId primitive.ObjectID) {
	if err := me.cards.AddPoints(origRecipientId, PointsRecipient); err != nil {
		Logger.Error(err, "award recipient points failed", "card", origRecipientId.Hex())
	}
	if err := me.cards.AddPoints(origRequesterId, PointsRequester); err != nil {
		Logger.Error(err, "award requester points failed", "card", origRequesterId.Hex())
	}
}

// notify appends a ledger entry to the receiver's inbox. Best effort.
func (me *Engine) notify(senderId, receiverId primitive.ObjectID, text, redirect string) {
	notif, err := me.notifs.AddNotif(&notification.CreateNotification{
		Sender:      senderId,
		Receiver:    receiverId,
		Text:        text,
		RedirectURL: redirect,
	})
	if err != nil {
		Logger.Error(err, "notification insert failed", "receiver", receiverId.Hex())
		return
	}

	if err := me.cards.PushNotification(receiverId, notif.Id); err != nil {
		Logger.Error(err, "notification inbox append failed", "receiver", receiverId.Hex())
	}
}

func (me *Engine) push(cardId primitive.ObjectID, message string) {
	if me.pusher == nil {
		return
	}
	me.pusher.PushToCard(cardId, message)
}
