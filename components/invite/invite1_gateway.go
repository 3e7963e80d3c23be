package invite

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"networth/auth"
	"networth/components/card"
	"networth/components/connection"
	"networth/components/notification"
	"networth/components/tempcard"
	"networth/components/user"
	"networth/config"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrEmailInUse      = errors.New("email already belongs to an existing contact")
	ErrBadInvitation   = errors.New("invitation link is invalid or expired")
	ErrWrongInviter    = errors.New("temp card does not belong to this inviter")
	ErrEmailRequired   = errors.New("at least one email is required")
	ErrInvalidEmailFmt = errors.New("invalid email format")
)

type I_InviteMailer interface {
	SendInvitationMail(to, link string) error
}

// Gateway converts an external invitee into a pending relationship, a
// placeholder contact, or a provisioned account, depending on what already
// exists for the address.
type Gateway struct {
	users     user.I_UserRepo
	cards     card.I_CardRepo
	tempcards tempcard.I_TempCardRepo
	notifs    notification.I_NotifRepo
	engine    *connection.Engine
	mailer    I_InviteMailer
	cfg       config.InviteConfig
}

func NewGateway(users user.I_UserRepo, cards card.I_CardRepo, tempcards tempcard.I_TempCardRepo, notifs notification.I_NotifRepo, engine *connection.Engine, mailer I_InviteMailer, cfg config.InviteConfig) *Gateway {
	return &Gateway{users, cards, tempcards, notifs, engine, mailer, cfg}
}

func (me *Gateway) sealPayload(p *InvitePayload) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return auth.EncryptPayload(string(raw), me.cfg.EncryptionKey)
}

// DecryptInvitation opens a deep link token back into its payload.
func (me *Gateway) DecryptInvitation(encrypted string) (*InvitePayload, error) {
	raw, err := auth.DecryptPayload(encrypted, me.cfg.EncryptionKey)
	if err != nil {
		return nil, ErrBadInvitation
	}

	var p InvitePayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, ErrBadInvitation
	}

	return &p, nil
}

func (me *Gateway) mailInvitation(email, link string) {
	if err := me.mailer.SendInvitationMail(email, link); err != nil {
		Logger.Error(err, "send invitation mail")
	}
}

// InviteByEmail resolves the address against the account and card registries
// and either forwards to the connection engine or provisions a fresh
// account for the invitee.
func (me *Gateway) InviteByEmail(senderCardId primitive.ObjectID, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existingUser, err := me.users.FindUserByEmail(email)
	if err != nil && err != user.ErrUserNotFound {
		return "", err
	}

	if existingUser != nil {
		master, err := me.masterCardOf(existingUser.Id)
		if err != nil {
			return "", err
		}
		if err := me.engine.SendRequest(senderCardId, master.Id); err != nil {
			return "", err
		}
		return OutcomeRequestSent, nil
	}

	// an orphaned card without an account still receives a normal request
	existingCard, err := me.cards.FindCardByEmail(email)
	if err != nil && err != card.ErrCardNotFound {
		return "", err
	}
	if existingCard != nil {
		if err := me.engine.SendRequest(senderCardId, existingCard.Id); err != nil {
			return "", err
		}
		return OutcomeRequestSent, nil
	}

	return me.provisionInvitee(senderCardId, email)
}

// masterCardOf resolves the user's primary card by the is_master flag among
// the cards attached to the account, not by attach order.
func (me *Gateway) masterCardOf(userId primitive.ObjectID) (*card.DBCard, error) {
	ids, err := me.users.CardIds(userId)
	if err != nil {
		return nil, err
	}

	master, err := me.cards.FindMasterByIds(ids)
	if err != nil {
		if errors.Is(err, card.ErrCardNotFound) {
			return nil, user.ErrNoMasterCard
		}
		return nil, err
	}

	return master, nil
}

// provisionInvitee creates a provisional account plus master card for the
// address and mails an invitation link bound to that card.
func (me *Gateway) provisionInvitee(senderCardId primitive.ObjectID, email string) (string, error) {
	if _, err := me.cards.FindCardById(senderCardId); err != nil {
		return "", err
	}

	password, err := auth.GeneratePassword(uuid.NewString())
	if err != nil {
		return "", err
	}

	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}

	newUser, err := me.users.CreateUser(&user.CreateUser{
		Name:        name,
		Email:       email,
		Password:    password,
		Provisional: true,
	})
	if err != nil {
		return "", err
	}

	newCard, err := me.cards.CreateCard(&card.CreateCard{
		Name:     name,
		Email:    []string{email},
		IsMaster: true,
	})
	if err != nil {
		return "", err
	}

	if err := me.users.AttachCard(newUser.Id, newCard.Id); err != nil {
		return "", err
	}

	token, err := me.sealPayload(&InvitePayload{Email: email, CardID: newCard.Id.Hex()})
	if err != nil {
		return "", err
	}

	go me.mailInvitation(email, fmt.Sprintf("%s?encrypt_data=%s", me.cfg.MailLink, token))

	return OutcomePendingRegistration, nil
}

// InviteByTemporaryCard registers a placeholder contact for someone not on
// the platform and mails them an encrypted deep link.
func (me *Gateway) InviteByTemporaryCard(inviterCardId primitive.ObjectID, req *TempCardInviteRequest) (*TempCardInviteResult, error) {
	if len(req.Email) == 0 {
		return nil, ErrEmailRequired
	}

	if _, err := me.cards.FindCardById(inviterCardId); err != nil {
		return nil, err
	}

	for _, email := range req.Email {
		email = strings.ToLower(strings.TrimSpace(email))
		if exist, _ := me.cards.FindCardByEmail(email); exist != nil {
			return nil, ErrEmailInUse
		}
		if exist, _ := me.tempcards.FindTempCardByEmail(email); exist != nil {
			return nil, ErrEmailInUse
		}
	}

	tc, err := me.tempcards.CreateTempCard(&tempcard.CreateTempCard{
		Name:        req.Name,
		CompanyName: req.CompanyName,
		Address:     req.Address,
		Email:       req.Email,
		Designation: req.Designation,
		PhoneNumber: req.PhoneNumber,
		InvitedCard: inviterCardId,
	})
	if err != nil {
		return nil, err
	}

	ref := card.FriendRef{Friend: tc.Id, Origin: card.OriginOutgoing, ConnectedAt: time.Now(), Placeholder: true}
	if _, err := me.cards.PushFriend(inviterCardId, ref); err != nil {
		return nil, err
	}

	if err := me.cards.IncInviteCount(inviterCardId); err != nil {
		Logger.Error(err, "bump invite counter")
	}

	token, err := me.sealPayload(&InvitePayload{Email: req.Email[0], TempCardID: tc.Id.Hex()})
	if err != nil {
		return nil, err
	}

	link := fmt.Sprintf("%s?encrypt_data=%s", me.cfg.Link, token)
	go me.mailInvitation(req.Email[0], link)

	return &TempCardInviteResult{TempCardID: tc.Id.Hex(), Link: link}, nil
}

// MaterializeInvitedCard swaps the placeholder for a real card when the
// invitee registers: the temp card reference leaves the inviter's friend
// list, both sides gain symmetric friend entries, and the new card is marked
// as created via invitation.
func (me *Gateway) MaterializeInvitedCard(tempCardId, inviterCardId primitive.ObjectID, fields *card.CreateCard) (*card.DBCard, error) {
	tc, err := me.tempcards.FindTempCardById(tempCardId)
	if err != nil {
		return nil, err
	}

	if tc.InvitedCard != inviterCardId {
		return nil, ErrWrongInviter
	}

	if _, err := me.cards.FindCardById(inviterCardId); err != nil {
		return nil, err
	}

	if len(fields.Email) == 0 {
		fields.Email = tc.Email
	}
	if fields.Name == "" {
		fields.Name = tc.Name
	}

	newCard, err := me.cards.CreateCard(fields)
	if err != nil {
		return nil, err
	}

	if err := me.cards.SetViaInvitation(newCard.Id, true); err != nil {
		return nil, err
	}

	// friend entries first, placeholder cleanup after: a crash in between
	// leaves the pair connected with a stale placeholder, never unlinked
	now := time.Now()
	if _, err := me.cards.PushFriend(newCard.Id, card.FriendRef{Friend: inviterCardId, Origin: card.OriginIncoming, ConnectedAt: now}); err != nil {
		return nil, err
	}
	if _, err := me.cards.PushFriend(inviterCardId, card.FriendRef{Friend: newCard.Id, Origin: card.OriginOutgoing, ConnectedAt: now}); err != nil {
		return nil, err
	}

	if err := me.cards.PullFriend(inviterCardId, tempCardId); err != nil {
		Logger.Error(err, "remove placeholder entry")
	}

	if err := me.tempcards.DeleteTempCard(tempCardId); err != nil {
		Logger.Error(err, "delete temp card")
	}

	me.welcomeBonus(inviterCardId, newCard.Id)

	return newCard, nil
}

func (me *Gateway) welcomeBonus(inviterCardId, newCardId primitive.ObjectID) {
	n, err := me.notifs.AddNotif(&notification.CreateNotification{
		Sender:      inviterCardId,
		Receiver:    newCardId,
		Text:        "accept your invitation and get 250 tokens",
		RedirectURL: fmt.Sprintf("%s/%s", me.cfg.CardLink, inviterCardId.Hex()),
	})
	if err != nil {
		Logger.Error(err, "create welcome notification")
		return
	}

	if err := me.cards.PushNotification(newCardId, n.Id); err != nil {
		Logger.Error(err, "append welcome notification")
	}
}
