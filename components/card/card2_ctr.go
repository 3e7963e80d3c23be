package card

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"networth/webres"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// I_OwnerRepo is the slice of the account store the card controller needs.
// The user component implements it.
type I_OwnerRepo interface {
	AttachCard(userId, cardId primitive.ObjectID) error
	CardIds(userId primitive.ObjectID) ([]primitive.ObjectID, error)
}

// CardDetail is a card with its links and activities joined in.
type CardDetail struct {
	Card       *DBCard     `json:"card"`
	Links      []*Link     `json:"links"`
	Activities []*Activity `json:"activities"`
}

type CardController struct {
	cardService I_CardRepo
	ownerRepo   I_OwnerRepo
}

func NewCardController(cardService I_CardRepo, ownerRepo I_OwnerRepo) CardController {
	return CardController{cardService, ownerRepo}
}

func repoError(err error) (*webres.Error, int) {
	switch {
	case errors.Is(err, ErrCardNotFound):
		return &webres.Error{Code: http.StatusNotFound, Message: err.Error()}, http.StatusOK
	default:
		return &webres.Error{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusInternalServerError
	}
}

// CreateCard makes a card for the user. The user's first card becomes the
// master card.
func (me *CardController) CreateCard(userIdHex string, input *CreateCard) (*DBCard, *webres.Error, int) {
	Logger.V(2).Info(fmt.Sprintf("create card for user %s", userIdHex))

	userId, err := primitive.ObjectIDFromHex(userIdHex)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusBadRequest, Message: "invalid user id"}, http.StatusOK
	}

	owned, err := me.ownerRepo.CardIds(userId)
	if err != nil {
		e, code := repoError(err)
		return nil, e, code
	}
	input.IsMaster = len(owned) == 0
	input.CreatedAt = time.Now()
	input.UpdatedAt = input.CreatedAt

	created, err := me.cardService.CreateCard(input)
	if err != nil {
		e, code := repoError(err)
		return nil, e, code
	}

	if err := me.ownerRepo.AttachCard(userId, created.Id); err != nil {
		e, code := repoError(err)
		return nil, e, code
	}

	return created, nil, http.StatusOK
}

func (me *CardController) UpdateCard(idHex string, input *DBCard) (*DBCard, *webres.Error, int) {
	Logger.V(2).Info(fmt.Sprintf("update card %s", idHex))

	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusBadRequest, Message: "invalid card id"}, http.StatusOK
	}

	current, err := me.cardService.FindCardById(id)
	if err != nil {
		e, code := repoError(err)
		return nil, e, code
	}

	// relationship containers are engine territory, never client writable
	input.FriendList = current.FriendList
	input.Incoming = current.Incoming
	input.Outgoing = current.Outgoing
	input.Notifications = current.Notifications
	input.Links = current.Links
	input.Activities = current.Activities
	input.TotalPoints = current.TotalPoints
	input.InviteCount = current.InviteCount
	input.IsMaster = current.IsMaster
	input.ViaInvitation = current.ViaInvitation
	input.CreatedAt = current.CreatedAt
	input.UpdatedAt = time.Now()

	updated, err := me.cardService.UpdateCard(id, input)
	if err != nil {
		e, code := repoError(err)
		return nil, e, code
	}

	return updated, nil, http.StatusOK
}

func (me *CardController) GetCard(idHex string) (*CardDetail, *webres.Error, int) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusBadRequest, Message: "invalid card id"}, http.StatusOK
	}

	c, err := me.cardService.FindCardById(id)
	if err != nil {
		e, code := repoError(err)
		return nil, e, code
	}

	links, err := me.cardService.FindLinksByIds(c.Links)
	if err != nil {
		e, code := repoError(err)
		return nil, e, code
	}

	activities, err := me.cardService.FindActivitiesByIds(c.Activities)
	if err != nil {
		e, code := repoError(err)
		return nil, e, code
	}

	return &CardDetail{Card: c, Links: links, Activities: activities}, nil, http.StatusOK
}

// UserCards lists every card owned by the user, master card first.
func (me *CardController) UserCards(userIdHex string) ([]*DBCard, *webres.Error, int) {
	userId, err := primitive.ObjectIDFromHex(userIdHex)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusBadRequest, Message: "invalid user id"}, http.StatusOK
	}

	ids, err := me.ownerRepo.CardIds(userId)
	if err != nil {
		e, code := repoError(err)
		return nil, e, code
	}

	cards, err := me.cardService.FindCardsByIds(ids)
	if err != nil {
		e, code := repoError(err)
		return nil, e, code
	}

	for i, c := range cards {
		if c.IsMaster && i != 0 {
			cards[0], cards[i] = cards[i], cards[0]
			break
		}
	}

	return cards, nil, http.StatusOK
}

func (me *CardController) AddActivity(cardIdHex string, input *Activity) (*Activity, *webres.Error, int) {
	cardId, err := primitive.ObjectIDFromHex(cardIdHex)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusBadRequest, Message: "invalid card id"}, http.StatusOK
	}

	input.CreatedAt = time.Now()
	input.UpdatedAt = input.CreatedAt

	created, err := me.cardService.CreateActivity(input)
	if err != nil {
		e, code := repoError(err)
		return nil, e, code
	}

	if err := me.cardService.PushActivity(cardId, created.Id); err != nil {
		e, code := repoError(err)
		return nil, e, code
	}

	return created, nil, http.StatusOK
}

func (me *CardController) CardActivities(cardIdHex string) ([]*Activity, *webres.Error, int) {
	cardId, err := primitive.ObjectIDFromHex(cardIdHex)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusBadRequest, Message: "invalid card id"}, http.StatusOK
	}

	c, err := me.cardService.FindCardById(cardId)
	if err != nil {
		e, code := repoError(err)
		return nil, e, code
	}

	activities, err := me.cardService.FindActivitiesByIds(c.Activities)
	if err != nil {
		e, code := repoError(err)
		return nil, e, code
	}

	return activities, nil, http.StatusOK
}

func (me *CardController) AddLink(cardIdHex string, input *Link) (*Link, *webres.Error, int) {
	cardId, err := primitive.ObjectIDFromHex(cardIdHex)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusBadRequest, Message: "invalid card id"}, http.StatusOK
	}

	input.CreatedAt = time.Now()
	input.UpdatedAt = input.CreatedAt

	created, err := me.cardService.CreateLink(input)
	if err != nil {
		e, code := repoError(err)
		return nil, e, code
	}

	if err := me.cardService.PushLink(cardId, created.Id); err != nil {
		e, code := repoError(err)
		return nil, e, code
	}

	return created, nil, http.StatusOK
}

func (me *CardController) CardLinks(cardIdHex string) ([]*Link, *webres.Error, int) {
	cardId, err := primitive.ObjectIDFromHex(cardIdHex)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusBadRequest, Message: "invalid card id"}, http.StatusOK
	}

	c, err := me.cardService.FindCardById(cardId)
	if err != nil {
		e, code := repoError(err)
		return nil, e, code
	}

	links, err := me.cardService.FindLinksByIds(c.Links)
	if err != nil {
		e, code := repoError(err)
		return nil, e, code
	}

	return links, nil, http.StatusOK
}

func (me *CardController) SearchContact(q *SearchContact) ([]*DBCard, *webres.Error, int) {
	cards, err := me.cardService.SearchCards(q)
	if err != nil {
		e, code := repoError(err)
		return nil, e, code
	}

	return cards, nil, http.StatusOK
}
