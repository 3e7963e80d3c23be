package connection

import (
	"errors"
	"fmt"
	"net/http"

	"networth/components/card"
	"networth/webres"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ConnectionController struct {
	engine *Engine
}

func NewConnectionController(engine *Engine) ConnectionController {
	return ConnectionController{engine}
}

func parsePair(aHex, bHex string) (primitive.ObjectID, primitive.ObjectID, *webres.Error) {
	a, err := primitive.ObjectIDFromHex(aHex)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID,
			&webres.Error{Code: http.StatusBadRequest, Message: "invalid card id"}
	}
	b, err := primitive.ObjectIDFromHex(bHex)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID,
			&webres.Error{Code: http.StatusBadRequest, Message: "invalid card id"}
	}
	return a, b, nil
}

// engineError translates domain errors to response codes. Everything not a
// domain error is a dependency failure the caller may retry.
func engineError(err error) (*webres.Error, int) {
	switch {
	case errors.Is(err, ErrInvalidOperation), errors.Is(err, ErrNoPendingRequest):
		return &webres.Error{Code: http.StatusBadRequest, Message: err.Error()}, http.StatusOK
	case errors.Is(err, ErrDuplicateRequest), errors.Is(err, ErrRequestedByPeer), errors.Is(err, ErrAlreadyConnected):
		return &webres.Error{Code: http.StatusConflict, Message: err.Error()}, http.StatusOK
	case errors.Is(err, card.ErrCardNotFound):
		return &webres.Error{Code: http.StatusNotFound, Message: err.Error()}, http.StatusOK
	default:
		return &webres.Error{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusInternalServerError
	}
}

func (me *ConnectionController) SendRequest(req *PairRequest) (string, *webres.Error, int) {
	Logger.V(2).Info(fmt.Sprintf("send request %s -> %s", req.SenderID, req.RecipientID))

	sender, recipient, e := parsePair(req.SenderID, req.RecipientID)
	if e != nil {
		return "", e, http.StatusOK
	}

	if err := me.engine.SendRequest(sender, recipient); err != nil {
		e, code := engineError(err)
		return "", e, code
	}

	return "connection request sent", nil, http.StatusOK
}

func (me *ConnectionController) AcceptRequest(req *PairRequest) (string, *webres.Error, int) {
	Logger.V(2).Info(fmt.Sprintf("accept request %s <- %s", req.SenderID, req.RecipientID))

	accepter, requester, e := parsePair(req.SenderID, req.RecipientID)
	if e != nil {
		return "", e, http.StatusOK
	}

	if err := me.engine.AcceptRequest(accepter, requester); err != nil {
		e, code := engineError(err)
		return "", e, code
	}

	return "connection request accepted", nil, http.StatusOK
}

func (me *ConnectionController) CancelIncoming(req *PairRequest) (*webres.Error, int) {
	Logger.V(2).Info(fmt.Sprintf("cancel incoming %s x %s", req.SenderID, req.RecipientID))

	holder, requester, e := parsePair(req.SenderID, req.RecipientID)
	if e != nil {
		return e, http.StatusOK
	}

	if err := me.engine.CancelIncoming(holder, requester); err != nil {
		return engineError(err)
	}

	return nil, http.StatusOK
}

func (me *ConnectionController) CancelOutgoing(req *PairRequest) (*webres.Error, int) {
	Logger.V(2).Info(fmt.Sprintf("cancel outgoing %s x %s", req.SenderID, req.RecipientID))

	holder, recipient, e := parsePair(req.SenderID, req.RecipientID)
	if e != nil {
		return e, http.StatusOK
	}

	if err := me.engine.CancelOutgoing(holder, recipient); err != nil {
		return engineError(err)
	}

	return nil, http.StatusOK
}

func (me *ConnectionController) Unfriend(req *UnfriendRequest) (*webres.Error, int) {
	Logger.V(2).Info(fmt.Sprintf("unfriend %s x %s", req.OwnID, req.RemoveFriendID))

	own, friend, e := parsePair(req.OwnID, req.RemoveFriendID)
	if e != nil {
		return e, http.StatusOK
	}

	if err := me.engine.Unfriend(own, friend); err != nil {
		return engineError(err)
	}

	return nil, http.StatusOK
}

func (me *ConnectionController) QrScan(req *QrScanRequest) (string, *webres.Error, int) {
	Logger.V(2).Info(fmt.Sprintf("qr scan %s -> %s", req.SenderID, req.ReceiverID))

	scanner, scanned, e := parsePair(req.SenderID, req.ReceiverID)
	if e != nil {
		return "", e, http.StatusOK
	}

	if err := me.engine.ConnectViaQr(scanner, scanned); err != nil {
		e, code := engineError(err)
		return "", e, code
	}

	return "cards connected", nil, http.StatusOK
}

func (me *ConnectionController) CheckFriend(ownHex, otherHex string) (bool, *webres.Error, int) {
	own, other, e := parsePair(ownHex, otherHex)
	if e != nil {
		return false, e, http.StatusOK
	}

	isFriend, err := me.engine.IsFriend(own, other)
	if err != nil {
		e, code := engineError(err)
		return false, e, code
	}

	return isFriend, nil, http.StatusOK
}

func (me *ConnectionController) IncomingList(cardHex string) ([]*card.DBCard, *webres.Error, int) {
	cardId, err := primitive.ObjectIDFromHex(cardHex)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusBadRequest, Message: "invalid card id"}, http.StatusOK
	}

	cards, err := me.engine.IncomingList(cardId)
	if err != nil {
		e, code := engineError(err)
		return nil, e, code
	}

	return cards, nil, http.StatusOK
}

func (me *ConnectionController) OutgoingList(cardHex string) ([]*card.DBCard, *webres.Error, int) {
	cardId, err := primitive.ObjectIDFromHex(cardHex)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusBadRequest, Message: "invalid card id"}, http.StatusOK
	}

	cards, err := me.engine.OutgoingList(cardId)
	if err != nil {
		e, code := engineError(err)
		return nil, e, code
	}

	return cards, nil, http.StatusOK
}
