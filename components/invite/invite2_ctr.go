package invite

import (
	"errors"
	"fmt"
	"net/http"

	"networth/components/card"
	"networth/components/connection"
	"networth/components/tempcard"
	"networth/components/user"
	"networth/utils"
	"networth/webres"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InviteController struct {
	gateway *Gateway
}

func NewInviteController(gateway *Gateway) InviteController {
	return InviteController{gateway}
}

func gatewayError(err error) (*webres.Error, int) {
	switch {
	case errors.Is(err, connection.ErrInvalidOperation),
		errors.Is(err, user.ErrNoMasterCard),
		errors.Is(err, ErrBadInvitation),
		errors.Is(err, ErrWrongInviter),
		errors.Is(err, ErrEmailRequired):
		return &webres.Error{Code: http.StatusBadRequest, Message: err.Error()}, http.StatusOK
	case errors.Is(err, ErrEmailInUse),
		errors.Is(err, connection.ErrDuplicateRequest),
		errors.Is(err, connection.ErrRequestedByPeer),
		errors.Is(err, connection.ErrAlreadyConnected):
		return &webres.Error{Code: http.StatusConflict, Message: err.Error()}, http.StatusOK
	case errors.Is(err, card.ErrCardNotFound),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, tempcard.ErrTempCardNotFound):
		return &webres.Error{Code: http.StatusNotFound, Message: err.Error()}, http.StatusOK
	default:
		return &webres.Error{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusInternalServerError
	}
}

func (me *InviteController) InviteByEmail(req *EmailInviteRequest) (*EmailInviteResult, *webres.Error, int) {
	Logger.V(2).Info(fmt.Sprintf("invite %s by email", req.RecipientEmail))

	senderId, err := primitive.ObjectIDFromHex(req.SenderCardID)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusBadRequest, Message: "invalid card id"}, http.StatusOK
	}

	if !utils.IsValidEmail(req.RecipientEmail) {
		return nil, &webres.Error{Code: http.StatusBadRequest, Message: ErrInvalidEmailFmt.Error()}, http.StatusOK
	}

	outcome, err := me.gateway.InviteByEmail(senderId, req.RecipientEmail)
	if err != nil {
		e, code := gatewayError(err)
		return nil, e, code
	}

	return &EmailInviteResult{Outcome: outcome}, nil, http.StatusOK
}

func (me *InviteController) InviteByTempCard(req *TempCardInviteRequest) (*TempCardInviteResult, *webres.Error, int) {
	Logger.V(2).Info(fmt.Sprintf("temp card invite from %s", req.InviterCardID))

	inviterId, err := primitive.ObjectIDFromHex(req.InviterCardID)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusBadRequest, Message: "invalid card id"}, http.StatusOK
	}

	for _, email := range req.Email {
		if !utils.IsValidEmail(email) {
			return nil, &webres.Error{Code: http.StatusBadRequest, Message: ErrInvalidEmailFmt.Error()}, http.StatusOK
		}
	}

	res, err := me.gateway.InviteByTemporaryCard(inviterId, req)
	if err != nil {
		e, code := gatewayError(err)
		return nil, e, code
	}

	return res, nil, http.StatusOK
}

func (me *InviteController) Decrypt(encrypted string) (*InvitePayload, *webres.Error, int) {
	if encrypted == "" {
		return nil, &webres.Error{Code: http.StatusBadRequest, Message: "encrypt_data is required"}, http.StatusOK
	}

	payload, err := me.gateway.DecryptInvitation(encrypted)
	if err != nil {
		e, code := gatewayError(err)
		return nil, e, code
	}

	return payload, nil, http.StatusOK
}

func (me *InviteController) Materialize(req *MaterializeRequest) (*card.DBCard, *webres.Error, int) {
	Logger.V(2).Info(fmt.Sprintf("materialize invited card %s", req.TempCardID))

	tempCardId, err := primitive.ObjectIDFromHex(req.TempCardID)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusBadRequest, Message: "invalid temp card id"}, http.StatusOK
	}

	inviterId, err := primitive.ObjectIDFromHex(req.InviterCardID)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusBadRequest, Message: "invalid card id"}, http.StatusOK
	}

	fields := &card.CreateCard{
		Design:      req.Design,
		Color:       req.Color,
		Name:        req.Name,
		Bio:         req.Bio,
		CompanyName: req.CompanyName,
		Designation: req.Designation,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	}

	created, err := me.gateway.MaterializeInvitedCard(tempCardId, inviterId, fields)
	if err != nil {
		e, code := gatewayError(err)
		return nil, e, code
	}

	return created, nil, http.StatusOK
}
