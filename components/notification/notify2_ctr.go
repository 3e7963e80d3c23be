package notification

import (
	"fmt"
	"net/http"

	"networth/components/card"
	"networth/webres"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotifController struct {
	cardService  card.I_CardRepo
	notifService I_NotifRepo
}

func NewNotifController(cardService card.I_CardRepo, notifService I_NotifRepo) NotifController {
	return NotifController{cardService, notifService}
}

// ShowAllNotifications lists the card's inbox in append order.
func (me *NotifController) ShowAllNotifications(cardIdHex string) ([]*DBNotification, *webres.Error, int) {
	Logger.V(2).Info(fmt.Sprintf("show notifications of %s", cardIdHex))

	cardId, err := primitive.ObjectIDFromHex(cardIdHex)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusBadRequest, Message: "invalid card id"}, http.StatusOK
	}

	c, err := me.cardService.FindCardById(cardId)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusNotFound, Message: "card not found"}, http.StatusOK
	}

	notifs, err := me.notifService.FindNotifsByIds(c.Notifications)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusInternalServerError
	}

	return notifs, nil, http.StatusOK
}

func (me *NotifController) MarkRead(idHex string) (*webres.Error, int) {
	Logger.V(2).Info(fmt.Sprintf("mark notification %s read", idHex))

	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return &webres.Error{Code: http.StatusBadRequest, Message: "invalid notification id"}, http.StatusOK
	}

	if err := me.notifService.MarkRead(id); err != nil {
		if err == ErrNotifNotFound {
			return &webres.Error{Code: http.StatusNotFound, Message: err.Error()}, http.StatusOK
		}
		return &webres.Error{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusInternalServerError
	}

	return nil, http.StatusOK
}
