package notification

import (
	"context"
	"net/http"
	"time"

	"networth/components/card"
	"networth/utils"
	"networth/webres"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
	"github.com/juju/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
)

var Logger logr.Logger = logr.Discard()

type NotifRoute struct {
	notifController NotifController
	limiter         *ratelimit.Bucket
}

func NewNotifRoute(db *mongo.Database, ctx context.Context, l logr.Logger, limiter *ratelimit.Bucket, cardService card.I_CardRepo, timeout time.Duration) NotifRoute {
	Logger = l
	Logger.V(2).Info("NewNotifRoute created")
	notifService := NewNotifService(db.Collection("notifications"), ctx, timeout)
	notifController := NewNotifController(cardService, notifService)
	return NotifRoute{notifController, limiter}
}

func (me *NotifRoute) GetNotifService() I_NotifRepo {
	return me.notifController.notifService
}

func (me *NotifRoute) InitRouteTo(rg *gin.Engine, authware gin.HandlerFunc) {
	router := rg.Group("/notification")
	router.Use(authware)
	router.GET("/all/:cardId", me.RateLimit, me.ShowAllHandler)
	router.POST("/read/:id", me.RateLimit, me.MarkReadHandler)
}

func (me *NotifRoute) RateLimit(ctx *gin.Context) {
	// Check if the request is allowed by the rate limiter
	if me.limiter.TakeAvailable(1) == 0 {
		// The request is not allowed, so return an error
		ctx.AbortWithStatus(http.StatusTooManyRequests)
		return
	}
	ctx.Next()
}

func (me *NotifRoute) ShowAllHandler(ctx *gin.Context) {
	notifs, e, code := me.notifController.ShowAllNotifications(ctx.Param("cardId"))
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(notifs)
	ctx.JSON(code, webres.Ok("", data))
}

func (me *NotifRoute) MarkReadHandler(ctx *gin.Context) {
	e, code := me.notifController.MarkRead(ctx.Param("id"))
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	ctx.JSON(code, webres.Ok("notification marked as read", nil))
}
