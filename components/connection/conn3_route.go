package connection

import (
	"net/http"

	"networth/components/card"
	"networth/components/notification"
	"networth/utils"
	"networth/webres"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
	"github.com/juju/ratelimit"
)

var Logger logr.Logger = logr.Discard()

type ConnectionRoute struct {
	connectionController ConnectionController
	limiter              *ratelimit.Bucket
}

func NewConnectionRoute(l logr.Logger, limiter *ratelimit.Bucket, cardService card.I_CardRepo, notifService notification.I_NotifRepo, pusher Pusher, cardLink string) ConnectionRoute {
	Logger = l
	Logger.V(2).Info("NewConnectionRoute created")
	engine := NewEngine(cardService, notifService, pusher, cardLink)
	connectionController := NewConnectionController(engine)
	return ConnectionRoute{connectionController, limiter}
}

func (me *ConnectionRoute) GetEngine() *Engine {
	return me.connectionController.engine
}

func (me *ConnectionRoute) InitRouteTo(rg *gin.Engine, authware gin.HandlerFunc) {
	router := rg.Group("/connection")
	router.Use(authware)
	router.POST("/send-request", me.RateLimit, me.SendRequestHandler)
	router.POST("/accept-request", me.RateLimit, me.AcceptRequestHandler)
	router.POST("/cancel-incoming", me.RateLimit, me.CancelIncomingHandler)
	router.POST("/cancel-outgoing", me.RateLimit, me.CancelOutgoingHandler)
	router.POST("/unfriend", me.RateLimit, me.UnfriendHandler)
	router.POST("/qr-scan", me.RateLimit, me.QrScanHandler)
	router.GET("/check-friend", me.RateLimit, me.CheckFriendHandler)
	router.GET("/incoming/:cardId", me.RateLimit, me.IncomingListHandler)
	router.GET("/outgoing/:cardId", me.RateLimit, me.OutgoingListHandler)
}

func (me *ConnectionRoute) RateLimit(ctx *gin.Context) {
	// Check if the request is allowed by the rate limiter
	if me.limiter.TakeAvailable(1) == 0 {
		// The request is not allowed, so return an error
		ctx.AbortWithStatus(http.StatusTooManyRequests)
		return
	}
	ctx.Next()
}

func (me *ConnectionRoute) SendRequestHandler(ctx *gin.Context) {
	var req PairRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, webres.Fail(&webres.Error{Code: http.StatusBadRequest, Message: err.Error()}))
		return
	}

	msg, e, code := me.connectionController.SendRequest(&req)
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	ctx.JSON(code, webres.Ok(msg, nil))
}

func (me *ConnectionRoute) AcceptRequestHandler(ctx *gin.Context) {
	var req PairRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, webres.Fail(&webres.Error{Code: http.StatusBadRequest, Message: err.Error()}))
		return
	}

	msg, e, code := me.connectionController.AcceptRequest(&req)
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	ctx.JSON(code, webres.Ok(msg, nil))
}

func (me *ConnectionRoute) CancelIncomingHandler(ctx *gin.Context) {
	var req PairRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, webres.Fail(&webres.Error{Code: http.StatusBadRequest, Message: err.Error()}))
		return
	}

	e, code := me.connectionController.CancelIncoming(&req)
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	ctx.JSON(code, webres.Ok("", nil))
}

func (me *ConnectionRoute) CancelOutgoingHandler(ctx *gin.Context) {
	var req PairRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, webres.Fail(&webres.Error{Code: http.StatusBadRequest, Message: err.Error()}))
		return
	}

	e, code := me.connectionController.CancelOutgoing(&req)
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	ctx.JSON(code, webres.Ok("", nil))
}

func (me *ConnectionRoute) UnfriendHandler(ctx *gin.Context) {
	var req UnfriendRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, webres.Fail(&webres.Error{Code: http.StatusBadRequest, Message: err.Error()}))
		return
	}

	e, code := me.connectionController.Unfriend(&req)
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	ctx.JSON(code, webres.Ok("", nil))
}

func (me *ConnectionRoute) QrScanHandler(ctx *gin.Context) {
	var req QrScanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, webres.Fail(&webres.Error{Code: http.StatusBadRequest, Message: err.Error()}))
		return
	}

	msg, e, code := me.connectionController.QrScan(&req)
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	ctx.JSON(code, webres.Ok(msg, nil))
}

func (me *ConnectionRoute) CheckFriendHandler(ctx *gin.Context) {
	isFriend, e, code := me.connectionController.CheckFriend(ctx.Query("own_id"), ctx.Query("other_id"))
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(isFriend)
	ctx.JSON(code, webres.Ok("", data))
}

func (me *ConnectionRoute) IncomingListHandler(ctx *gin.Context) {
	cards, e, code := me.connectionController.IncomingList(ctx.Param("cardId"))
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(cards)
	ctx.JSON(code, webres.Ok("", data))
}

func (me *ConnectionRoute) OutgoingListHandler(ctx *gin.Context) {
	cards, e, code := me.connectionController.OutgoingList(ctx.Param("cardId"))
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(cards)
	ctx.JSON(code, webres.Ok("", data))
}
