package invite

import (
	"net/http"

	"networth/components/card"
	"networth/components/connection"
	"networth/components/notification"
	"networth/components/tempcard"
	"networth/components/user"
	"networth/config"
	"networth/utils"
	"networth/webres"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
	"github.com/juju/ratelimit"
)

var Logger logr.Logger = logr.Discard()

type InviteRoute struct {
	inviteController InviteController
	limiter          *ratelimit.Bucket
}

func NewInviteRoute(l logr.Logger, limiter *ratelimit.Bucket, users user.I_UserRepo, cards card.I_CardRepo, tempcards tempcard.I_TempCardRepo, notifs notification.I_NotifRepo, engine *connection.Engine, mailer I_InviteMailer, cfg config.InviteConfig) InviteRoute {
	Logger = l
	Logger.V(2).Info("NewInviteRoute created")
	gateway := NewGateway(users, cards, tempcards, notifs, engine, mailer, cfg)
	inviteController := NewInviteController(gateway)
	return InviteRoute{inviteController, limiter}
}

func (me *InviteRoute) GetGateway() *Gateway {
	return me.inviteController.gateway
}

func (me *InviteRoute) InitRouteTo(rg *gin.Engine, authware gin.HandlerFunc) {
	router := rg.Group("/invite")
	// decrypt serves the public landing page of an invitation link
	router.GET("/decrypt", me.RateLimit, me.DecryptHandler)

	authed := rg.Group("/invite")
	authed.Use(authware)
	authed.POST("/email", me.RateLimit, me.InviteByEmailHandler)
	authed.POST("/temp-card", me.RateLimit, me.InviteByTempCardHandler)
	authed.POST("/materialize", me.RateLimit, me.MaterializeHandler)
}

func (me *InviteRoute) RateLimit(ctx *gin.Context) {
	// Check if the request is allowed by the rate limiter
	if me.limiter.TakeAvailable(1) == 0 {
		// The request is not allowed, so return an error
		ctx.AbortWithStatus(http.StatusTooManyRequests)
		return
	}
	ctx.Next()
}

func (me *InviteRoute) InviteByEmailHandler(ctx *gin.Context) {
	var req EmailInviteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, webres.Fail(&webres.Error{Code: http.StatusBadRequest, Message: err.Error()}))
		return
	}

	res, e, code := me.inviteController.InviteByEmail(&req)
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(res)
	ctx.JSON(code, webres.Ok("invitation processed", data))
}

func (me *InviteRoute) InviteByTempCardHandler(ctx *gin.Context) {
	var req TempCardInviteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, webres.Fail(&webres.Error{Code: http.StatusBadRequest, Message: err.Error()}))
		return
	}

	res, e, code := me.inviteController.InviteByTempCard(&req)
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(res)
	ctx.JSON(code, webres.Ok("invitation sent", data))
}

func (me *InviteRoute) DecryptHandler(ctx *gin.Context) {
	payload, e, code := me.inviteController.Decrypt(ctx.Query("encrypt_data"))
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(payload)
	ctx.JSON(code, webres.Ok("", data))
}

func (me *InviteRoute) MaterializeHandler(ctx *gin.Context) {
	var req MaterializeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, webres.Fail(&webres.Error{Code: http.StatusBadRequest, Message: err.Error()}))
		return
	}

	created, e, code := me.inviteController.Materialize(&req)
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(created)
	ctx.JSON(code, webres.Ok("card created", data))
}
