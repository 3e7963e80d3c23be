package admin

import (
	"net/http"

	"networth/components/card"
	"networth/components/fcm"
	"networth/components/notification"
	"networth/components/user"
	"networth/config"
	"networth/utils"
	"networth/webres"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
	"github.com/juju/ratelimit"
)

var Logger logr.Logger = logr.Discard()

type AdminRoute struct {
	adminController AdminController
	limiter         *ratelimit.Bucket
}

func NewAdminRoute(l logr.Logger, limiter *ratelimit.Bucket, userService user.I_UserRepo, cardService card.I_CardRepo, notifService notification.I_NotifRepo, fcmService fcm.I_FcmRepo, mailer I_AdminMailer, authCfg config.AuthConfig) AdminRoute {
	Logger = l
	Logger.V(2).Info("NewAdminRoute created")
	adminController := NewAdminController(userService, cardService, notifService, fcmService, mailer, authCfg)
	return AdminRoute{adminController, limiter}
}

func (me *AdminRoute) InitRouteTo(rg *gin.Engine, adminware gin.HandlerFunc) {
	router := rg.Group("/admin")
	router.POST("/login", me.RateLimit, me.LoginHandler)

	authed := rg.Group("/admin")
	authed.Use(adminware)
	authed.GET("/users", me.RateLimit, me.ListUsersHandler)
	authed.GET("/users/:id", me.RateLimit, me.UserDetailHandler)
	authed.DELETE("/users/:id", me.RateLimit, me.DeleteUserHandler)
}

func (me *AdminRoute) RateLimit(ctx *gin.Context) {
	// Check if the request is allowed by the rate limiter
	if me.limiter.TakeAvailable(1) == 0 {
		// The request is not allowed, so return an error
		ctx.AbortWithStatus(http.StatusTooManyRequests)
		return
	}
	ctx.Next()
}

func (me *AdminRoute) LoginHandler(ctx *gin.Context) {
	var req AdminLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, webres.Fail(&webres.Error{Code: http.StatusBadRequest, Message: err.Error()}))
		return
	}

	res, e, code := me.adminController.Login(&req)
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(res)
	ctx.JSON(code, webres.Ok("admin logged in", data))
}

func (me *AdminRoute) ListUsersHandler(ctx *gin.Context) {
	res, e, code := me.adminController.ListUsers(
		ctx.Query("keyword"),
		ctx.DefaultQuery("page", "1"),
		ctx.DefaultQuery("limit", "10"),
		ctx.DefaultQuery("sort_by", "created_at"),
		ctx.DefaultQuery("order", "desc"),
	)
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(res)
	ctx.JSON(code, webres.Ok("", data))
}

func (me *AdminRoute) UserDetailHandler(ctx *gin.Context) {
	res, e, code := me.adminController.UserDetail(ctx.Param("id"))
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(res)
	ctx.JSON(code, webres.Ok("", data))
}

func (me *AdminRoute) DeleteUserHandler(ctx *gin.Context) {
	e, code := me.adminController.DeleteUser(ctx.Param("id"))
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	ctx.JSON(code, webres.Ok("user deleted", nil))
}
