package aitoken

import (
	"context"
	"net/http"
	"time"

	"networth/utils"
	"networth/webres"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
	"github.com/juju/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
)

var Logger logr.Logger = logr.Discard()

type AITokenRoute struct {
	tokenController AITokenController
	tokenService    AITokenService
	limiter         *ratelimit.Bucket
}

func NewAITokenRoute(db *mongo.Database, ctx context.Context, l logr.Logger, limiter *ratelimit.Bucket, timeout time.Duration) AITokenRoute {
	Logger = l
	Logger.V(2).Info("NewAITokenRoute created")
	tokenService := NewAITokenService(db.Collection("aitokens"), ctx, timeout)
	tokenController := NewAITokenController(&tokenService)
	return AITokenRoute{tokenController, tokenService, limiter}
}

func (me *AITokenRoute) GetAITokenService() *AITokenService {
	return &me.tokenService
}

func (me *AITokenRoute) InitRouteTo(rg *gin.Engine, adminware gin.HandlerFunc) {
	router := rg.Group("/admin/aitoken")
	router.Use(adminware)
	router.POST("/create", me.RateLimit, me.CreateHandler)
	router.GET("/all", me.RateLimit, me.ListHandler)
	router.GET("/:id", me.RateLimit, me.GetHandler)
	router.POST("/update/:id", me.RateLimit, me.UpdateHandler)
	router.POST("/enable/:id", me.RateLimit, me.EnableHandler)
	router.POST("/disable/:id", me.RateLimit, me.DisableHandler)
	router.DELETE("/:id", me.RateLimit, me.DeleteHandler)
}

func (me *AITokenRoute) RateLimit(ctx *gin.Context) {
	// Check if the request is allowed by the rate limiter
	if me.limiter.TakeAvailable(1) == 0 {
		// The request is not allowed, so return an error
		ctx.AbortWithStatus(http.StatusTooManyRequests)
		return
	}
	ctx.Next()
}

func (me *AITokenRoute) CreateHandler(ctx *gin.Context) {
	var input CreateAIToken
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, webres.Fail(&webres.Error{Code: http.StatusBadRequest, Message: err.Error()}))
		return
	}

	res, e, code := me.tokenController.CreateAIToken(&input)
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(res)
	ctx.JSON(code, webres.Ok("ai token created", data))
}

func (me *AITokenRoute) ListHandler(ctx *gin.Context) {
	res, e, code := me.tokenController.ListAITokens()
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(res)
	ctx.JSON(code, webres.Ok("", data))
}

func (me *AITokenRoute) GetHandler(ctx *gin.Context) {
	res, e, code := me.tokenController.GetAIToken(ctx.Param("id"))
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(res)
	ctx.JSON(code, webres.Ok("", data))
}

func (me *AITokenRoute) UpdateHandler(ctx *gin.Context) {
	var input CreateAIToken
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, webres.Fail(&webres.Error{Code: http.StatusBadRequest, Message: err.Error()}))
		return
	}

	res, e, code := me.tokenController.UpdateAIToken(ctx.Param("id"), &input)
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(res)
	ctx.JSON(code, webres.Ok("ai token updated", data))
}

func (me *AITokenRoute) EnableHandler(ctx *gin.Context) {
	res, e, code := me.tokenController.SetEnabled(ctx.Param("id"), true)
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(res)
	ctx.JSON(code, webres.Ok("ai token enabled", data))
}

func (me *AITokenRoute) DisableHandler(ctx *gin.Context) {
	res, e, code := me.tokenController.SetEnabled(ctx.Param("id"), false)
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(res)
	ctx.JSON(code, webres.Ok("ai token disabled", data))
}

func (me *AITokenRoute) DeleteHandler(ctx *gin.Context) {
	e, code := me.tokenController.DeleteAIToken(ctx.Param("id"))
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	ctx.JSON(code, webres.Ok("ai token deleted", nil))
}
