package card

import (
	"context"
	"net/http"
	"time"

	"networth/auth"
	"networth/utils"
	"networth/webres"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
	"github.com/juju/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
)

var Logger logr.Logger = logr.Discard()

type CardRoute struct {
	cardController CardController
	cardService    I_CardRepo
	limiter        *ratelimit.Bucket
}

func NewCardRoute(db *mongo.Database, ctx context.Context, l logr.Logger, limiter *ratelimit.Bucket, ownerRepo I_OwnerRepo, timeout time.Duration) CardRoute {
	Logger = l
	Logger.V(2).Info("NewCardRoute created")
	cardService := NewCardService(db, ctx, timeout)
	cardController := NewCardController(cardService, ownerRepo)
	return CardRoute{cardController, cardService, limiter}
}

func (me *CardRoute) GetCardService() I_CardRepo {
	return me.cardService
}

func (me *CardRoute) InitRouteTo(rg *gin.Engine, authware gin.HandlerFunc) {
	router := rg.Group("/card")
	router.Use(authware)
	router.POST("/create", me.RateLimit, me.CreateCardHandler)
	router.POST("/update/:id", me.RateLimit, me.UpdateCardHandler)
	router.GET("/all", me.RateLimit, me.UserCardsHandler)
	router.GET("/activities/:cardId", me.RateLimit, me.CardActivitiesHandler)
	router.POST("/activity/:cardId", me.RateLimit, me.AddActivityHandler)
	router.GET("/links/:cardId", me.RateLimit, me.CardLinksHandler)
	router.POST("/link/:cardId", me.RateLimit, me.AddLinkHandler)
	router.POST("/search", me.RateLimit, me.SearchContactHandler)
	router.GET("/:id", me.RateLimit, me.GetCardHandler)
}

func (me *CardRoute) RateLimit(ctx *gin.Context) {
	// Check if the request is allowed by the rate limiter
	if me.limiter.TakeAvailable(1) == 0 {
		// The request is not allowed, so return an error
		ctx.AbortWithStatus(http.StatusTooManyRequests)
		return
	}
	ctx.Next()
}

func validUserId(ctx *gin.Context) (string, bool) {
	v, ok := ctx.Get("validuser")
	if !ok {
		return "", false
	}
	claims, ok := v.(*auth.Claims)
	if !ok {
		return "", false
	}
	return claims.GetUserID(), true
}

func (me *CardRoute) CreateCardHandler(ctx *gin.Context) {
	userId, ok := validUserId(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, webres.Fail(&webres.Error{Code: http.StatusUnauthorized, Message: "unauthorized"}))
		return
	}

	var input CreateCard
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, webres.Fail(&webres.Error{Code: http.StatusBadRequest, Message: err.Error()}))
		return
	}

	created, e, code := me.cardController.CreateCard(userId, &input)
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(created)
	ctx.JSON(code, webres.Ok("card created", data))
}

func (me *CardRoute) UpdateCardHandler(ctx *gin.Context) {
	var input DBCard
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, webres.Fail(&webres.Error{Code: http.StatusBadRequest, Message: err.Error()}))
		return
	}

	updated, e, code := me.cardController.UpdateCard(ctx.Param("id"), &input)
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(updated)
	ctx.JSON(code, webres.Ok("card updated", data))
}

func (me *CardRoute) GetCardHandler(ctx *gin.Context) {
	detail, e, code := me.cardController.GetCard(ctx.Param("id"))
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(detail)
	ctx.JSON(code, webres.Ok("", data))
}

func (me *CardRoute) UserCardsHandler(ctx *gin.Context) {
	userId, ok := validUserId(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, webres.Fail(&webres.Error{Code: http.StatusUnauthorized, Message: "unauthorized"}))
		return
	}

	cards, e, code := me.cardController.UserCards(userId)
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(cards)
	ctx.JSON(code, webres.Ok("", data))
}

func (me *CardRoute) AddActivityHandler(ctx *gin.Context) {
	var input Activity
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, webres.Fail(&webres.Error{Code: http.StatusBadRequest, Message: err.Error()}))
		return
	}

	created, e, code := me.cardController.AddActivity(ctx.Param("cardId"), &input)
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(created)
	ctx.JSON(code, webres.Ok("activity added", data))
}

func (me *CardRoute) CardActivitiesHandler(ctx *gin.Context) {
	activities, e, code := me.cardController.CardActivities(ctx.Param("cardId"))
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(activities)
	ctx.JSON(code, webres.Ok("", data))
}

func (me *CardRoute) AddLinkHandler(ctx *gin.Context) {
	var input Link
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, webres.Fail(&webres.Error{Code: http.StatusBadRequest, Message: err.Error()}))
		return
	}

	created, e, code := me.cardController.AddLink(ctx.Param("cardId"), &input)
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(created)
	ctx.JSON(code, webres.Ok("link added", data))
}

func (me *CardRoute) CardLinksHandler(ctx *gin.Context) {
	links, e, code := me.cardController.CardLinks(ctx.Param("cardId"))
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(links)
	ctx.JSON(code, webres.Ok("", data))
}

func (me *CardRoute) SearchContactHandler(ctx *gin.Context) {
	var q SearchContact
	if err := ctx.ShouldBindJSON(&q); err != nil {
		ctx.JSON(http.StatusBadRequest, webres.Fail(&webres.Error{Code: http.StatusBadRequest, Message: err.Error()}))
		return
	}

	cards, e, code := me.cardController.SearchContact(&q)
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(cards)
	ctx.JSON(code, webres.Ok("", data))
}
