package user

import (
	"context"
	"net/http"
	"time"

	"networth/auth"
	"networth/components/fcm"
	"networth/components/otp"
	"networth/config"
	"networth/utils"
	"networth/webres"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
	"github.com/juju/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oa2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

var Logger logr.Logger = logr.Discard()

type UserRoute struct {
	userController UserController
	userService    I_UserRepo
	fcmService     fcm.I_FcmRepo
	limiter        *ratelimit.Bucket
	googleConfig   *oauth2.Config
}

func NewUserRoute(db *mongo.Database, ctx context.Context, l logr.Logger, limiter *ratelimit.Bucket, mailer I_Mailer, authCfg config.AuthConfig, googleCfg config.GoogleConfig, timeout time.Duration) UserRoute {
	Logger = l
	Logger.V(2).Info("NewUserRoute created")

	userService := NewUserService(db.Collection("users"), ctx, timeout)
	otpService := otp.NewOTPService(db.Collection("otps"), ctx, timeout)
	fcmService := fcm.NewFcmService(db.Collection("fcmtokens"), ctx, timeout)
	userController := NewUserController(userService, otpService, fcmService, mailer, authCfg)

	googleConfig := &oauth2.Config{
		ClientID:     googleCfg.ClientID,
		ClientSecret: googleCfg.ClientSecret,
		RedirectURL:  googleCfg.RedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	return UserRoute{userController, userService, fcmService, limiter, googleConfig}
}

func (me *UserRoute) GetUserService() I_UserRepo {
	return me.userService
}

func (me *UserRoute) GetFcmService() fcm.I_FcmRepo {
	return me.fcmService
}

func (me *UserRoute) InitRouteTo(rg *gin.Engine, authware gin.HandlerFunc) {
	router := rg.Group("/user")
	router.POST("/register", me.RateLimit, me.RegisterHandler)
	router.POST("/verify-otp", me.RateLimit, me.VerifyOTPHandler)
	router.POST("/resend-code", me.RateLimit, me.ResendCodeHandler)
	router.POST("/login", me.RateLimit, me.LoginHandler)
	router.POST("/refresh", me.RateLimit, me.RefreshHandler)
	router.POST("/recover/verify-email", me.RateLimit, me.RecoverVerifyEmailHandler)
	router.POST("/recover/verify-otp", me.RateLimit, me.RecoverOTPVerifyHandler)
	router.POST("/recover/reset-password", me.RateLimit, me.RecoverResetPasswordHandler)

	authed := rg.Group("/user")
	authed.Use(authware)
	authed.GET("/self", me.RateLimit, me.GetSelfHandler)
	authed.POST("/change-password", me.RateLimit, me.ChangePasswordHandler)
	authed.POST("/personal-info", me.RateLimit, me.PersonalInfoHandler)

	googleroute := rg.Group("/google")
	googleroute.GET("/login", me.RateLimit, me.GoogleLogin)
	googleroute.GET("/callback", me.GoogleCallback)
}

func (me *UserRoute) RateLimit(ctx *gin.Context) {
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

// Google OAuth 2.0 login handler
func (me *UserRoute) GoogleLogin(ctx *gin.Context) {
	url := me.googleConfig.AuthCodeURL("state", oauth2.AccessTypeOffline)
	ctx.Redirect(http.StatusTemporaryRedirect, url)
}

// Google OAuth 2.0 callback handler
func (me *UserRoute) GoogleCallback(ctx *gin.Context) {
	code := ctx.Query("code")
	token, err := me.googleConfig.Exchange(context.Background(), code)
	if err != nil {
		Logger.Error(err, "exchange code for google token")
		ctx.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	oactx := context.Background()
	service, err := oa2.NewService(oactx, option.WithTokenSource(me.googleConfig.TokenSource(oactx, token)))
	if err != nil {
		Logger.Error(err, "create oauth2 service")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create oauth2 service"})
		return
	}

	userInfo, err := service.Userinfo.Get().Do()
	if err != nil {
		Logger.Error(err, "get google user info")
		ctx.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	res, e, retcode := me.userController.LoginGoogle(userInfo.Email, userInfo.Name, userInfo.Picture)
	if e != nil {
		ctx.JSON(retcode, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(res)
	ctx.JSON(retcode, webres.Ok("logged in with google", data))
}

func (me *UserRoute) RegisterHandler(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, webres.Fail(&webres.Error{Code: http.StatusBadRequest, Message: err.Error()}))
		return
	}

	res, e, code := me.userController.Register(&req)
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(res)
	ctx.JSON(code, webres.Ok("registered, verification code sent", data))
}

func (me *UserRoute) VerifyOTPHandler(ctx *gin.Context) {
	var req VerifyOTPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, webres.Fail(&webres.Error{Code: http.StatusBadRequest, Message: err.Error()}))
		return
	}

	res, e, code := me.userController.VerifyOTP(&req)
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(res)
	ctx.JSON(code, webres.Ok("email verified", data))
}

func (me *UserRoute) ResendCodeHandler(ctx *gin.Context) {
	var req RecoverVerifyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, webres.Fail(&webres.Error{Code: http.StatusBadRequest, Message: err.Error()}))
		return
	}

	res, e, code := me.userController.ResendCode(&req)
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(res)
	ctx.JSON(code, webres.Ok("verification code sent", data))
}

func (me *UserRoute) LoginHandler(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, webres.Fail(&webres.Error{Code: http.StatusBadRequest, Message: err.Error()}))
		return
	}

	res, e, code := me.userController.Login(&req)
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(res)
	ctx.JSON(code, webres.Ok("logged in", data))
}

func (me *UserRoute) RefreshHandler(ctx *gin.Context) {
	var req RefreshRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, webres.Fail(&webres.Error{Code: http.StatusBadRequest, Message: err.Error()}))
		return
	}

	res, e, code := me.userController.RefreshAccessToken(&req)
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(res)
	ctx.JSON(code, webres.Ok("token refreshed", data))
}

func (me *UserRoute) RecoverVerifyEmailHandler(ctx *gin.Context) {
	var req RecoverVerifyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, webres.Fail(&webres.Error{Code: http.StatusBadRequest, Message: err.Error()}))
		return
	}

	res, e, code := me.userController.RecoverVerifyEmail(&req)
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(res)
	ctx.JSON(code, webres.Ok("recovery code sent", data))
}

func (me *UserRoute) RecoverOTPVerifyHandler(ctx *gin.Context) {
	var req VerifyOTPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, webres.Fail(&webres.Error{Code: http.StatusBadRequest, Message: err.Error()}))
		return
	}

	token, e, code := me.userController.RecoverOTPVerify(&req)
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(gin.H{"reset_token": token})
	ctx.JSON(code, webres.Ok("code accepted", data))
}

func (me *UserRoute) RecoverResetPasswordHandler(ctx *gin.Context) {
	var req RecoverResetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, webres.Fail(&webres.Error{Code: http.StatusBadRequest, Message: err.Error()}))
		return
	}

	res, e, code := me.userController.RecoverResetPassword(&req)
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(res)
	ctx.JSON(code, webres.Ok("password reset", data))
}

func (me *UserRoute) GetSelfHandler(ctx *gin.Context) {
	userId, ok := validUserId(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, webres.Fail(&webres.Error{Code: http.StatusUnauthorized, Message: "unauthorized"}))
		return
	}

	res, e, code := me.userController.GetSelf(userId)
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(res)
	ctx.JSON(code, webres.Ok("", data))
}

func (me *UserRoute) ChangePasswordHandler(ctx *gin.Context) {
	userId, ok := validUserId(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, webres.Fail(&webres.Error{Code: http.StatusUnauthorized, Message: "unauthorized"}))
		return
	}

	var req ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, webres.Fail(&webres.Error{Code: http.StatusBadRequest, Message: err.Error()}))
		return
	}

	res, e, code := me.userController.ChangePassword(userId, &req)
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(res)
	ctx.JSON(code, webres.Ok("password changed", data))
}

func (me *UserRoute) PersonalInfoHandler(ctx *gin.Context) {
	userId, ok := validUserId(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, webres.Fail(&webres.Error{Code: http.StatusUnauthorized, Message: "unauthorized"}))
		return
	}

	var info PersonalInfo
	if err := ctx.ShouldBindJSON(&info); err != nil {
		ctx.JSON(http.StatusBadRequest, webres.Fail(&webres.Error{Code: http.StatusBadRequest, Message: err.Error()}))
		return
	}

	res, e, code := me.userController.UpdatePersonalInfo(userId, &info)
	if e != nil {
		ctx.JSON(code, webres.Fail(e))
		return
	}

	data, _ := utils.ToRawMessage(res)
	ctx.JSON(code, webres.Ok("personal info updated", data))
}
