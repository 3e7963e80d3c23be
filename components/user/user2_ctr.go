package user

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"networth/auth"
	"networth/components/fcm"
	"networth/components/otp"
	"networth/config"
	"networth/utils"
	"networth/webres"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoleReset tags the short-lived token issued by the forgot-password flow.
// It is only good for RecoverResetPassword.
const RoleReset = "reset"

type I_Mailer interface {
	SendOTPMail(to, code string) error
}

type UserController struct {
	userService I_UserRepo
	otpService  otp.I_OTPRepo
	fcmService  fcm.I_FcmRepo
	mailer      I_Mailer
	authCfg     config.AuthConfig
}

func NewUserController(userService I_UserRepo, otpService otp.I_OTPRepo, fcmService fcm.I_FcmRepo, mailer I_Mailer, authCfg config.AuthConfig) UserController {
	return UserController{userService, otpService, fcmService, mailer, authCfg}
}

func (me *UserController) sendCodeMail(email string) {
	code := utils.GenerateOTP()
	if err := me.otpService.IssueCode(email, code); err != nil {
		Logger.Error(err, "issue verification code")
		return
	}
	if err := me.mailer.SendOTPMail(email, code); err != nil {
		Logger.Error(err, "send verification mail")
	}
}

func (me *UserController) issueTokens(u *DBUser) (string, string, error) {
	access, err := auth.CreateJWTWithExpire(u.Id.Hex(), u.Email, auth.RoleUser, me.authCfg.Secret, me.authCfg.AccessExpiresIn)
	if err != nil {
		return "", "", err
	}

	refresh, err := auth.CreateRefreshToken(u.Id.Hex(), me.authCfg.RefreshSecret, me.authCfg.RefreshExpiresIn)
	if err != nil {
		return "", "", err
	}

	return access, refresh, nil
}

func toResponseUser(u *DBUser) *ResponseUser {
	return &ResponseUser{
		Id:           u.Id,
		Name:         u.Name,
		Email:        u.Email,
		Avatar:       u.Avatar,
		GoogleAuth:   u.GoogleAuth,
		IsVerified:   u.IsVerified,
		Cards:        u.Cards,
		PersonalInfo: u.PersonalInfo,
	}
}

func (me *UserController) Register(req *RegisterRequest) (*ResponseUser, *webres.Error, int) {
	Logger.V(2).Info(fmt.Sprintf("register %s", req.Email))

	errres := make([]*webres.InputFieldError, 0, 3)

	if _, err := utils.IsValidName(req.Name); err != nil {
		errres = append(errres, &webres.InputFieldError{Error: err.Error(), Field: "name"})
	}

	if _, err := utils.IsValidPassword(req.Password); err != nil {
		errres = append(errres, &webres.InputFieldError{Error: err.Error(), Field: "password"})
	}

	req.Email = strings.ToLower(req.Email)
	if !utils.IsValidEmail(req.Email) {
		errres = append(errres, &webres.InputFieldError{Error: "email invalid", Field: "email"})
	} else if exist, _ := me.userService.FindUserByEmail(req.Email); exist != nil && !exist.Provisional {
		errres = append(errres, &webres.InputFieldError{Error: "email unavailable", Field: "email"})
	}

	if len(errres) > 0 {
		return nil, &webres.Error{Code: http.StatusForbidden, Message: "forbidden, invalid input", Params: errres}, http.StatusOK
	}

	password, err := auth.GeneratePassword(req.Password)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusInternalServerError
	}

	// a provisional account left by the invitation gateway is claimed, not
	// duplicated
	if exist, _ := me.userService.FindUserByEmail(req.Email); exist != nil && exist.Provisional {
		exist.Name = req.Name
		exist.Password = password
		if _, err := me.userService.UpdateUser(exist.Id, exist); err != nil {
			return nil, &webres.Error{Code: http.StatusBadGateway, Message: err.Error()}, http.StatusOK
		}
		go me.sendCodeMail(exist.Email)
		Logger.V(2).Info("provisional account claimed")
		return toResponseUser(exist), nil, http.StatusCreated
	}

	nu := &CreateUser{
		Name:     req.Name,
		Email:    req.Email,
		Password: password,
	}

	newUser, err := me.userService.CreateUser(nu)
	if err != nil {
		if err == ErrEmailTaken {
			return nil, &webres.Error{Code: http.StatusConflict, Message: err.Error()}, http.StatusOK
		}
		return nil, &webres.Error{Code: http.StatusBadGateway, Message: err.Error()}, http.StatusOK
	}

	go me.sendCodeMail(newUser.Email)

	Logger.V(2).Info("register success")
	return toResponseUser(newUser), nil, http.StatusCreated
}

func (me *UserController) VerifyOTP(req *VerifyOTPRequest) (*ResponseStatus, *webres.Error, int) {
	Logger.V(2).Info(fmt.Sprintf("verify otp for %s", req.Email))

	req.Email = strings.ToLower(req.Email)
	if err := me.otpService.VerifyCode(req.Email, req.Code); err != nil {
		return nil, &webres.Error{Code: http.StatusForbidden, Message: err.Error()}, http.StatusOK
	}

	u, err := me.userService.FindUserByEmail(req.Email)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusNotFound, Message: err.Error()}, http.StatusOK
	}

	if err := me.userService.SetVerified(u.Id, true); err != nil {
		return nil, &webres.Error{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusInternalServerError
	}

	Logger.V(2).Info("verification confirmed")
	return &ResponseStatus{Status: "success"}, nil, http.StatusOK
}

func (me *UserController) ResendCode(req *RecoverVerifyRequest) (*ResponseStatus, *webres.Error, int) {
	req.Email = strings.ToLower(req.Email)

	u, err := me.userService.FindUserByEmail(req.Email)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusNotFound, Message: err.Error()}, http.StatusOK
	}

	if u.IsVerified {
		return nil, &webres.Error{Code: http.StatusForbidden, Message: "user already verified"}, http.StatusOK
	}

	go me.sendCodeMail(u.Email)
	return &ResponseStatus{Status: "success"}, nil, http.StatusOK
}

func (me *UserController) Login(req *LoginRequest) (*ResponseUser, *webres.Error, int) {
	Logger.V(2).Info(fmt.Sprintf("login attempt from %s", req.Email))

	req.Email = strings.ToLower(req.Email)
	if !utils.IsValidEmail(req.Email) {
		return nil, &webres.Error{Code: http.StatusForbidden, Message: "email invalid"}, http.StatusOK
	}

	u, err := me.userService.FindUserByEmail(req.Email)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusNotFound, Message: err.Error()}, http.StatusOK
	}

	if !auth.ComparePassword(u.Password, req.Password) {
		return nil, &webres.Error{Code: http.StatusForbidden, Message: "invalid password"}, http.StatusOK
	}

	if !u.IsVerified {
		return nil, &webres.Error{Code: http.StatusForbidden, Message: "email not verified"}, http.StatusOK
	}

	access, refresh, err := me.issueTokens(u)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusInternalServerError
	}

	if req.FcmToken != "" {
		if err := me.fcmService.UpsertToken(u.Id, req.FcmToken); err != nil {
			Logger.Error(err, "register device token")
		}
	}

	res := toResponseUser(u)
	res.AccessToken = access
	res.RefreshToken = refresh

	Logger.V(2).Info("logged in")
	return res, nil, http.StatusOK
}

// LoginGoogle finds or creates a verified account from a Google profile and
// issues tokens. No password is involved.
func (me *UserController) LoginGoogle(email, name, avatar string) (*ResponseUser, *webres.Error, int) {
	Logger.V(2).Info(fmt.Sprintf("google login %s", email))

	email = strings.ToLower(email)

	u, err := me.userService.FindUserByEmail(email)
	if err == ErrUserNotFound {
		u, err = me.userService.CreateUser(&CreateUser{
			Name:       name,
			Email:      email,
			Avatar:     avatar,
			GoogleAuth: true,
			IsVerified: true,
		})
	}
	if err != nil {
		return nil, &webres.Error{Code: http.StatusBadGateway, Message: err.Error()}, http.StatusOK
	}

	if u.Provisional {
		if err := me.userService.SetVerified(u.Id, true); err != nil {
			Logger.Error(err, "claim provisional account")
		}
		u.IsVerified = true
	}

	access, refresh, err := me.issueTokens(u)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusInternalServerError
	}

	res := toResponseUser(u)
	res.AccessToken = access
	res.RefreshToken = refresh

	return res, nil, http.StatusOK
}

func (me *UserController) RefreshAccessToken(req *RefreshRequest) (*ResponseUser, *webres.Error, int) {
	claims, err := auth.ValidateToken(req.RefreshToken, me.authCfg.RefreshSecret)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusUnauthorized, Message: "invalid refresh token"}, http.StatusOK
	}

	userId, err := primitive.ObjectIDFromHex(claims.GetUserID())
	if err != nil {
		return nil, &webres.Error{Code: http.StatusUnauthorized, Message: "invalid refresh token"}, http.StatusOK
	}

	u, err := me.userService.FindUserById(userId)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusNotFound, Message: err.Error()}, http.StatusOK
	}

	access, err := auth.CreateJWTWithExpire(u.Id.Hex(), u.Email, auth.RoleUser, me.authCfg.Secret, me.authCfg.AccessExpiresIn)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusInternalServerError
	}

	res := toResponseUser(u)
	res.AccessToken = access

	return res, nil, http.StatusOK
}

func (me *UserController) ChangePassword(userIdHex string, req *ChangePasswordRequest) (*ResponseStatus, *webres.Error, int) {
	Logger.V(2).Info(fmt.Sprintf("change password %s", userIdHex))

	userId, err := primitive.ObjectIDFromHex(userIdHex)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusBadRequest, Message: "invalid user id"}, http.StatusOK
	}

	if _, err := utils.IsValidPassword(req.NewPassword); err != nil {
		return nil, &webres.Error{Code: http.StatusForbidden, Message: err.Error()}, http.StatusOK
	}

	u, err := me.userService.FindUserById(userId)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusNotFound, Message: err.Error()}, http.StatusOK
	}

	if !auth.ComparePassword(u.Password, req.OldPassword) {
		return nil, &webres.Error{Code: http.StatusForbidden, Message: "wrong password"}, http.StatusOK
	}

	hashed, err := auth.GeneratePassword(req.NewPassword)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusInternalServerError
	}

	if err := me.userService.SetPassword(u.Id, hashed); err != nil {
		return nil, &webres.Error{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusInternalServerError
	}

	return &ResponseStatus{Status: "success"}, nil, http.StatusOK
}

// RecoverVerifyEmail starts the forgot-password flow by mailing a code to
// the account's address.
func (me *UserController) RecoverVerifyEmail(req *RecoverVerifyRequest) (*ResponseStatus, *webres.Error, int) {
	req.Email = strings.ToLower(req.Email)
	if !utils.IsValidEmail(req.Email) {
		return nil, &webres.Error{Code: http.StatusBadRequest, Message: "email invalid"}, http.StatusOK
	}

	u, err := me.userService.FindUserByEmail(req.Email)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusNotFound, Message: err.Error()}, http.StatusOK
	}

	go me.sendCodeMail(u.Email)
	return &ResponseStatus{Status: "success"}, nil, http.StatusOK
}

// RecoverOTPVerify exchanges a valid code for a one-hour reset token.
func (me *UserController) RecoverOTPVerify(req *VerifyOTPRequest) (string, *webres.Error, int) {
	req.Email = strings.ToLower(req.Email)
	if err := me.otpService.VerifyCode(req.Email, req.Code); err != nil {
		return "", &webres.Error{Code: http.StatusForbidden, Message: err.Error()}, http.StatusOK
	}

	u, err := me.userService.FindUserByEmail(req.Email)
	if err != nil {
		return "", &webres.Error{Code: http.StatusNotFound, Message: err.Error()}, http.StatusOK
	}

	token, err := auth.CreateJWTWithExpire(u.Id.Hex(), u.Email, RoleReset, me.authCfg.Secret, time.Hour)
	if err != nil {
		return "", &webres.Error{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusInternalServerError
	}

	return token, nil, http.StatusOK
}

func (me *UserController) RecoverResetPassword(req *RecoverResetRequest) (*ResponseStatus, *webres.Error, int) {
	claims, err := auth.ValidateToken(req.ResetToken, me.authCfg.Secret)
	if err != nil || claims.Role != RoleReset {
		return nil, &webres.Error{Code: http.StatusForbidden, Message: "illegal reset password token"}, http.StatusOK
	}

	if _, err := utils.IsValidPassword(req.NewPassword); err != nil {
		return nil, &webres.Error{Code: http.StatusForbidden, Message: err.Error()}, http.StatusOK
	}

	userId, err := primitive.ObjectIDFromHex(claims.GetUserID())
	if err != nil {
		return nil, &webres.Error{Code: http.StatusForbidden, Message: "illegal reset password token"}, http.StatusOK
	}

	hashed, err := auth.GeneratePassword(req.NewPassword)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusInternalServerError
	}

	if err := me.userService.SetPassword(userId, hashed); err != nil {
		return nil, &webres.Error{Code: http.StatusNotFound, Message: err.Error()}, http.StatusOK
	}

	Logger.V(2).Info("reset password success")
	return &ResponseStatus{Status: "success"}, nil, http.StatusOK
}

func (me *UserController) GetSelf(userIdHex string) (*ResponseUser, *webres.Error, int) {
	userId, err := primitive.ObjectIDFromHex(userIdHex)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusBadRequest, Message: "invalid user id"}, http.StatusOK
	}

	u, err := me.userService.FindUserById(userId)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusNotFound, Message: err.Error()}, http.StatusOK
	}

	return toResponseUser(u), nil, http.StatusOK
}

func (me *UserController) UpdatePersonalInfo(userIdHex string, info *PersonalInfo) (*ResponseStatus, *webres.Error, int) {
	userId, err := primitive.ObjectIDFromHex(userIdHex)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusBadRequest, Message: "invalid user id"}, http.StatusOK
	}

	if err := me.userService.SetPersonalInfo(userId, info); err != nil {
		if err == ErrUserNotFound {
			return nil, &webres.Error{Code: http.StatusNotFound, Message: err.Error()}, http.StatusOK
		}
		return nil, &webres.Error{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusInternalServerError
	}

	return &ResponseStatus{Status: "success"}, nil, http.StatusOK
}
