package admin

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"networth/auth"
	"networth/components/card"
	"networth/components/fcm"
	"networth/components/notification"
	"networth/components/user"
	"networth/config"
	"networth/webres"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type I_AdminMailer interface {
	SendMail(to []string, subject, message string) error
}

type AdminController struct {
	userService  user.I_UserRepo
	cardService  card.I_CardRepo
	notifService notification.I_NotifRepo
	fcmService   fcm.I_FcmRepo
	mailer       I_AdminMailer
	authCfg      config.AuthConfig
}

func NewAdminController(userService user.I_UserRepo, cardService card.I_CardRepo, notifService notification.I_NotifRepo, fcmService fcm.I_FcmRepo, mailer I_AdminMailer, authCfg config.AuthConfig) AdminController {
	return AdminController{userService, cardService, notifService, fcmService, mailer, authCfg}
}

func toResponseUser(u *user.DBUser) *user.ResponseUser {
	return &user.ResponseUser{
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

// Login issues an admin token for the configured operator credentials. Admin
// tokens are signed with their own secret, a user token never passes the
// admin middleware.
func (me *AdminController) Login(req *AdminLoginRequest) (*AdminLoginResult, *webres.Error, int) {
	Logger.V(2).Info(fmt.Sprintf("admin login attempt %s", req.Email))

	if !strings.EqualFold(req.Email, me.authCfg.AdminEmail) || req.Password != me.authCfg.AdminPassword {
		return nil, &webres.Error{Code: http.StatusForbidden, Message: "invalid admin credentials"}, http.StatusOK
	}

	token, err := auth.CreateJWTWithExpire(me.authCfg.AdminEmail, me.authCfg.AdminEmail, auth.RoleAdmin, me.authCfg.AdminSecret, me.authCfg.AccessExpiresIn)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusInternalServerError
	}

	return &AdminLoginResult{AccessToken: token}, nil, http.StatusOK
}

func (me *AdminController) ListUsers(keyword, pageStr, limitStr, sortBy, order string) (*UserListResult, *webres.Error, int) {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = 10
	}

	users, err := me.userService.FindUsersPage(keyword, page, limit, sortBy, order == "asc")
	if err != nil {
		return nil, &webres.Error{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusInternalServerError
	}

	total, err := me.userService.CountUsers(keyword)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusInternalServerError
	}

	res := &UserListResult{
		Users: make([]*user.ResponseUser, 0, len(users)),
		Meta: PageMeta{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: (total + int64(limit) - 1) / int64(limit),
		},
	}
	for _, u := range users {
		res.Users = append(res.Users, toResponseUser(u))
	}

	return res, nil, http.StatusOK
}

func (me *AdminController) UserDetail(idHex string) (*UserDetailResult, *webres.Error, int) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusBadRequest, Message: "invalid user id"}, http.StatusOK
	}

	u, err := me.userService.FindUserById(id)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusNotFound, Message: err.Error()}, http.StatusOK
	}

	cards, err := me.cardService.FindCardsByIds(u.Cards)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusInternalServerError
	}

	return &UserDetailResult{User: toResponseUser(u), Cards: cards}, nil, http.StatusOK
}

// DeleteUser removes the account and cascades through its cards, their
// notifications and the device token. The courtesy mail is best effort.
func (me *AdminController) DeleteUser(idHex string) (*webres.Error, int) {
	Logger.V(2).Info(fmt.Sprintf("admin delete user %s", idHex))

	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return &webres.Error{Code: http.StatusBadRequest, Message: "invalid user id"}, http.StatusOK
	}

	u, err := me.userService.FindUserById(id)
	if err != nil {
		return &webres.Error{Code: http.StatusNotFound, Message: err.Error()}, http.StatusOK
	}

	for _, cardId := range u.Cards {
		if err := me.notifService.DeleteByCard(cardId); err != nil {
			Logger.Error(err, "cascade notification cleanup")
		}
		if err := me.cardService.DeleteCard(cardId); err != nil && err != card.ErrCardNotFound {
			Logger.Error(err, "cascade card cleanup")
		}
	}

	if err := me.fcmService.DeleteByUser(u.Id); err != nil {
		Logger.Error(err, "cascade device token cleanup")
	}

	if err := me.userService.DeleteUser(u.Id); err != nil {
		return &webres.Error{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusInternalServerError
	}

	go func(email string) {
		if err := me.mailer.SendMail([]string{email}, "NetWorth", "Your NetWorth account has been removed by an administrator."); err != nil {
			Logger.Error(err, "send account removal mail")
		}
	}(u.Email)

	return nil, http.StatusOK
}
