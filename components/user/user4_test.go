package user

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"networth/components/fcm"
	"networth/components/otp"
	"networth/config"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestMain(m *testing.M) {
	//before
	fmt.Println("\nSTART UNIT TEST 'user'")

	m.Run()

	//after
	fmt.Println("END UNIT TEST 'user'")
}

type memUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*DBUser
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[primitive.ObjectID]*DBUser)}
}

func (me *memUserRepo) GetCollection() *mongo.Collection { return nil }

func (me *memUserRepo) CreateUser(u *CreateUser) (*DBUser, error) {
	me.mu.Lock()
	defer me.mu.Unlock()
	for _, existing := range me.users {
		if existing.Email == u.Email {
			return nil, ErrEmailTaken
		}
	}
	du := &DBUser{
		Id:          primitive.NewObjectID(),
		Name:        u.Name,
		Email:       u.Email,
		Password:    u.Password,
		Avatar:      u.Avatar,
		GoogleAuth:  u.GoogleAuth,
		IsVerified:  u.IsVerified,
		Provisional: u.Provisional,
		Cards:       append([]primitive.ObjectID{}, u.Cards...),
		CreatedAt:   time.Now(),
	}
	me.users[du.Id] = du
	return du, nil
}

func (me *memUserRepo) UpdateUser(id primitive.ObjectID, u *DBUser) (*DBUser, error) {
	me.mu.Lock()
	defer me.mu.Unlock()
	if _, ok := me.users[id]; !ok {
		return nil, ErrUserNotFound
	}
	u.Id = id
	me.users[id] = u
	return u, nil
}

func (me *memUserRepo) DeleteUser(id primitive.ObjectID) error {
	me.mu.Lock()
	defer me.mu.Unlock()
	if _, ok := me.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(me.users, id)
	return nil
}

func (me *memUserRepo) FindUserById(id primitive.ObjectID) (*DBUser, error) {
	me.mu.Lock()
	defer me.mu.Unlock()
	u, ok := me.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (me *memUserRepo) FindUserByEmail(email string) (*DBUser, error) {
	me.mu.Lock()
	defer me.mu.Unlock()
	for _, u := range me.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (me *memUserRepo) mutate(id primitive.ObjectID, fn func(u *DBUser)) error {
	me.mu.Lock()
	defer me.mu.Unlock()
	u, ok := me.users[id]
	if !ok {
		return ErrUserNotFound
	}
	fn(u)
	return nil
}

func (me *memUserRepo) SetPassword(id primitive.ObjectID, hashed string) error {
	return me.mutate(id, func(u *DBUser) { u.Password = hashed })
}

func (me *memUserRepo) SetVerified(id primitive.ObjectID, verified bool) error {
	return me.mutate(id, func(u *DBUser) { u.IsVerified = verified; u.Provisional = false })
}

func (me *memUserRepo) SetPersonalInfo(id primitive.ObjectID, info *PersonalInfo) error {
	return me.mutate(id, func(u *DBUser) { u.PersonalInfo = *info })
}

func (me *memUserRepo) AttachCard(userId, cardId primitive.ObjectID) error {
	return me.mutate(userId, func(u *DBUser) { u.Cards = append(u.Cards, cardId) })
}

func (me *memUserRepo) CardIds(userId primitive.ObjectID) ([]primitive.ObjectID, error) {
	u, err := me.FindUserById(userId)
	if err != nil {
		return nil, err
	}
	return u.Cards, nil
}

func (me *memUserRepo) FindOwnerByCard(cardId primitive.ObjectID) (primitive.ObjectID, error) {
	me.mu.Lock()
	defer me.mu.Unlock()
	for _, u := range me.users {
		for _, c := range u.Cards {
			if c == cardId {
				return u.Id, nil
			}
		}
	}
	return primitive.NilObjectID, ErrUserNotFound
}

func (me *memUserRepo) FindUsersPage(keyword string, page, limit int, sortBy string, ascending bool) ([]*DBUser, error) {
	me.mu.Lock()
	defer me.mu.Unlock()
	out := []*DBUser{}
	for _, u := range me.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (me *memUserRepo) CountUsers(keyword string) (int64, error) {
	me.mu.Lock()
	defer me.mu.Unlock()
	return int64(len(me.users)), nil
}

type memOTPRepo struct {
	mu    sync.Mutex
	codes map[string]string
}

func newMemOTPRepo() *memOTPRepo {
	return &memOTPRepo{codes: make(map[string]string)}
}

func (me *memOTPRepo) GetCollection() *mongo.Collection { return nil }

func (me *memOTPRepo) IssueCode(email, code string) error {
	me.mu.Lock()
	defer me.mu.Unlock()
	me.codes[email] = code
	return nil
}

func (me *memOTPRepo) VerifyCode(email, code string) error {
	me.mu.Lock()
	defer me.mu.Unlock()
	if me.codes[email] != code || code == "" {
		return otp.ErrCodeInvalid
	}
	delete(me.codes, email)
	return nil
}

func (me *memOTPRepo) DeleteByEmail(email string) error {
	me.mu.Lock()
	defer me.mu.Unlock()
	delete(me.codes, email)
	return nil
}

type memFcmRepo struct {
	mu     sync.Mutex
	tokens map[primitive.ObjectID]string
}

func newMemFcmRepo() *memFcmRepo {
	return &memFcmRepo{tokens: make(map[primitive.ObjectID]string)}
}

func (me *memFcmRepo) GetCollection() *mongo.Collection { return nil }

func (me *memFcmRepo) UpsertToken(userId primitive.ObjectID, token string) error {
	me.mu.Lock()
	defer me.mu.Unlock()
	me.tokens[userId] = token
	return nil
}

func (me *memFcmRepo) FindTokenByUser(userId primitive.ObjectID) (*fcm.DBFcmToken, error) {
	me.mu.Lock()
	defer me.mu.Unlock()
	token, ok := me.tokens[userId]
	if !ok {
		return nil, fcm.ErrTokenNotFound
	}
	return &fcm.DBFcmToken{UserId: userId, Token: token}, nil
}

func (me *memFcmRepo) DeleteByUser(userId primitive.ObjectID) error {
	me.mu.Lock()
	defer me.mu.Unlock()
	delete(me.tokens, userId)
	return nil
}

type mailRecorder struct {
	mu   sync.Mutex
	sent []string
}

func (me *mailRecorder) SendOTPMail(to, code string) error {
	me.mu.Lock()
	defer me.mu.Unlock()
	me.sent = append(me.sent, to)
	return nil
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		Secret:           "unit-test-secret",
		RefreshSecret:    "unit-test-refresh",
		AccessExpiresIn:  time.Hour,
		RefreshExpiresIn: 24 * time.Hour,
	}
}

func newTestController() (UserController, *memUserRepo, *memOTPRepo, *memFcmRepo, *mailRecorder) {
	users := newMemUserRepo()
	otps := newMemOTPRepo()
	fcms := newMemFcmRepo()
	mailer := &mailRecorder{}
	ctr := NewUserController(users, otps, fcms, mailer, testAuthConfig())
	return ctr, users, otps, fcms, mailer
}

func waitForCode(otps *memOTPRepo, email string) string {
	for i := 0; i < 100; i++ {
		otps.mu.Lock()
		code := otps.codes[email]
		otps.mu.Unlock()
		if code != "" {
			return code
		}
		time.Sleep(10 * time.Millisecond)
	}
	return ""
}

func Test_RegisterVerifyLogin(t *testing.T) {
	asserts := assert.New(t)
	ctr, _, otps, fcms, _ := newTestController()

	res, e, code := ctr.Register(&RegisterRequest{Name: "Alice Smith", Email: "Alice@Example.com", Password: "Str0ngPass!"})
	asserts.Nil(e)
	asserts.Equal(201, code)
	asserts.Equal("alice@example.com", res.Email)
	asserts.False(res.IsVerified)

	// unverified login is refused
	_, e, _ = ctr.Login(&LoginRequest{Email: "alice@example.com", Password: "Str0ngPass!"})
	asserts.NotNil(e)

	otpCode := waitForCode(otps, "alice@example.com")
	asserts.NotEmpty(otpCode)

	_, e, _ = ctr.VerifyOTP(&VerifyOTPRequest{Email: "alice@example.com", Code: otpCode})
	asserts.Nil(e)

	// used code never verifies twice
	_, e, _ = ctr.VerifyOTP(&VerifyOTPRequest{Email: "alice@example.com", Code: otpCode})
	asserts.NotNil(e)

	logged, e, _ := ctr.Login(&LoginRequest{Email: "alice@example.com", Password: "Str0ngPass!", FcmToken: "device-1"})
	asserts.Nil(e)
	asserts.NotEmpty(logged.AccessToken)
	asserts.NotEmpty(logged.RefreshToken)
	asserts.Equal("device-1", fcms.tokens[logged.Id])

	_, e, _ = ctr.Login(&LoginRequest{Email: "alice@example.com", Password: "wrongpass1A"})
	asserts.NotNil(e)
}

func Test_Register_DuplicateEmail(t *testing.T) {
	asserts := assert.New(t)
	ctr, _, _, _, _ := newTestController()

	_, e, _ := ctr.Register(&RegisterRequest{Name: "Alice Smith", Email: "alice@example.com", Password: "Str0ngPass!"})
	asserts.Nil(e)

	_, e, _ = ctr.Register(&RegisterRequest{Name: "Alice Clone", Email: "alice@example.com", Password: "Str0ngPass!"})
	asserts.NotNil(e)
}

func Test_Register_ClaimsProvisional(t *testing.T) {
	asserts := assert.New(t)
	ctr, users, _, _, _ := newTestController()

	prov, err := users.CreateUser(&CreateUser{Name: "invited", Email: "bob@example.com", Provisional: true})
	asserts.NoError(err)

	res, e, _ := ctr.Register(&RegisterRequest{Name: "Bob Jones", Email: "bob@example.com", Password: "Str0ngPass!"})
	asserts.Nil(e)
	asserts.Equal(prov.Id, res.Id)
	asserts.Equal("Bob Jones", res.Name)
}

func Test_RefreshAccessToken(t *testing.T) {
	asserts := assert.New(t)
	ctr, _, otps, _, _ := newTestController()

	ctr.Register(&RegisterRequest{Name: "Alice Smith", Email: "alice@example.com", Password: "Str0ngPass!"})
	ctr.VerifyOTP(&VerifyOTPRequest{Email: "alice@example.com", Code: waitForCode(otps, "alice@example.com")})
	logged, _, _ := ctr.Login(&LoginRequest{Email: "alice@example.com", Password: "Str0ngPass!"})

	refreshed, e, _ := ctr.RefreshAccessToken(&RefreshRequest{RefreshToken: logged.RefreshToken})
	asserts.Nil(e)
	asserts.NotEmpty(refreshed.AccessToken)

	_, e, _ = ctr.RefreshAccessToken(&RefreshRequest{RefreshToken: "garbage"})
	asserts.NotNil(e)
}

func Test_ChangePassword(t *testing.T) {
	asserts := assert.New(t)
	ctr, users, _, _, _ := newTestController()

	res, e, _ := ctr.Register(&RegisterRequest{Name: "Alice Smith", Email: "alice@example.com", Password: "Str0ngPass!"})
	asserts.Nil(e)
	users.SetVerified(res.Id, true)

	_, e, _ = ctr.ChangePassword(res.Id.Hex(), &ChangePasswordRequest{OldPassword: "nope12345A", NewPassword: "N3wStrong!"})
	asserts.NotNil(e)

	_, e, _ = ctr.ChangePassword(res.Id.Hex(), &ChangePasswordRequest{OldPassword: "Str0ngPass!", NewPassword: "N3wStrong!"})
	asserts.Nil(e)

	_, e, _ = ctr.Login(&LoginRequest{Email: "alice@example.com", Password: "N3wStrong!"})
	asserts.Nil(e)
}

func Test_RecoverPasswordFlow(t *testing.T) {
	asserts := assert.New(t)
	ctr, users, otps, _, mailer := newTestController()

	res, _, _ := ctr.Register(&RegisterRequest{Name: "Alice Smith", Email: "alice@example.com", Password: "Str0ngPass!"})
	users.SetVerified(res.Id, true)

	_, e, _ := ctr.RecoverVerifyEmail(&RecoverVerifyRequest{Email: "alice@example.com"})
	asserts.Nil(e)

	code := waitForCode(otps, "alice@example.com")
	asserts.NotEmpty(code)

	token, e, _ := ctr.RecoverOTPVerify(&VerifyOTPRequest{Email: "alice@example.com", Code: code})
	asserts.Nil(e)
	asserts.NotEmpty(token)

	// an access token is not a reset token
	logged, _, _ := ctr.Login(&LoginRequest{Email: "alice@example.com", Password: "Str0ngPass!"})
	_, e, _ = ctr.RecoverResetPassword(&RecoverResetRequest{ResetToken: logged.AccessToken, NewPassword: "N3wStrong!"})
	asserts.NotNil(e)

	_, e, _ = ctr.RecoverResetPassword(&RecoverResetRequest{ResetToken: token, NewPassword: "N3wStrong!"})
	asserts.Nil(e)

	_, e, _ = ctr.Login(&LoginRequest{Email: "alice@example.com", Password: "N3wStrong!"})
	asserts.Nil(e)

	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	asserts.NotEmpty(mailer.sent)
}

func Test_LoginGoogle(t *testing.T) {
	asserts := assert.New(t)
	ctr, users, _, _, _ := newTestController()

	res, e, _ := ctr.LoginGoogle("carol@example.com", "Carol", "https://avatar.example/c.png")
	asserts.Nil(e)
	asserts.True(res.IsVerified)
	asserts.NotEmpty(res.AccessToken)

	// second login reuses the account
	again, e, _ := ctr.LoginGoogle("carol@example.com", "Carol", "")
	asserts.Nil(e)
	asserts.Equal(res.Id, again.Id)

	n, _ := users.CountUsers("")
	asserts.Equal(int64(1), n)
}
