package invite

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"networth/components/card"
	"networth/components/connection"
	"networth/components/notification"
	"networth/components/tempcard"
	"networth/components/user"
	"networth/config"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestMain(m *testing.M) {
	//before
	fmt.Println("\nSTART UNIT TEST 'invite'")

	m.Run()

	//after
	fmt.Println("END UNIT TEST 'invite'")
}

type fakeCardRepo struct {
	mu    sync.Mutex
	cards map[primitive.ObjectID]*card.DBCard
}

func newFakeCardRepo() *fakeCardRepo {
	return &fakeCardRepo{cards: make(map[primitive.ObjectID]*card.DBCard)}
}

func (me *fakeCardRepo) GetCollection() *mongo.Collection { return nil }

func (me *fakeCardRepo) CreateCard(c *card.CreateCard) (*card.DBCard, error) {
	me.mu.Lock()
	defer me.mu.Unlock()
	dc := &card.DBCard{Id: primitive.NewObjectID(), Name: c.Name, Email: c.Email, IsMaster: c.IsMaster}
	me.cards[dc.Id] = dc
	return dc, nil
}

func (me *fakeCardRepo) UpdateCard(id primitive.ObjectID, c *card.DBCard) (*card.DBCard, error) {
	me.mu.Lock()
	defer me.mu.Unlock()
	if _, ok := me.cards[id]; !ok {
		return nil, card.ErrCardNotFound
	}
	c.Id = id
	me.cards[id] = c
	return c, nil
}

func (me *fakeCardRepo) DeleteCard(id primitive.ObjectID) error {
	me.mu.Lock()
	defer me.mu.Unlock()
	delete(me.cards, id)
	return nil
}

func (me *fakeCardRepo) FindCardById(id primitive.ObjectID) (*card.DBCard, error) {
	me.mu.Lock()
	defer me.mu.Unlock()
	c, ok := me.cards[id]
	if !ok {
		return nil, card.ErrCardNotFound
	}
	cp := *c
	cp.Incoming = append([]primitive.ObjectID(nil), c.Incoming...)
	cp.Outgoing = append([]primitive.ObjectID(nil), c.Outgoing...)
	cp.FriendList = append([]card.FriendRef(nil), c.FriendList...)
	return &cp, nil
}

func (me *fakeCardRepo) FindCardByEmail(email string) (*card.DBCard, error) {
	me.mu.Lock()
	defer me.mu.Unlock()
	for _, c := range me.cards {
		for _, e := range c.Email {
			if e == email {
				cp := *c
				return &cp, nil
			}
		}
	}
	return nil, card.ErrCardNotFound
}

func (me *fakeCardRepo) FindCardsByIds(ids []primitive.ObjectID) ([]*card.DBCard, error) {
	me.mu.Lock()
	defer me.mu.Unlock()
	out := []*card.DBCard{}
	for _, id := range ids {
		if c, ok := me.cards[id]; ok {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (me *fakeCardRepo) FindMasterByIds(ids []primitive.ObjectID) (*card.DBCard, error) {
	me.mu.Lock()
	defer me.mu.Unlock()
	for _, id := range ids {
		if c, ok := me.cards[id]; ok && c.IsMaster {
			cp := *c
			return &cp, nil
		}
	}
	return nil, card.ErrCardNotFound
}

func (me *fakeCardRepo) SearchCards(q *card.SearchContact) ([]*card.DBCard, error) {
	return []*card.DBCard{}, nil
}

func (me *fakeCardRepo) mutate(id primitive.ObjectID, fn func(c *card.DBCard)) error {
	me.mu.Lock()
	defer me.mu.Unlock()
	c, ok := me.cards[id]
	if !ok {
		return card.ErrCardNotFound
	}
	fn(c)
	return nil
}

func (me *fakeCardRepo) AddIncoming(cardId, from primitive.ObjectID) error {
	return me.mutate(cardId, func(c *card.DBCard) {
		if !c.HasIncomingFrom(from) {
			c.Incoming = append(c.Incoming, from)
		}
	})
}

func (me *fakeCardRepo) AddOutgoing(cardId, to primitive.ObjectID) error {
	return me.mutate(cardId, func(c *card.DBCard) {
		if !c.HasOutgoingTo(to) {
			c.Outgoing = append(c.Outgoing, to)
		}
	})
}

func pullId(set []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := set[:0]
	for _, existing := range set {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

func (me *fakeCardRepo) PullIncoming(cardId, from primitive.ObjectID) error {
	return me.mutate(cardId, func(c *card.DBCard) { c.Incoming = pullId(c.Incoming, from) })
}

func (me *fakeCardRepo) PullOutgoing(cardId, to primitive.ObjectID) error {
	return me.mutate(cardId, func(c *card.DBCard) { c.Outgoing = pullId(c.Outgoing, to) })
}

func (me *fakeCardRepo) PushFriend(cardId primitive.ObjectID, ref card.FriendRef) (bool, error) {
	me.mu.Lock()
	defer me.mu.Unlock()
	c, ok := me.cards[cardId]
	if !ok {
		return false, card.ErrCardNotFound
	}
	if c.HasFriend(ref.Friend) {
		return false, nil
	}
	c.FriendList = append(c.FriendList, ref)
	return true, nil
}

func (me *fakeCardRepo) PullFriend(cardId, friendId primitive.ObjectID) error {
	return me.mutate(cardId, func(c *card.DBCard) {
		out := c.FriendList[:0]
		for _, existing := range c.FriendList {
			if existing.Friend != friendId {
				out = append(out, existing)
			}
		}
		c.FriendList = out
	})
}

func (me *fakeCardRepo) PushNotification(cardId, notifId primitive.ObjectID) error {
	return me.mutate(cardId, func(c *card.DBCard) { c.Notifications = append(c.Notifications, notifId) })
}

func (me *fakeCardRepo) AddPoints(cardId primitive.ObjectID, points int) error {
	return me.mutate(cardId, func(c *card.DBCard) { c.TotalPoints += points })
}

func (me *fakeCardRepo) IncInviteCount(cardId primitive.ObjectID) error {
	return me.mutate(cardId, func(c *card.DBCard) { c.InviteCount++ })
}

func (me *fakeCardRepo) SetViaInvitation(cardId primitive.ObjectID, via bool) error {
	return me.mutate(cardId, func(c *card.DBCard) { c.ViaInvitation = via })
}

func (me *fakeCardRepo) CreateActivity(a *card.Activity) (*card.Activity, error) {
	a.Id = primitive.NewObjectID()
	return a, nil
}

func (me *fakeCardRepo) FindActivitiesByIds(ids []primitive.ObjectID) ([]*card.Activity, error) {
	return []*card.Activity{}, nil
}

func (me *fakeCardRepo) PushActivity(cardId, activityId primitive.ObjectID) error { return nil }

func (me *fakeCardRepo) CreateLink(l *card.Link) (*card.Link, error) {
	l.Id = primitive.NewObjectID()
	return l, nil
}

func (me *fakeCardRepo) FindLinksByIds(ids []primitive.ObjectID) ([]*card.Link, error) {
	return []*card.Link{}, nil
}

func (me *fakeCardRepo) PushLink(cardId, linkId primitive.ObjectID) error { return nil }

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*user.DBUser
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*user.DBUser)}
}

func (me *fakeUserRepo) GetCollection() *mongo.Collection { return nil }

func (me *fakeUserRepo) CreateUser(u *user.CreateUser) (*user.DBUser, error) {
	me.mu.Lock()
	defer me.mu.Unlock()
	du := &user.DBUser{
		Id:          primitive.NewObjectID(),
		Name:        u.Name,
		Email:       u.Email,
		Password:    u.Password,
		Provisional: u.Provisional,
		IsVerified:  u.IsVerified,
		Cards:       append([]primitive.ObjectID{}, u.Cards...),
	}
	me.users[du.Id] = du
	return du, nil
}

func (me *fakeUserRepo) UpdateUser(id primitive.ObjectID, u *user.DBUser) (*user.DBUser, error) {
	me.mu.Lock()
	defer me.mu.Unlock()
	u.Id = id
	me.users[id] = u
	return u, nil
}

func (me *fakeUserRepo) DeleteUser(id primitive.ObjectID) error {
	me.mu.Lock()
	defer me.mu.Unlock()
	delete(me.users, id)
	return nil
}

func (me *fakeUserRepo) FindUserById(id primitive.ObjectID) (*user.DBUser, error) {
	me.mu.Lock()
	defer me.mu.Unlock()
	u, ok := me.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (me *fakeUserRepo) FindUserByEmail(email string) (*user.DBUser, error) {
	me.mu.Lock()
	defer me.mu.Unlock()
	for _, u := range me.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (me *fakeUserRepo) SetPassword(id primitive.ObjectID, hashed string) error { return nil }

func (me *fakeUserRepo) SetVerified(id primitive.ObjectID, verified bool) error { return nil }

func (me *fakeUserRepo) SetPersonalInfo(id primitive.ObjectID, info *user.PersonalInfo) error {
	return nil
}

func (me *fakeUserRepo) AttachCard(userId, cardId primitive.ObjectID) error {
	me.mu.Lock()
	defer me.mu.Unlock()
	u, ok := me.users[userId]
	if !ok {
		return user.ErrUserNotFound
	}
	u.Cards = append(u.Cards, cardId)
	return nil
}

func (me *fakeUserRepo) CardIds(userId primitive.ObjectID) ([]primitive.ObjectID, error) {
	u, err := me.FindUserById(userId)
	if err != nil {
		return nil, err
	}
	return u.Cards, nil
}

func (me *fakeUserRepo) FindOwnerByCard(cardId primitive.ObjectID) (primitive.ObjectID, error) {
	me.mu.Lock()
	defer me.mu.Unlock()
	for _, u := range me.users {
		for _, c := range u.Cards {
			if c == cardId {
				return u.Id, nil
			}
		}
	}
	return primitive.NilObjectID, user.ErrUserNotFound
}

func (me *fakeUserRepo) FindUsersPage(keyword string, page, limit int, sortBy string, ascending bool) ([]*user.DBUser, error) {
	return []*user.DBUser{}, nil
}

func (me *fakeUserRepo) CountUsers(keyword string) (int64, error) {
	me.mu.Lock()
	defer me.mu.Unlock()
	return int64(len(me.users)), nil
}

type fakeTempCardRepo struct {
	mu    sync.Mutex
	cards map[primitive.ObjectID]*tempcard.DBTempCard
}

func newFakeTempCardRepo() *fakeTempCardRepo {
	return &fakeTempCardRepo{cards: make(map[primitive.ObjectID]*tempcard.DBTempCard)}
}

func (me *fakeTempCardRepo) GetCollection() *mongo.Collection { return nil }

func (me *fakeTempCardRepo) CreateTempCard(tc *tempcard.CreateTempCard) (*tempcard.DBTempCard, error) {
	me.mu.Lock()
	defer me.mu.Unlock()
	dt := &tempcard.DBTempCard{
		Id:          primitive.NewObjectID(),
		Name:        tc.Name,
		CompanyName: tc.CompanyName,
		Address:     tc.Address,
		Email:       tc.Email,
		Designation: tc.Designation,
		PhoneNumber: tc.PhoneNumber,
		InvitedCard: tc.InvitedCard,
	}
	me.cards[dt.Id] = dt
	return dt, nil
}

func (me *fakeTempCardRepo) FindTempCardById(id primitive.ObjectID) (*tempcard.DBTempCard, error) {
	me.mu.Lock()
	defer me.mu.Unlock()
	tc, ok := me.cards[id]
	if !ok {
		return nil, tempcard.ErrTempCardNotFound
	}
	cp := *tc
	return &cp, nil
}

func (me *fakeTempCardRepo) FindTempCardByEmail(email string) (*tempcard.DBTempCard, error) {
	me.mu.Lock()
	defer me.mu.Unlock()
	for _, tc := range me.cards {
		for _, e := range tc.Email {
			if e == email {
				cp := *tc
				return &cp, nil
			}
		}
	}
	return nil, tempcard.ErrTempCardNotFound
}

func (me *fakeTempCardRepo) DeleteTempCard(id primitive.ObjectID) error {
	me.mu.Lock()
	defer me.mu.Unlock()
	if _, ok := me.cards[id]; !ok {
		return tempcard.ErrTempCardNotFound
	}
	delete(me.cards, id)
	return nil
}

type fakeNotifRepo struct {
	mu     sync.Mutex
	notifs map[primitive.ObjectID]*notification.DBNotification
}

func newFakeNotifRepo() *fakeNotifRepo {
	return &fakeNotifRepo{notifs: make(map[primitive.ObjectID]*notification.DBNotification)}
}

func (me *fakeNotifRepo) GetCollection() *mongo.Collection { return nil }

func (me *fakeNotifRepo) AddNotif(n *notification.CreateNotification) (*notification.DBNotification, error) {
	me.mu.Lock()
	defer me.mu.Unlock()
	dn := &notification.DBNotification{
		Id:          primitive.NewObjectID(),
		Sender:      n.Sender,
		Receiver:    n.Receiver,
		Text:        n.Text,
		RedirectURL: n.RedirectURL,
		CreatedAt:   time.Now(),
	}
	me.notifs[dn.Id] = dn
	return dn, nil
}

func (me *fakeNotifRepo) FindNotifsByIds(ids []primitive.ObjectID) ([]*notification.DBNotification, error) {
	me.mu.Lock()
	defer me.mu.Unlock()
	out := []*notification.DBNotification{}
	for _, id := range ids {
		if n, ok := me.notifs[id]; ok {
			out = append(out, n)
		}
	}
	return out, nil
}

func (me *fakeNotifRepo) MarkRead(id primitive.ObjectID) error { return nil }

func (me *fakeNotifRepo) DeleteByCard(cardId primitive.ObjectID) error { return nil }

type inviteMailRecorder struct {
	mu    sync.Mutex
	links []string
}

func (me *inviteMailRecorder) SendInvitationMail(to, link string) error {
	me.mu.Lock()
	defer me.mu.Unlock()
	me.links = append(me.links, link)
	return nil
}

func (me *inviteMailRecorder) waitForLink() string {
	for i := 0; i < 100; i++ {
		me.mu.Lock()
		n := len(me.links)
		me.mu.Unlock()
		if n > 0 {
			me.mu.Lock()
			defer me.mu.Unlock()
			return me.links[n-1]
		}
		time.Sleep(10 * time.Millisecond)
	}
	return ""
}

func testInviteConfig() config.InviteConfig {
	return config.InviteConfig{
		Link:          "https://app.getnetworth.test/invite",
		MailLink:      "https://app.getnetworth.test/join",
		CardLink:      "https://app.getnetworth.test/card",
		EncryptionKey: "unit-test-invitation-key",
	}
}

type gatewayFixture struct {
	gateway   *Gateway
	users     *fakeUserRepo
	cards     *fakeCardRepo
	tempcards *fakeTempCardRepo
	notifs    *fakeNotifRepo
	mailer    *inviteMailRecorder
}

func newGatewayFixture() *gatewayFixture {
	users := newFakeUserRepo()
	cards := newFakeCardRepo()
	tempcards := newFakeTempCardRepo()
	notifs := newFakeNotifRepo()
	mailer := &inviteMailRecorder{}
	engine := connection.NewEngine(cards, notifs, nil, "https://app.getnetworth.test/card")
	gateway := NewGateway(users, cards, tempcards, notifs, engine, mailer, testInviteConfig())
	return &gatewayFixture{gateway, users, cards, tempcards, notifs, mailer}
}

func (me *gatewayFixture) addCardWithEmail(name, email string) primitive.ObjectID {
	c, _ := me.cards.CreateCard(&card.CreateCard{Name: name, Email: []string{email}})
	return c.Id
}

func (me *gatewayFixture) addMasterCardWithEmail(name, email string) primitive.ObjectID {
	c, _ := me.cards.CreateCard(&card.CreateCard{Name: name, Email: []string{email}, IsMaster: true})
	return c.Id
}

func Test_InviteByEmail_ExistingUser(t *testing.T) {
	asserts := assert.New(t)
	f := newGatewayFixture()

	sender := f.addCardWithEmail("alice", "alice@example.com")
	master := f.addMasterCardWithEmail("bob", "bob@example.com")
	u, _ := f.users.CreateUser(&user.CreateUser{Name: "bob", Email: "bob@example.com"})
	f.users.AttachCard(u.Id, master)

	outcome, err := f.gateway.InviteByEmail(sender, "Bob@Example.com")
	asserts.NoError(err)
	asserts.Equal(OutcomeRequestSent, outcome)

	cb, _ := f.cards.FindCardById(master)
	asserts.True(cb.HasIncomingFrom(sender))
}

func Test_InviteByEmail_MasterFlagWins(t *testing.T) {
	asserts := assert.New(t)
	f := newGatewayFixture()

	sender := f.addCardWithEmail("alice", "alice@example.com")

	// a secondary card attached before the master must not absorb requests
	secondary := f.addCardWithEmail("bob work", "bob@example.com")
	master := f.addMasterCardWithEmail("bob", "bob@example.com")
	u, _ := f.users.CreateUser(&user.CreateUser{Name: "bob", Email: "bob@example.com"})
	f.users.AttachCard(u.Id, secondary)
	f.users.AttachCard(u.Id, master)

	outcome, err := f.gateway.InviteByEmail(sender, "bob@example.com")
	asserts.NoError(err)
	asserts.Equal(OutcomeRequestSent, outcome)

	cm, _ := f.cards.FindCardById(master)
	asserts.True(cm.HasIncomingFrom(sender))
	cs, _ := f.cards.FindCardById(secondary)
	asserts.False(cs.HasIncomingFrom(sender))
}

func Test_InviteByEmail_NoMasterCard(t *testing.T) {
	asserts := assert.New(t)
	f := newGatewayFixture()

	sender := f.addCardWithEmail("alice", "alice@example.com")
	f.users.CreateUser(&user.CreateUser{Name: "bob", Email: "bob@example.com"})

	_, err := f.gateway.InviteByEmail(sender, "bob@example.com")
	asserts.ErrorIs(err, user.ErrNoMasterCard)
}

func Test_InviteByEmail_OrphanCard(t *testing.T) {
	asserts := assert.New(t)
	f := newGatewayFixture()

	sender := f.addCardWithEmail("alice", "alice@example.com")
	orphan := f.addCardWithEmail("bob", "bob@example.com")

	outcome, err := f.gateway.InviteByEmail(sender, "bob@example.com")
	asserts.NoError(err)
	asserts.Equal(OutcomeRequestSent, outcome)

	co, _ := f.cards.FindCardById(orphan)
	asserts.True(co.HasIncomingFrom(sender))
}

func Test_InviteByEmail_ProvisionsNewAccount(t *testing.T) {
	asserts := assert.New(t)
	f := newGatewayFixture()

	sender := f.addCardWithEmail("alice", "alice@example.com")

	outcome, err := f.gateway.InviteByEmail(sender, "carol@example.com")
	asserts.NoError(err)
	asserts.Equal(OutcomePendingRegistration, outcome)

	u, err := f.users.FindUserByEmail("carol@example.com")
	asserts.NoError(err)
	asserts.True(u.Provisional)
	asserts.Len(u.Cards, 1)

	c, err := f.cards.FindCardById(u.Cards[0])
	asserts.NoError(err)
	asserts.True(c.IsMaster)

	link := f.mailer.waitForLink()
	asserts.Contains(link, "https://app.getnetworth.test/join?encrypt_data=")

	token := link[len("https://app.getnetworth.test/join?encrypt_data="):]
	payload, err := f.gateway.DecryptInvitation(token)
	asserts.NoError(err)
	asserts.Equal("carol@example.com", payload.Email)
	asserts.Equal(c.Id.Hex(), payload.CardID)
}

func Test_InviteByTemporaryCard(t *testing.T) {
	asserts := assert.New(t)
	f := newGatewayFixture()

	inviter := f.addCardWithEmail("alice", "alice@example.com")

	res, err := f.gateway.InviteByTemporaryCard(inviter, &TempCardInviteRequest{
		Name:  "Dave",
		Email: []string{"dave@example.com"},
	})
	asserts.NoError(err)
	asserts.NotEmpty(res.TempCardID)

	tcId, _ := primitive.ObjectIDFromHex(res.TempCardID)
	tc, err := f.tempcards.FindTempCardById(tcId)
	asserts.NoError(err)
	asserts.Equal(inviter, tc.InvitedCard)

	ci, _ := f.cards.FindCardById(inviter)
	asserts.Equal(1, ci.InviteCount)
	asserts.Len(ci.FriendList, 1)
	asserts.True(ci.FriendList[0].Placeholder)
	asserts.Equal(tcId, ci.FriendList[0].Friend)

	payload, err := f.gateway.DecryptInvitation(res.Link[len(testInviteConfig().Link)+len("?encrypt_data="):])
	asserts.NoError(err)
	asserts.Equal("dave@example.com", payload.Email)
	asserts.Equal(res.TempCardID, payload.TempCardID)

	// the address now belongs to a temp card, inviting it again is a conflict
	_, err = f.gateway.InviteByTemporaryCard(inviter, &TempCardInviteRequest{
		Name:  "Dave Again",
		Email: []string{"dave@example.com"},
	})
	asserts.ErrorIs(err, ErrEmailInUse)
}

func Test_InviteByTemporaryCard_EmailOfRealCard(t *testing.T) {
	asserts := assert.New(t)
	f := newGatewayFixture()

	inviter := f.addCardWithEmail("alice", "alice@example.com")
	f.addCardWithEmail("bob", "bob@example.com")

	_, err := f.gateway.InviteByTemporaryCard(inviter, &TempCardInviteRequest{
		Name:  "Bob",
		Email: []string{"bob@example.com"},
	})
	asserts.ErrorIs(err, ErrEmailInUse)
}

func Test_MaterializeInvitedCard(t *testing.T) {
	asserts := assert.New(t)
	f := newGatewayFixture()

	inviter := f.addCardWithEmail("alice", "alice@example.com")
	res, err := f.gateway.InviteByTemporaryCard(inviter, &TempCardInviteRequest{
		Name:  "Dave",
		Email: []string{"dave@example.com"},
	})
	asserts.NoError(err)
	tcId, _ := primitive.ObjectIDFromHex(res.TempCardID)

	created, err := f.gateway.MaterializeInvitedCard(tcId, inviter, &card.CreateCard{Name: "Dave Real"})
	asserts.NoError(err)
	asserts.Equal([]string{"dave@example.com"}, created.Email)

	cn, _ := f.cards.FindCardById(created.Id)
	asserts.True(cn.ViaInvitation)
	asserts.True(cn.HasFriend(inviter))
	asserts.Equal(card.OriginIncoming, cn.FriendList[0].Origin)

	ci, _ := f.cards.FindCardById(inviter)
	asserts.True(ci.HasFriend(created.Id))
	asserts.False(ci.HasFriend(tcId))
	for _, ref := range ci.FriendList {
		asserts.False(ref.Placeholder)
	}

	// temp card is gone
	_, err = f.tempcards.FindTempCardById(tcId)
	asserts.ErrorIs(err, tempcard.ErrTempCardNotFound)

	// welcome bonus notice lands in the new card's inbox
	asserts.Len(cn.Notifications, 1)
	ns, _ := f.notifs.FindNotifsByIds(cn.Notifications)
	asserts.Equal(created.Id, ns[0].Receiver)
	asserts.Equal(inviter, ns[0].Sender)
}

func Test_MaterializeInvitedCard_WrongInviter(t *testing.T) {
	asserts := assert.New(t)
	f := newGatewayFixture()

	inviter := f.addCardWithEmail("alice", "alice@example.com")
	other := f.addCardWithEmail("eve", "eve@example.com")

	res, err := f.gateway.InviteByTemporaryCard(inviter, &TempCardInviteRequest{
		Name:  "Dave",
		Email: []string{"dave@example.com"},
	})
	asserts.NoError(err)
	tcId, _ := primitive.ObjectIDFromHex(res.TempCardID)

	_, err = f.gateway.MaterializeInvitedCard(tcId, other, &card.CreateCard{Name: "Dave Real"})
	asserts.ErrorIs(err, ErrWrongInviter)
}
