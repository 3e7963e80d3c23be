package fcm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"networth/config"

	"github.com/go-logr/logr"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const messagingScope = "https://www.googleapis.com/auth/firebase.messaging"

var Logger logr.Logger = logr.Discard()

// I_OwnerLookup resolves which account owns a card. The user component
// implements it.
type I_OwnerLookup interface {
	FindOwnerByCard(cardId primitive.ObjectID) (primitive.ObjectID, error)
}

// Pusher delivers notification texts to a card owner's device through the
// FCM HTTP v1 API. Delivery is best effort: failures are logged and never
// surfaced to the caller.
type Pusher struct {
	tokens    I_FcmRepo
	owners    I_OwnerLookup
	projectID string
	endpoint  string
	client    *http.Client
	timeout   time.Duration
}

func NewPusher(ctx context.Context, cfg config.FCMConfig, l logr.Logger, tokens I_FcmRepo, owners I_OwnerLookup) (*Pusher, error) {
	Logger = l

	data, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read fcm credentials: %w", err)
	}

	conf, err := google.JWTConfigFromJSON(data, messagingScope)
	if err != nil {
		return nil, fmt.Errorf("parse fcm credentials: %w", err)
	}

	return &Pusher{
		tokens:    tokens,
		owners:    owners,
		projectID: cfg.ProjectID,
		endpoint:  fmt.Sprintf("https://fcm.googleapis.com/v1/projects/%s/messages:send", cfg.ProjectID),
		client:    oauth2.NewClient(ctx, conf.TokenSource(ctx)),
		timeout:   cfg.Timeout,
	}, nil
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type fcmMessage struct {
	Token        string          `json:"token"`
	Notification fcmNotification `json:"notification"`
}

type fcmSendRequest struct {
	Message fcmMessage `json:"message"`
}

// PushToCard resolves the card's owner and fires the delivery off the caller's
// path. A card without an owner or a user without a device token is normal
// and only worth a trace line.
func (me *Pusher) PushToCard(cardId primitive.ObjectID, message string) {
	go me.deliver(cardId, message)
}

func (me *Pusher) deliver(cardId primitive.ObjectID, message string) {
	userId, err := me.owners.FindOwnerByCard(cardId)
	if err != nil {
		Logger.V(2).Info(fmt.Sprintf("push skipped, no owner for card %s: %s", cardId.Hex(), err.Error()))
		return
	}

	t, err := me.tokens.FindTokenByUser(userId)
	if err != nil {
		Logger.V(2).Info(fmt.Sprintf("push skipped, no device token for user %s: %s", userId.Hex(), err.Error()))
		return
	}

	body, err := json.Marshal(&fcmSendRequest{Message: fcmMessage{
		Token:        t.Token,
		Notification: fcmNotification{Title: "NetWorth", Body: message},
	}})
	if err != nil {
		Logger.Error(err, "marshal push message")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), me.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, me.endpoint, bytes.NewReader(body))
	if err != nil {
		Logger.Error(err, "build push request")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := me.client.Do(req)
	if err != nil {
		Logger.Error(err, "send push message")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		Logger.Error(fmt.Errorf("fcm responded %s", resp.Status), "send push message")
		return
	}

	Logger.V(2).Info(fmt.Sprintf("push delivered to user %s", userId.Hex()))
}
