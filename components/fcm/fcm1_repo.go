package fcm

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrTokenNotFound = errors.New("fcm token not found")

type I_FcmRepo interface {
	GetCollection() *mongo.Collection
	UpsertToken(userId primitive.ObjectID, token string) error
	FindTokenByUser(userId primitive.ObjectID) (*DBFcmToken, error)
	DeleteByUser(userId primitive.ObjectID) error
}

type FcmService struct {
	tokenCollection *mongo.Collection
	ctx             context.Context
	timeout         time.Duration
}

func NewFcmService(tokenCollection *mongo.Collection, ctx context.Context, timeout time.Duration) I_FcmRepo {
	return &FcmService{tokenCollection, ctx, timeout}
}

func (me *FcmService) opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(me.ctx, me.timeout)
}

func (me *FcmService) GetCollection() *mongo.Collection {
	return me.tokenCollection
}

func (me *FcmService) UpsertToken(userId primitive.ObjectID, token string) error {
	ctx, cancel := me.opCtx()
	defer cancel()

	now := time.Now()
	update := bson.M{
		"$set":         bson.M{"fcm_token": token, "updated_at": now},
		"$setOnInsert": bson.M{"user_id": userId, "created_at": now},
	}

	opts := options.Update().SetUpsert(true)
	_, err := me.tokenCollection.UpdateOne(ctx, bson.M{"user_id": userId}, update, opts)
	return err
}

func (me *FcmService) FindTokenByUser(userId primitive.ObjectID) (*DBFcmToken, error) {
	ctx, cancel := me.opCtx()
	defer cancel()

	var t *DBFcmToken
	if err := me.tokenCollection.FindOne(ctx, bson.M{"user_id": userId}).Decode(&t); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}

	return t, nil
}

func (me *FcmService) DeleteByUser(userId primitive.ObjectID) error {
	ctx, cancel := me.opCtx()
	defer cancel()

	_, err := me.tokenCollection.DeleteMany(ctx, bson.M{"user_id": userId})
	return err
}
