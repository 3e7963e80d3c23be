package notification

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotifNotFound = errors.New("notification not found")

// The ledger is append only. Entries are created on relationship
// transitions and only ever mutated to flip the read flag.
type I_NotifRepo interface {
	GetCollection() *mongo.Collection
	AddNotif(notif *CreateNotification) (*DBNotification, error)
	FindNotifsByIds(ids []primitive.ObjectID) ([]*DBNotification, error)
	MarkRead(id primitive.ObjectID) error
	DeleteByCard(cardId primitive.ObjectID) error
}

type NotifService struct {
	notifCollection *mongo.Collection
	ctx             context.Context
	timeout         time.Duration
}

func NewNotifService(notifCollection *mongo.Collection, ctx context.Context, timeout time.Duration) I_NotifRepo {
	return &NotifService{notifCollection, ctx, timeout}
}

func (me *NotifService) opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(me.ctx, me.timeout)
}

func (me *NotifService) GetCollection() *mongo.Collection {
	return me.notifCollection
}

func (me *NotifService) AddNotif(notif *CreateNotification) (*DBNotification, error) {
	notif.CreatedAt = time.Now()
	notif.Read = false

	ctx, cancel := me.opCtx()
	defer cancel()

	res, err := me.notifCollection.InsertOne(ctx, notif)
	if err != nil {
		return nil, err
	}

	var created *DBNotification
	query := bson.M{"_id": res.InsertedID}
	if err = me.notifCollection.FindOne(ctx, query).Decode(&created); err != nil {
		return nil, err
	}

	return created, nil
}

// FindNotifsByIds returns entries in the order the ids are given, which is
// the order they were appended to the card.
func (me *NotifService) FindNotifsByIds(ids []primitive.ObjectID) ([]*DBNotification, error) {
	if len(ids) == 0 {
		return []*DBNotification{}, nil
	}

	ctx, cancel := me.opCtx()
	defer cancel()

	cursor, err := me.notifCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	byId := make(map[primitive.ObjectID]*DBNotification, len(ids))
	for cursor.Next(ctx) {
		n := &DBNotification{}
		if err := cursor.Decode(n); err != nil {
			return nil, err
		}
		byId[n.Id] = n
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	notifs := make([]*DBNotification, 0, len(ids))
	for _, id := range ids {
		if n, ok := byId[id]; ok {
			notifs = append(notifs, n)
		}
	}

	return notifs, nil
}

func (me *NotifService) MarkRead(id primitive.ObjectID) error {
	ctx, cancel := me.opCtx()
	defer cancel()

	res, err := me.notifCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return ErrNotifNotFound
	}

	return nil
}

// DeleteByCard removes all entries addressed to or sent by the card, used
// only by cascading card deletion.
func (me *NotifService) DeleteByCard(cardId primitive.ObjectID) error {
	ctx, cancel := me.opCtx()
	defer cancel()

	query := bson.M{"$or": []bson.M{{"receiver": cardId}, {"sender": cardId}}}
	_, err := me.notifCollection.DeleteMany(ctx, query)
	return err
}
