package card

import (
	"context"
	"errors"
	"fmt"
	"time"

	"networth/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrCardNotFound = errors.New("card not found")

// I_CardRepo persists cards and their relationship containers. The list
// mutations are conditional single-document updates ($addToSet, $pull,
// guarded $push, $inc), never read-modify-write of whole arrays, so
// concurrent operations on the same card can not lose updates.
type I_CardRepo interface {
	GetCollection() *mongo.Collection
	CreateCard(card *CreateCard) (*DBCard, error)
	UpdateCard(id primitive.ObjectID, card *DBCard) (*DBCard, error)
	DeleteCard(id primitive.ObjectID) error
	FindCardById(id primitive.ObjectID) (*DBCard, error)
	FindCardByEmail(email string) (*DBCard, error)
	FindCardsByIds(ids []primitive.ObjectID) ([]*DBCard, error)
	FindMasterByIds(ids []primitive.ObjectID) (*DBCard, error)
	SearchCards(q *SearchContact) ([]*DBCard, error)

	AddIncoming(cardId, from primitive.ObjectID) error
	AddOutgoing(cardId, to primitive.ObjectID) error
	PullIncoming(cardId, from primitive.ObjectID) error
	PullOutgoing(cardId, to primitive.ObjectID) error
	PushFriend(cardId primitive.ObjectID, ref FriendRef) (bool, error)
	PullFriend(cardId, friendId primitive.ObjectID) error
	PushNotification(cardId, notifId primitive.ObjectID) error
	AddPoints(cardId primitive.ObjectID, points int) error
	IncInviteCount(cardId primitive.ObjectID) error
	SetViaInvitation(cardId primitive.ObjectID, via bool) error

	CreateActivity(activity *Activity) (*Activity, error)
	FindActivitiesByIds(ids []primitive.ObjectID) ([]*Activity, error)
	PushActivity(cardId, activityId primitive.ObjectID) error
	CreateLink(link *Link) (*Link, error)
	FindLinksByIds(ids []primitive.ObjectID) ([]*Link, error)
	PushLink(cardId, linkId primitive.ObjectID) error
}

type CardService struct {
	cardCollection     *mongo.Collection
	activityCollection *mongo.Collection
	linkCollection     *mongo.Collection
	ctx                context.Context
	timeout            time.Duration
}

func NewCardService(db *mongo.Database, ctx context.Context, timeout time.Duration) I_CardRepo {
	return &CardService{
		cardCollection:     db.Collection("cards"),
		activityCollection: db.Collection("activities"),
		linkCollection:     db.Collection("links"),
		ctx:                ctx,
		timeout:            timeout,
	}
}

func (me *CardService) opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(me.ctx, me.timeout)
}

func (me *CardService) GetCollection() *mongo.Collection {
	return me.cardCollection
}

func (me *CardService) CreateCard(card *CreateCard) (*DBCard, error) {
	card.CreatedAt = time.Now()
	card.UpdatedAt = card.CreatedAt

	ctx, cancel := me.opCtx()
	defer cancel()

	res, err := me.cardCollection.InsertOne(ctx, card)
	if err != nil {
		return nil, err
	}

	var newCard *DBCard
	query := bson.M{"_id": res.InsertedID}
	if err = me.cardCollection.FindOne(ctx, query).Decode(&newCard); err != nil {
		return nil, err
	}

	return newCard, nil
}

func (me *CardService) UpdateCard(id primitive.ObjectID, card *DBCard) (*DBCard, error) {
	card.UpdatedAt = time.Now()
	doc, err := utils.ToDoc(card)
	if err != nil {
		return nil, err
	}

	ctx, cancel := me.opCtx()
	defer cancel()

	query := bson.D{{Key: "_id", Value: id}}
	update := bson.D{{Key: "$set", Value: doc}}
	res := me.cardCollection.FindOneAndUpdate(ctx, query, update, options.FindOneAndUpdate().SetReturnDocument(1))

	var updatedCard *DBCard
	if err := res.Decode(&updatedCard); err != nil {
		return nil, ErrCardNotFound
	}

	return updatedCard, nil
}

func (me *CardService) DeleteCard(id primitive.ObjectID) error {
	ctx, cancel := me.opCtx()
	defer cancel()

	res, err := me.cardCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	if res.DeletedCount == 0 {
		return ErrCardNotFound
	}

	return nil
}

func (me *CardService) FindCardById(id primitive.ObjectID) (*DBCard, error) {
	ctx, cancel := me.opCtx()
	defer cancel()

	var card *DBCard
	if err := me.cardCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&card); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrCardNotFound
		}
		return nil, err
	}

	return card, nil
}

func (me *CardService) FindCardByEmail(email string) (*DBCard, error) {
	ctx, cancel := me.opCtx()
	defer cancel()

	query := bson.M{"email": bson.M{"$in": []string{email}}}

	var card *DBCard
	if err := me.cardCollection.FindOne(ctx, query).Decode(&card); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrCardNotFound
		}
		return nil, err
	}

	return card, nil
}

func (me *CardService) FindCardsByIds(ids []primitive.ObjectID) ([]*DBCard, error) {
	if len(ids) == 0 {
		return []*DBCard{}, nil
	}

	ctx, cancel := me.opCtx()
	defer cancel()

	cursor, err := me.cardCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cards []*DBCard
	for cursor.Next(ctx) {
		c := &DBCard{}
		if err := cursor.Decode(c); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	if len(cards) == 0 {
		return []*DBCard{}, nil
	}

	return cards, nil
}

// FindMasterByIds picks the card flagged is_master among the given ids.
func (me *CardService) FindMasterByIds(ids []primitive.ObjectID) (*DBCard, error) {
	if len(ids) == 0 {
		return nil, ErrCardNotFound
	}

	ctx, cancel := me.opCtx()
	defer cancel()

	query := bson.M{"_id": bson.M{"$in": ids}, "is_master": true}

	var card *DBCard
	if err := me.cardCollection.FindOne(ctx, query).Decode(&card); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrCardNotFound
		}
		return nil, err
	}

	return card, nil
}

func (me *CardService) SearchCards(q *SearchContact) ([]*DBCard, error) {
	query := bson.M{}
	if q.Name != "" {
		query["name"] = bson.M{"$regex": fmt.Sprintf(".*%s.*", q.Name), "$options": "i"}
	}
	if q.Designation != "" {
		query["designation"] = bson.M{"$regex": fmt.Sprintf(".*%s.*", q.Designation), "$options": "i"}
	}
	if q.Company != "" {
		query["company_name"] = bson.M{"$regex": fmt.Sprintf(".*%s.*", q.Company), "$options": "i"}
	}
	if q.Email != "" {
		query["email"] = bson.M{"$regex": fmt.Sprintf(".*%s.*", q.Email), "$options": "i"}
	}
	if q.Phone != "" {
		query["phone_number"] = bson.M{"$regex": fmt.Sprintf(".*%s.*", q.Phone)}
	}

	ctx, cancel := me.opCtx()
	defer cancel()

	cursor, err := me.cardCollection.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cards []*DBCard
	for cursor.Next(ctx) {
		c := &DBCard{}
		if err := cursor.Decode(c); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	if len(cards) == 0 {
		return []*DBCard{}, nil
	}

	return cards, nil
}

func (me *CardService) updateById(id primitive.ObjectID, update bson.M) error {
	ctx, cancel := me.opCtx()
	defer cancel()

	res, err := me.cardCollection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return ErrCardNotFound
	}

	return nil
}

func (me *CardService) AddIncoming(cardId, from primitive.ObjectID) error {
	return me.updateById(cardId, bson.M{"$addToSet": bson.M{"incoming_friend_request": from}})
}

func (me *CardService) AddOutgoing(cardId, to primitive.ObjectID) error {
	return me.updateById(cardId, bson.M{"$addToSet": bson.M{"outgoing_friend_request": to}})
}

func (me *CardService) PullIncoming(cardId, from primitive.ObjectID) error {
	return me.updateById(cardId, bson.M{"$pull": bson.M{"incoming_friend_request": from}})
}

func (me *CardService) PullOutgoing(cardId, to primitive.ObjectID) error {
	return me.updateById(cardId, bson.M{"$pull": bson.M{"outgoing_friend_request": to}})
}

// PushFriend appends the entry unless the counterpart is already listed, so
// a retried transition can not produce a duplicate friend entry. Returns
// whether this call actually inserted the entry, so exactly one of several
// concurrent resolvers observes the insert and owns the side effects.
func (me *CardService) PushFriend(cardId primitive.ObjectID, ref FriendRef) (bool, error) {
	ctx, cancel := me.opCtx()
	defer cancel()

	query := bson.M{"_id": cardId, "friend_list.friend": bson.M{"$ne": ref.Friend}}
	update := bson.M{"$push": bson.M{"friend_list": ref}}

	res, err := me.cardCollection.UpdateOne(ctx, query, update)
	if err != nil {
		return false, err
	}

	if res.MatchedCount == 0 {
		// either the card is gone or the entry already exists
		exists, err := me.cardCollection.CountDocuments(ctx, bson.M{"_id": cardId})
		if err != nil {
			return false, err
		}
		if exists == 0 {
			return false, ErrCardNotFound
		}
		return false, nil
	}

	return true, nil
}

func (me *CardService) PullFriend(cardId, friendId primitive.ObjectID) error {
	return me.updateById(cardId, bson.M{"$pull": bson.M{"friend_list": bson.M{"friend": friendId}}})
}

func (me *CardService) PushNotification(cardId, notifId primitive.ObjectID) error {
	return me.updateById(cardId, bson.M{"$push": bson.M{"notifications": notifId}})
}

func (me *CardService) AddPoints(cardId primitive.ObjectID, points int) error {
	return me.updateById(cardId, bson.M{"$inc": bson.M{"total_points": points}})
}

func (me *CardService) IncInviteCount(cardId primitive.ObjectID) error {
	return me.updateById(cardId, bson.M{"$inc": bson.M{"invite_count": 1}})
}

func (me *CardService) SetViaInvitation(cardId primitive.ObjectID, via bool) error {
	return me.updateById(cardId, bson.M{"$set": bson.M{"via_invitation": via}})
}

func (me *CardService) CreateActivity(activity *Activity) (*Activity, error) {
	activity.CreatedAt = time.Now()
	activity.UpdatedAt = activity.CreatedAt

	ctx, cancel := me.opCtx()
	defer cancel()

	res, err := me.activityCollection.InsertOne(ctx, activity)
	if err != nil {
		return nil, err
	}

	var created *Activity
	if err = me.activityCollection.FindOne(ctx, bson.M{"_id": res.InsertedID}).Decode(&created); err != nil {
		return nil, err
	}

	return created, nil
}

func (me *CardService) FindActivitiesByIds(ids []primitive.ObjectID) ([]*Activity, error) {
	if len(ids) == 0 {
		return []*Activity{}, nil
	}

	ctx, cancel := me.opCtx()
	defer cancel()

	cursor, err := me.activityCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var activities []*Activity
	for cursor.Next(ctx) {
		a := &Activity{}
		if err := cursor.Decode(a); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	if len(activities) == 0 {
		return []*Activity{}, nil
	}

	return activities, nil
}

func (me *CardService) PushActivity(cardId, activityId primitive.ObjectID) error {
	return me.updateById(cardId, bson.M{"$push": bson.M{"activities": activityId}})
}

func (me *CardService) CreateLink(link *Link) (*Link, error) {
	link.CreatedAt = time.Now()
	link.UpdatedAt = link.CreatedAt

	ctx, cancel := me.opCtx()
	defer cancel()

	res, err := me.linkCollection.InsertOne(ctx, link)
	if err != nil {
		return nil, err
	}

	var created *Link
	if err = me.linkCollection.FindOne(ctx, bson.M{"_id": res.InsertedID}).Decode(&created); err != nil {
		return nil, err
	}

	return created, nil
}

func (me *CardService) FindLinksByIds(ids []primitive.ObjectID) ([]*Link, error) {
	if len(ids) == 0 {
		return []*Link{}, nil
	}

	ctx, cancel := me.opCtx()
	defer cancel()

	cursor, err := me.linkCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var links []*Link
	for cursor.Next(ctx) {
		l := &Link{}
		if err := cursor.Decode(l); err != nil {
			return nil, err
		}
		links = append(links, l)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	if len(links) == 0 {
		return []*Link{}, nil
	}

	return links, nil
}

func (me *CardService) PushLink(cardId, linkId primitive.ObjectID) error {
	return me.updateById(cardId, bson.M{"$push": bson.M{"links": linkId}})
}
