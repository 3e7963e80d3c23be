package tempcard

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrTempCardNotFound = errors.New("temp card not found")

type I_TempCardRepo interface {
	GetCollection() *mongo.Collection
	CreateTempCard(tc *CreateTempCard) (*DBTempCard, error)
	FindTempCardById(id primitive.ObjectID) (*DBTempCard, error)
	FindTempCardByEmail(email string) (*DBTempCard, error)
	DeleteTempCard(id primitive.ObjectID) error
}

type TempCardService struct {
	tempCardCollection *mongo.Collection
	ctx                context.Context
	timeout            time.Duration
}

func NewTempCardService(tempCardCollection *mongo.Collection, ctx context.Context, timeout time.Duration) I_TempCardRepo {
	return &TempCardService{tempCardCollection, ctx, timeout}
}

func (me *TempCardService) opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(me.ctx, me.timeout)
}

func (me *TempCardService) GetCollection() *mongo.Collection {
	return me.tempCardCollection
}

func (me *TempCardService) CreateTempCard(tc *CreateTempCard) (*DBTempCard, error) {
	tc.CreatedAt = time.Now()
	tc.UpdatedAt = tc.CreatedAt

	ctx, cancel := me.opCtx()
	defer cancel()

	res, err := me.tempCardCollection.InsertOne(ctx, tc)
	if err != nil {
		if er, ok := err.(mongo.WriteException); ok && len(er.WriteErrors) > 0 && er.WriteErrors[0].Code == 11000 {
			return nil, errors.New("email already exists in temp card")
		}
		return nil, err
	}

	var created *DBTempCard
	query := bson.M{"_id": res.InsertedID}
	if err = me.tempCardCollection.FindOne(ctx, query).Decode(&created); err != nil {
		return nil, err
	}

	return created, nil
}

func (me *TempCardService) FindTempCardById(id primitive.ObjectID) (*DBTempCard, error) {
	ctx, cancel := me.opCtx()
	defer cancel()

	var tc *DBTempCard
	if err := me.tempCardCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&tc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrTempCardNotFound
		}
		return nil, err
	}

	return tc, nil
}

func (me *TempCardService) FindTempCardByEmail(email string) (*DBTempCard, error) {
	ctx, cancel := me.opCtx()
	defer cancel()

	query := bson.M{"email": bson.M{"$in": []string{email}}}

	var tc *DBTempCard
	if err := me.tempCardCollection.FindOne(ctx, query).Decode(&tc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrTempCardNotFound
		}
		return nil, err
	}

	return tc, nil
}

func (me *TempCardService) DeleteTempCard(id primitive.ObjectID) error {
	ctx, cancel := me.opCtx()
	defer cancel()

	res, err := me.tempCardCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	if res.DeletedCount == 0 {
		return ErrTempCardNotFound
	}

	return nil
}
