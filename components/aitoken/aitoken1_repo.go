package aitoken

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"networth/utils"
)

var (
	ErrTokenNotFound = errors.New("ai token config not found")
	ErrNameTaken     = errors.New("token name already exists")
)

type I_AITokenRepo interface {
	GetCollection() *mongo.Collection
	CreateAIToken(token *CreateAIToken) (*DBAIToken, error)
	UpdateAIToken(id primitive.ObjectID, token *CreateAIToken) (*DBAIToken, error)
	DeleteAIToken(id primitive.ObjectID) error
	FindAITokenById(id primitive.ObjectID) (*DBAIToken, error)
	FindAITokenByName(name string) (*DBAIToken, error)
	FindAllAITokens() ([]*DBAIToken, error)
	SetEnabled(id primitive.ObjectID, enabled bool) (*DBAIToken, error)
}

type AITokenService struct {
	collection *mongo.Collection
	ctx        context.Context
	timeout    time.Duration
}

func NewAITokenService(collection *mongo.Collection, ctx context.Context, timeout time.Duration) AITokenService {
	return AITokenService{collection, ctx, timeout}
}

func (me *AITokenService) GetCollection() *mongo.Collection {
	return me.collection
}

func (me *AITokenService) opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(me.ctx, me.timeout)
}

func (me *AITokenService) CreateAIToken(token *CreateAIToken) (*DBAIToken, error) {
	ctx, cancel := me.opCtx()
	defer cancel()

	token.CreatedAt = time.Now()
	token.UpdatedAt = token.CreatedAt
	res, err := me.collection.InsertOne(ctx, token)
	if err != nil {
		if er, ok := err.(mongo.WriteException); ok && er.WriteErrors[0].Code == 11000 {
			return nil, ErrNameTaken
		}
		return nil, err
	}

	opt := options.Index()
	opt.SetUnique(true)
	index := mongo.IndexModel{Keys: bson.M{"token_name": 1}, Options: opt}
	if _, err := me.collection.Indexes().CreateOne(ctx, index); err != nil {
		return nil, errors.New("could not create index for token_name")
	}

	var created *DBAIToken
	query := bson.M{"_id": res.InsertedID}
	if err = me.collection.FindOne(ctx, query).Decode(&created); err != nil {
		return nil, err
	}
	return created, nil
}

func (me *AITokenService) UpdateAIToken(id primitive.ObjectID, token *CreateAIToken) (*DBAIToken, error) {
	ctx, cancel := me.opCtx()
	defer cancel()

	token.UpdatedAt = time.Now()
	doc, err := utils.ToDoc(token)
	if err != nil {
		return nil, err
	}

	query := bson.D{{Key: "_id", Value: id}}
	update := bson.D{{Key: "$set", Value: doc}}
	res := me.collection.FindOneAndUpdate(ctx, query, update, options.FindOneAndUpdate().SetReturnDocument(1))

	var updated *DBAIToken
	if err := res.Decode(&updated); err != nil {
		return nil, ErrTokenNotFound
	}
	return updated, nil
}

func (me *AITokenService) DeleteAIToken(id primitive.ObjectID) error {
	ctx, cancel := me.opCtx()
	defer cancel()

	query := bson.M{"_id": id}
	res, err := me.collection.DeleteOne(ctx, query)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrTokenNotFound
	}
	return nil
}

func (me *AITokenService) FindAITokenById(id primitive.ObjectID) (*DBAIToken, error) {
	ctx, cancel := me.opCtx()
	defer cancel()

	var token *DBAIToken
	query := bson.M{"_id": id}
	if err := me.collection.FindOne(ctx, query).Decode(&token); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return token, nil
}

func (me *AITokenService) FindAITokenByName(name string) (*DBAIToken, error) {
	ctx, cancel := me.opCtx()
	defer cancel()

	var token *DBAIToken
	query := bson.M{"token_name": name}
	if err := me.collection.FindOne(ctx, query).Decode(&token); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return token, nil
}

func (me *AITokenService) FindAllAITokens() ([]*DBAIToken, error) {
	ctx, cancel := me.opCtx()
	defer cancel()

	cursor, err := me.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tokens := make([]*DBAIToken, 0)
	if err := cursor.All(ctx, &tokens); err != nil {
		return nil, err
	}
	return tokens, nil
}

func (me *AITokenService) SetEnabled(id primitive.ObjectID, enabled bool) (*DBAIToken, error) {
	ctx, cancel := me.opCtx()
	defer cancel()

	query := bson.D{{Key: "_id", Value: id}}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "is_enabled", Value: enabled},
		{Key: "updated_at", Value: time.Now()},
	}}}
	res := me.collection.FindOneAndUpdate(ctx, query, update, options.FindOneAndUpdate().SetReturnDocument(1))

	var updated *DBAIToken
	if err := res.Decode(&updated); err != nil {
		return nil, ErrTokenNotFound
	}
	return updated, nil
}
