package user

import (
	"context"
	"errors"
	"time"

	"networth/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
	ErrNoMasterCard = errors.New("user has no master card")
)

type I_UserRepo interface {
	GetCollection() *mongo.Collection
	CreateUser(user *CreateUser) (*DBUser, error)
	UpdateUser(id primitive.ObjectID, user *DBUser) (*DBUser, error)
	DeleteUser(id primitive.ObjectID) error
	FindUserById(id primitive.ObjectID) (*DBUser, error)
	FindUserByEmail(email string) (*DBUser, error)
	SetPassword(id primitive.ObjectID, hashed string) error
	SetVerified(id primitive.ObjectID, verified bool) error
	SetPersonalInfo(id primitive.ObjectID, info *PersonalInfo) error

	AttachCard(userId, cardId primitive.ObjectID) error
	CardIds(userId primitive.ObjectID) ([]primitive.ObjectID, error)
	FindOwnerByCard(cardId primitive.ObjectID) (primitive.ObjectID, error)

	FindUsersPage(keyword string, page, limit int, sortBy string, ascending bool) ([]*DBUser, error)
	CountUsers(keyword string) (int64, error)
}

type UserService struct {
	userCollection *mongo.Collection
	ctx            context.Context
	timeout        time.Duration
}

func NewUserService(userCollection *mongo.Collection, ctx context.Context, timeout time.Duration) I_UserRepo {
	return &UserService{userCollection, ctx, timeout}
}

func (me *UserService) opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(me.ctx, me.timeout)
}

func (me *UserService) GetCollection() *mongo.Collection {
	return me.userCollection
}

func (me *UserService) CreateUser(user *CreateUser) (*DBUser, error) {
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	if user.Cards == nil {
		user.Cards = []primitive.ObjectID{}
	}

	ctx, cancel := me.opCtx()
	defer cancel()

	res, err := me.userCollection.InsertOne(ctx, user)
	if err != nil {
		if er, ok := err.(mongo.WriteException); ok && len(er.WriteErrors) > 0 && er.WriteErrors[0].Code == 11000 {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	var created *DBUser
	query := bson.M{"_id": res.InsertedID}
	if err = me.userCollection.FindOne(ctx, query).Decode(&created); err != nil {
		return nil, err
	}

	return created, nil
}

func (me *UserService) UpdateUser(id primitive.ObjectID, user *DBUser) (*DBUser, error) {
	user.UpdatedAt = time.Now()

	doc, err := utils.ToDoc(user)
	if err != nil {
		return nil, err
	}

	ctx, cancel := me.opCtx()
	defer cancel()

	query := bson.M{"_id": id}
	update := bson.M{"$set": doc}
	res := me.userCollection.FindOneAndUpdate(ctx, query, update, options.FindOneAndUpdate().SetReturnDocument(1))

	var updated *DBUser
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return updated, nil
}

func (me *UserService) DeleteUser(id primitive.ObjectID) error {
	ctx, cancel := me.opCtx()
	defer cancel()

	res, err := me.userCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	if res.DeletedCount == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (me *UserService) FindUserById(id primitive.ObjectID) (*DBUser, error) {
	ctx, cancel := me.opCtx()
	defer cancel()

	var user *DBUser
	if err := me.userCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

func (me *UserService) FindUserByEmail(email string) (*DBUser, error) {
	ctx, cancel := me.opCtx()
	defer cancel()

	var user *DBUser
	if err := me.userCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

func (me *UserService) updateById(id primitive.ObjectID, update bson.M) error {
	ctx, cancel := me.opCtx()
	defer cancel()

	res, err := me.userCollection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (me *UserService) SetPassword(id primitive.ObjectID, hashed string) error {
	return me.updateById(id, bson.M{"$set": bson.M{"password": hashed, "updated_at": time.Now()}})
}

func (me *UserService) SetVerified(id primitive.ObjectID, verified bool) error {
	return me.updateById(id, bson.M{"$set": bson.M{"is_verified": verified, "provisional": false, "updated_at": time.Now()}})
}

func (me *UserService) SetPersonalInfo(id primitive.ObjectID, info *PersonalInfo) error {
	return me.updateById(id, bson.M{"$set": bson.M{"personal_info": info, "updated_at": time.Now()}})
}

func (me *UserService) AttachCard(userId, cardId primitive.ObjectID) error {
	return me.updateById(userId, bson.M{"$addToSet": bson.M{"cards": cardId}})
}

func (me *UserService) CardIds(userId primitive.ObjectID) ([]primitive.ObjectID, error) {
	u, err := me.FindUserById(userId)
	if err != nil {
		return nil, err
	}
	return u.Cards, nil
}

func (me *UserService) FindOwnerByCard(cardId primitive.ObjectID) (primitive.ObjectID, error) {
	ctx, cancel := me.opCtx()
	defer cancel()

	var user *DBUser
	if err := me.userCollection.FindOne(ctx, bson.M{"cards": cardId}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return primitive.NilObjectID, ErrUserNotFound
		}
		return primitive.NilObjectID, err
	}

	return user.Id, nil
}

func keywordQuery(keyword string) bson.M {
	if keyword == "" {
		return bson.M{}
	}
	pattern := primitive.Regex{Pattern: keyword, Options: "i"}
	return bson.M{"$or": []bson.M{{"name": pattern}, {"email": pattern}}}
}

func (me *UserService) FindUsersPage(keyword string, page, limit int, sortBy string, ascending bool) ([]*DBUser, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if sortBy == "" {
		sortBy = "created_at"
	}

	order := -1
	if ascending {
		order = 1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortBy, Value: order}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	ctx, cancel := me.opCtx()
	defer cancel()

	cursor, err := me.userCollection.Find(ctx, keywordQuery(keyword), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []*DBUser{}
	for cursor.Next(ctx) {
		u := &DBUser{}
		if err := cursor.Decode(u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (me *UserService) CountUsers(keyword string) (int64, error) {
	ctx, cancel := me.opCtx()
	defer cancel()

	return me.userCollection.CountDocuments(ctx, keywordQuery(keyword))
}
