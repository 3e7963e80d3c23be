package otp

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrCodeInvalid = errors.New("invalid or expired verification code")

type I_OTPRepo interface {
	GetCollection() *mongo.Collection
	IssueCode(email, code string) error
	VerifyCode(email, code string) error
	DeleteByEmail(email string) error
}

type OTPService struct {
	otpCollection *mongo.Collection
	ctx           context.Context
	timeout       time.Duration
}

func NewOTPService(otpCollection *mongo.Collection, ctx context.Context, timeout time.Duration) I_OTPRepo {
	return &OTPService{otpCollection, ctx, timeout}
}

func (me *OTPService) opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(me.ctx, me.timeout)
}

func (me *OTPService) GetCollection() *mongo.Collection {
	return me.otpCollection
}

// IssueCode replaces any previous code for the email, so only the latest
// mail is verifiable.
func (me *OTPService) IssueCode(email, code string) error {
	ctx, cancel := me.opCtx()
	defer cancel()

	if _, err := me.otpCollection.DeleteMany(ctx, bson.M{"email": email}); err != nil {
		return err
	}

	record := &CreateOTP{Email: email, Code: code, Status: StatusPending, CreatedAt: time.Now()}
	_, err := me.otpCollection.InsertOne(ctx, record)
	return err
}

// VerifyCode consumes the code atomically: the pending flag flips to used in
// the same operation that matches it, so a code verifies exactly once.
func (me *OTPService) VerifyCode(email, code string) error {
	ctx, cancel := me.opCtx()
	defer cancel()

	query := bson.M{"email": email, "otp": code, "status": StatusPending}
	update := bson.M{"$set": bson.M{"status": StatusUsed}}

	res, err := me.otpCollection.UpdateOne(ctx, query, update)
	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return ErrCodeInvalid
	}

	return nil
}

func (me *OTPService) DeleteByEmail(email string) error {
	ctx, cancel := me.opCtx()
	defer cancel()

	_, err := me.otpCollection.DeleteMany(ctx, bson.M{"email": email})
	return err
}
