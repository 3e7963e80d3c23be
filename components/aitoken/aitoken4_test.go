package aitoken

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestMain(m *testing.M) {
	fmt.Println("\nSTART UNIT TEST 'aitoken'")
	m.Run()
}

type memAITokenRepo struct {
	mu     sync.Mutex
	tokens map[primitive.ObjectID]*DBAIToken
}

func newMemAITokenRepo() *memAITokenRepo {
	return &memAITokenRepo{tokens: map[primitive.ObjectID]*DBAIToken{}}
}

func (me *memAITokenRepo) GetCollection() *mongo.Collection {
	return nil
}

func (me *memAITokenRepo) CreateAIToken(token *CreateAIToken) (*DBAIToken, error) {
	me.mu.Lock()
	defer me.mu.Unlock()
	for _, t := range me.tokens {
		if t.TokenName == token.TokenName {
			return nil, ErrNameTaken
		}
	}
	created := &DBAIToken{
		Id:               primitive.NewObjectID(),
		TokenName:        token.TokenName,
		EnableModel:      token.EnableModel,
		ApiKey:           token.ApiKey,
		MaxToken:         token.MaxToken,
		FrequencyPenalty: token.FrequencyPenalty,
		Temperature:      token.Temperature,
		IsEnabled:        token.IsEnabled,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	me.tokens[created.Id] = created
	return created, nil
}

func (me *memAITokenRepo) UpdateAIToken(id primitive.ObjectID, token *CreateAIToken) (*DBAIToken, error) {
	me.mu.Lock()
	defer me.mu.Unlock()
	existing, ok := me.tokens[id]
	if !ok {
		return nil, ErrTokenNotFound
	}
	existing.TokenName = token.TokenName
	existing.EnableModel = token.EnableModel
	existing.ApiKey = token.ApiKey
	existing.MaxToken = token.MaxToken
	existing.FrequencyPenalty = token.FrequencyPenalty
	existing.Temperature = token.Temperature
	existing.UpdatedAt = time.Now()
	return existing, nil
}

func (me *memAITokenRepo) DeleteAIToken(id primitive.ObjectID) error {
	me.mu.Lock()
	defer me.mu.Unlock()
	if _, ok := me.tokens[id]; !ok {
		return ErrTokenNotFound
	}
	delete(me.tokens, id)
	return nil
}

func (me *memAITokenRepo) FindAITokenById(id primitive.ObjectID) (*DBAIToken, error) {
	me.mu.Lock()
	defer me.mu.Unlock()
	token, ok := me.tokens[id]
	if !ok {
		return nil, ErrTokenNotFound
	}
	return token, nil
}

func (me *memAITokenRepo) FindAITokenByName(name string) (*DBAIToken, error) {
	me.mu.Lock()
	defer me.mu.Unlock()
	for _, t := range me.tokens {
		if t.TokenName == name {
			return t, nil
		}
	}
	return nil, ErrTokenNotFound
}

func (me *memAITokenRepo) FindAllAITokens() ([]*DBAIToken, error) {
	me.mu.Lock()
	defer me.mu.Unlock()
	all := make([]*DBAIToken, 0, len(me.tokens))
	for _, t := range me.tokens {
		all = append(all, t)
	}
	return all, nil
}

func (me *memAITokenRepo) SetEnabled(id primitive.ObjectID, enabled bool) (*DBAIToken, error) {
	me.mu.Lock()
	defer me.mu.Unlock()
	token, ok := me.tokens[id]
	if !ok {
		return nil, ErrTokenNotFound
	}
	token.IsEnabled = enabled
	token.UpdatedAt = time.Now()
	return token, nil
}

func validInput() *CreateAIToken {
	return &CreateAIToken{
		TokenName:        "gpt-main",
		EnableModel:      "gpt-4",
		ApiKey:           "sk-unit-test",
		MaxToken:         2048,
		FrequencyPenalty: 0.5,
		Temperature:      0.7,
	}
}

func Test_CreateAIToken(t *testing.T) {
	ctr := NewAITokenController(newMemAITokenRepo())

	created, e, code := ctr.CreateAIToken(validInput())
	assert.Nil(t, e)
	assert.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "gpt-main", created.TokenName)
	assert.False(t, created.IsEnabled)

	_, e, code = ctr.CreateAIToken(validInput())
	assert.NotNil(t, e)
	assert.Equal(t, http.StatusConflict, code)
}

func Test_CreateAIToken_Validation(t *testing.T) {
	ctr := NewAITokenController(newMemAITokenRepo())

	bad := validInput()
	bad.TokenName = "  "
	_, e, code := ctr.CreateAIToken(bad)
	assert.NotNil(t, e)
	assert.Equal(t, http.StatusBadRequest, code)

	bad = validInput()
	bad.MaxToken = 0
	_, _, code = ctr.CreateAIToken(bad)
	assert.Equal(t, http.StatusBadRequest, code)

	bad = validInput()
	bad.Temperature = 3.5
	_, _, code = ctr.CreateAIToken(bad)
	assert.Equal(t, http.StatusBadRequest, code)
}

func Test_UpdateAIToken(t *testing.T) {
	ctr := NewAITokenController(newMemAITokenRepo())

	created, _, _ := ctr.CreateAIToken(validInput())

	input := validInput()
	input.MaxToken = 4096
	updated, e, code := ctr.UpdateAIToken(created.Id.Hex(), input)
	assert.Nil(t, e)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 4096, updated.MaxToken)

	_, e, code = ctr.UpdateAIToken("not-a-hex-id", input)
	assert.NotNil(t, e)
	assert.Equal(t, http.StatusBadRequest, code)

	_, e, code = ctr.UpdateAIToken(primitive.NewObjectID().Hex(), input)
	assert.NotNil(t, e)
	assert.Equal(t, http.StatusNotFound, code)
}

func Test_EnableDisableAIToken(t *testing.T) {
	ctr := NewAITokenController(newMemAITokenRepo())

	created, _, _ := ctr.CreateAIToken(validInput())
	assert.False(t, created.IsEnabled)

	enabled, e, code := ctr.SetEnabled(created.Id.Hex(), true)
	assert.Nil(t, e)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, enabled.IsEnabled)

	disabled, e, _ := ctr.SetEnabled(created.Id.Hex(), false)
	assert.Nil(t, e)
	assert.False(t, disabled.IsEnabled)
}

func Test_DeleteAIToken(t *testing.T) {
	ctr := NewAITokenController(newMemAITokenRepo())

	created, _, _ := ctr.CreateAIToken(validInput())

	e, code := ctr.DeleteAIToken(created.Id.Hex())
	assert.Nil(t, e)
	assert.Equal(t, http.StatusOK, code)

	_, e, code = ctr.GetAIToken(created.Id.Hex())
	assert.NotNil(t, e)
	assert.Equal(t, http.StatusNotFound, code)

	e, code = ctr.DeleteAIToken(created.Id.Hex())
	assert.NotNil(t, e)
	assert.Equal(t, http.StatusNotFound, code)
}

func Test_ListAITokens(t *testing.T) {
	ctr := NewAITokenController(newMemAITokenRepo())

	first := validInput()
	second := validInput()
	second.TokenName = "gpt-backup"
	ctr.CreateAIToken(first)
	ctr.CreateAIToken(second)

	all, e, code := ctr.ListAITokens()
	assert.Nil(t, e)
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, all, 2)
}
