package aitoken

import (
	"errors"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"networth/webres"
)

type AITokenController struct {
	tokenService I_AITokenRepo
}

func NewAITokenController(tokenService I_AITokenRepo) AITokenController {
	return AITokenController{tokenService}
}

func repoError(err error) (*webres.Error, int) {
	switch {
	case errors.Is(err, ErrTokenNotFound):
		return &webres.Error{Code: http.StatusNotFound, Message: err.Error()}, http.StatusNotFound
	case errors.Is(err, ErrNameTaken):
		return &webres.Error{Code: http.StatusConflict, Message: err.Error()}, http.StatusConflict
	default:
		return &webres.Error{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusInternalServerError
	}
}

func (me *AITokenController) validate(input *CreateAIToken) *webres.Error {
	input.TokenName = strings.TrimSpace(input.TokenName)
	if input.TokenName == "" {
		return &webres.Error{Code: http.StatusBadRequest, Message: "token_name is required"}
	}
	if input.EnableModel == "" {
		return &webres.Error{Code: http.StatusBadRequest, Message: "enable_model is required"}
	}
	if input.ApiKey == "" {
		return &webres.Error{Code: http.StatusBadRequest, Message: "api_key is required"}
	}
	if input.MaxToken <= 0 {
		return &webres.Error{Code: http.StatusBadRequest, Message: "max_token must be positive"}
	}
	if input.Temperature < 0 || input.Temperature > 2 {
		return &webres.Error{Code: http.StatusBadRequest, Message: "temperature must be between 0 and 2"}
	}
	return nil
}

func (me *AITokenController) CreateAIToken(input *CreateAIToken) (*DBAIToken, *webres.Error, int) {
	if rsp := me.validate(input); rsp != nil {
		return nil, rsp, rsp.Code
	}

	created, err := me.tokenService.CreateAIToken(input)
	if err != nil {
		rsp, code := repoError(err)
		return nil, rsp, code
	}
	return created, nil, http.StatusCreated
}

func (me *AITokenController) UpdateAIToken(id string, input *CreateAIToken) (*DBAIToken, *webres.Error, int) {
	tokenId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusBadRequest, Message: "invalid token id"}, http.StatusBadRequest
	}
	if rsp := me.validate(input); rsp != nil {
		return nil, rsp, rsp.Code
	}

	updated, err := me.tokenService.UpdateAIToken(tokenId, input)
	if err != nil {
		rsp, code := repoError(err)
		return nil, rsp, code
	}
	return updated, nil, http.StatusOK
}

func (me *AITokenController) DeleteAIToken(id string) (*webres.Error, int) {
	tokenId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return &webres.Error{Code: http.StatusBadRequest, Message: "invalid token id"}, http.StatusBadRequest
	}

	if err := me.tokenService.DeleteAIToken(tokenId); err != nil {
		return repoError(err)
	}
	return nil, http.StatusOK
}

func (me *AITokenController) GetAIToken(id string) (*DBAIToken, *webres.Error, int) {
	tokenId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusBadRequest, Message: "invalid token id"}, http.StatusBadRequest
	}

	token, err := me.tokenService.FindAITokenById(tokenId)
	if err != nil {
		rsp, code := repoError(err)
		return nil, rsp, code
	}
	return token, nil, http.StatusOK
}

func (me *AITokenController) ListAITokens() ([]*DBAIToken, *webres.Error, int) {
	tokens, err := me.tokenService.FindAllAITokens()
	if err != nil {
		rsp, code := repoError(err)
		return nil, rsp, code
	}
	return tokens, nil, http.StatusOK
}

func (me *AITokenController) SetEnabled(id string, enabled bool) (*DBAIToken, *webres.Error, int) {
	tokenId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, &webres.Error{Code: http.StatusBadRequest, Message: "invalid token id"}, http.StatusBadRequest
	}

	updated, err := me.tokenService.SetEnabled(tokenId, enabled)
	if err != nil {
		rsp, code := repoError(err)
		return nil, rsp, code
	}
	return updated, nil, http.StatusOK
}
