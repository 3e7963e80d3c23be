package webres

import (
	"encoding/json"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Status  bool               `json:"status"`
	Code    int                `json:"code,omitempty"`
	Message string             `json:"message,omitempty"`
	Data    json.RawMessage    `json:"data,omitempty"`
	Params  []*InputFieldError `json:"params,omitempty"`
}

type Error struct {
	Code    int                `json:"code"`
	Message string             `json:"message"`
	Params  []*InputFieldError `json:"params,omitempty"`
}

type InputFieldError struct {
	Error string `json:"error"`
	Field string `json:"field"`
}

func Ok(message string, data json.RawMessage) *Response {
	return &Response{Status: true, Message: message, Data: data}
}

func Fail(e *Error) *Response {
	return &Response{Status: false, Code: e.Code, Message: e.Message, Params: e.Params}
}
