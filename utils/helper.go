package utils

import (
	"encoding/json"
	"errors"
	"math/rand"
	"os"
	"reflect"
	"strconv"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/go-logr/logr"
	"github.com/go-logr/zerologr"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var logger logr.Logger = logr.Discard()

// InitLogger builds the global zerolog-backed logger. Higher v means more
// logs: zerologr sinks V(0) at info, V(1) at debug and V(2+) at trace, so
// verbosity is gated through the zerolog level.
func InitLogger(v int) logr.Logger {
	level := zerolog.InfoLevel
	switch {
	case v >= 2:
		level = zerolog.TraceLevel
	case v == 1:
		level = zerolog.DebugLevel
	}

	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()
	logger = zerologr.New(&zl)
	return logger
}

func Log() logr.Logger {
	return logger
}

// GenerateOTP returns a 4 digit one time pin as string.
func GenerateOTP() string {
	rand.Seed(time.Now().UnixNano())
	num := rand.Intn(9000) + 1000
	return strconv.Itoa(num)
}

func ToDoc(v interface{}) (doc *bson.D, err error) {
	data, err := bson.Marshal(v)
	if err != nil {
		return
	}

	err = bson.Unmarshal(data, &doc)
	return
}

func ToRawMessage(s interface{}) (json.RawMessage, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}

func StringInSlice(a string, list []string) bool {
	for _, b := range list {
		if b == a {
			return true
		}
	}
	return false
}

func IsValidName(s string) (bool, error) {
	if len(s) == 0 {
		return false, errors.New("name can not empty")
	}

	if len(s) > 50 {
		return false, errors.New("name to long, max 50 characters")
	}

	return true, nil
}

func IsValidPassword(s string) (bool, error) {
	if len(s) == 0 {
		return false, errors.New("password can not empty")
	}

	if len(s) < 8 {
		return false, errors.New("password to short, min 8 characters")
	}

	if len(s) > 64 {
		return false, errors.New("password to long, max 64 characters")
	}

	return true, nil
}

func IsValidEmail(s string) bool {
	return govalidator.IsEmail(s)
}

// IsValidCardId reports whether s is a well formed object id hex string.
func IsValidCardId(s string) bool {
	_, err := primitive.ObjectIDFromHex(s)
	return err == nil
}

func CopyStruct(src, dst interface{}) {
	srcVal := reflect.ValueOf(src).Elem()
	dstVal := reflect.ValueOf(dst).Elem()

	for i := 0; i < srcVal.NumField(); i++ {
		srcField := srcVal.Field(i)
		srcType := srcVal.Type().Field(i)

		// Check if the field exists in the destination struct
		if dstVal.FieldByName(srcType.Name).IsValid() {
			dstField := dstVal.FieldByName(srcType.Name)
			dstField.Set(srcField)
		}
	}
}
