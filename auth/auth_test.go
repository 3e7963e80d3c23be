package auth

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	//before
	fmt.Println("\nSTART UNIT TEST 'auth'")

	m.Run()

	//after
	fmt.Println("END UNIT TEST 'auth'")
}

func Test_JWTRoundtrip(t *testing.T) {
	asserts := assert.New(t)

	token, err := CreateJWTWithExpire("5f4e7f3cb4d9a23f08f1a2b3", "a@getnetworth.app", RoleUser, "secret", time.Hour)
	asserts.NoError(err)

	claims, err := ValidateToken(token, "secret")
	asserts.NoError(err)
	asserts.Equal("5f4e7f3cb4d9a23f08f1a2b3", claims.GetUserID())
	asserts.Equal("a@getnetworth.app", claims.GetEmail())
	asserts.False(claims.IsAdmin())
	asserts.False(claims.IsExpired())

	_, err = ValidateToken(token, "wrong-secret")
	asserts.Error(err)
}

func Test_ExpiredToken(t *testing.T) {
	asserts := assert.New(t)

	token, err := CreateJWTWithExpire("id", "x@y.z", RoleUser, "secret", -time.Minute)
	asserts.NoError(err)

	_, err = ValidateToken(token, "secret")
	asserts.Error(err)
}

func Test_PasswordHash(t *testing.T) {
	asserts := assert.New(t)

	hashed, err := GeneratePassword("s3cret-pwd")
	asserts.NoError(err)
	asserts.NotEqual("s3cret-pwd", hashed)
	asserts.True(ComparePassword(hashed, "s3cret-pwd"))
	asserts.False(ComparePassword(hashed, "wrong"))
}

func Test_InvitationPayloadRoundtrip(t *testing.T) {
	asserts := assert.New(t)

	payload := `{"email":"invitee@getnetworth.app","temp_card_id":"5f4e7f3cb4d9a23f08f1a2b3"}`
	sealed, err := EncryptPayload(payload, "invitation-key")
	asserts.NoError(err)
	asserts.NotContains(sealed, "+")
	asserts.NotContains(sealed, "/")
	asserts.NotContains(sealed, "=")

	plain, err := DecryptPayload(sealed, "invitation-key")
	asserts.NoError(err)
	asserts.Equal(payload, plain)

	_, err = DecryptPayload(sealed, "other-key")
	asserts.Error(err)
}
