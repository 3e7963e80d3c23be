package utils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	//before
	fmt.Println("\nSTART UNIT TEST 'utils'")

	m.Run()

	//after
	fmt.Println("END UNIT TEST 'utils'")
}

func Test_InitLogger_Verbosity(t *testing.T) {
	asserts := assert.New(t)

	quiet := InitLogger(0)
	asserts.True(quiet.V(0).Enabled())
	asserts.False(quiet.V(1).Enabled())
	asserts.False(quiet.V(2).Enabled())

	debug := InitLogger(1)
	asserts.True(debug.V(1).Enabled())
	asserts.False(debug.V(2).Enabled())

	trace := InitLogger(2)
	asserts.True(trace.V(2).Enabled())
}

func Test_GenerateOTP(t *testing.T) {
	asserts := assert.New(t)
	for i := 0; i < 20; i++ {
		otp := GenerateOTP()
		asserts.Len(otp, 4)
	}
}

func Test_IsValidEmail(t *testing.T) {
	asserts := assert.New(t)
	asserts.True(IsValidEmail("someone@getnetworth.app"))
	asserts.False(IsValidEmail("someone@"))
	asserts.False(IsValidEmail(""))
}

func Test_IsValidCardId(t *testing.T) {
	asserts := assert.New(t)
	asserts.True(IsValidCardId("5f4e7f3cb4d9a23f08f1a2b3"))
	asserts.False(IsValidCardId("not-an-object-id"))
	asserts.False(IsValidCardId(""))
}

func Test_IsValidPassword(t *testing.T) {
	asserts := assert.New(t)
	ok, _ := IsValidPassword("longenough1!")
	asserts.True(ok)
	ok, err := IsValidPassword("short")
	asserts.False(ok)
	asserts.Error(err)
}
