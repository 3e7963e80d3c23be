package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// member must started with capital and contains ID
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

func (c *Claims) GetUserID() string {
	return c.UserID
}

func (c *Claims) GetEmail() string {
	return c.Email
}

func (c *Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

func (c *Claims) IsExpired() bool {
	return c.ExpiresAt != 0 && time.Now().Unix() > c.ExpiresAt
}

// CreateJWTWithExpire generates a signed HS256 token for the given identity.
func CreateJWTWithExpire(userId, email, role, secret string, expire time.Duration) (string, error) {
	claims := &Claims{
		UserID: userId,
		Email:  email,
		Role:   role,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(expire).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// CreateRefreshToken carries only the user id.
func CreateRefreshToken(userId, secret string, expire time.Duration) (string, error) {
	return CreateJWTWithExpire(userId, "", "", secret, expire)
}

func ValidateToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Don't forget to validate the alg is what you expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
