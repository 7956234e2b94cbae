package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is what the bearer token carries: the registry key, the
// subject and the upstream session secret needed to rebind after a restart.
type SessionClaims struct {
	SessionKey string
	UserID     string
	Secret     string
}

func GenerateSessionToken(sessionKey, userID, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"jti":    sessionKey,
		"sub":    userID,
		"secret": secret,
		"exp":    time.Now().Add(time.Hour * 72).Unix(),
	})

	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func ParseSessionToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	out := &SessionClaims{}
	out.SessionKey, _ = claims["jti"].(string)
	out.UserID, _ = claims["sub"].(string)
	out.Secret, _ = claims["secret"].(string)
	if out.SessionKey == "" || out.Secret == "" {
		return nil, errors.New("incomplete session claims")
	}
	return out, nil
}
