package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	SessionTokenTTL = 72 * time.Hour
	ReauthTokenTTL  = 5 * time.Minute

	scopeSession = "session"
	scopeReauth  = "reauth"
)

func secret() []byte { return []byte(os.Getenv("JWT_SECRET")) }

func signToken(uid, scope string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":   uid,
		"scope": scope,
		"exp":   time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(secret())
}

// GenerateJWT mints the long-lived session token handed out on sign-in.
func GenerateJWT(uid string) (string, error) {
	return signToken(uid, scopeSession, SessionTokenTTL)
}

// GenerateReauthJWT mints the short-lived token proving a fresh password
// check, required before password change and account deletion.
func GenerateReauthJWT(uid string) (string, error) {
	return signToken(uid, scopeReauth, ReauthTokenTTL)
}

func parseToken(tokenString, wantScope string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret(), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	if scope, _ := claims["scope"].(string); scope != wantScope {
		return "", errors.New("wrong token scope")
	}
	uid, _ := claims["uid"].(string)
	if uid == "" {
		return "", errors.New("uid claim missing")
	}
	return uid, nil
}

// ParseSessionJWT validates a session token and returns the uid.
func ParseSessionJWT(tokenString string) (string, error) {
	return parseToken(tokenString, scopeSession)
}

// ParseReauthJWT validates a reauthentication token and returns the uid.
func ParseReauthJWT(tokenString string) (string, error) {
	return parseToken(tokenString, scopeReauth)
}
