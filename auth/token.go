package auth

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the cookie the login flow sets so that browser-style
// navigation (redirect gates) works without an Authorization header.
const SessionCookieName = "quill_session"

const tokenLifetime = 24 * time.Hour

var ErrNoToken = errors.New("no session token")

func secret() []byte {
	return []byte(os.Getenv("API_SECRET"))
}

// CreateToken issues a signed JWT for the given user ID.
func CreateToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"authorized": true,
		"user_id":    userID,
		"exp":        time.Now().Add(tokenLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret())
}

// ExtractToken pulls the raw token from the Authorization header or, failing
// that, the session cookie.
func ExtractToken(r *http.Request) string {
	bearer := r.Header.Get("Authorization")
	if parts := strings.Split(bearer, " "); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// ExtractTokenID validates the request's token and returns the user ID it
// was issued for.
func ExtractTokenID(r *http.Request) (uint, error) {
	tokenString := ExtractToken(r)
	if tokenString == "" {
		return 0, ErrNoToken
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret(), nil
	})
	if err != nil {
		return 0, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, errors.New("invalid session token")
	}
	uid, ok := claims["user_id"].(float64)
	if !ok {
		return 0, errors.New("malformed session token")
	}
	return uint(uid), nil
}
