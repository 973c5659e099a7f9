package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt"
)

// Load the secret from an environment variable. Fallback to a default (not recommended in production).
var secretKey = []byte(getSecret())

func getSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "JOEYJOB"
	}
	return secret
}

// GenerateToken creates a signed JWT for an organization actor. Subject is
// the user id; the org claim scopes every request to one workspace.
func GenerateToken(subject, organizationID string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": subject,
		"org": organizationID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey, nil
	})
}

// ExtractOrgFromToken returns the subject and organization claims from a
// valid token string.
func ExtractOrgFromToken(tokenString string) (subject string, organizationID string, err error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return "", "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", "", errors.New("token does not contain a valid 'sub' claim")
	}
	org, ok := claims["org"].(string)
	if !ok || org == "" {
		return "", "", errors.New("token does not contain a valid 'org' claim")
	}

	return sub, org, nil
}
