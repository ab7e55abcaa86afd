package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Claims carries the authenticated subject extracted from a bearer token.
type Claims struct {
	UserID string
	Role   string
}

// IssueToken signs a time-limited bearer token carrying the subject id and
// role.
func IssueToken(userID, role string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   userID,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	})

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ParseToken verifies a bearer token and returns its claims. Any parse,
// signature or expiry failure yields an error; callers translate it to an
// unauthorized response.
func ParseToken(tokenStr string, secret []byte) (*Claims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	userID, ok := claims["id"].(string)
	if !ok || userID == "" {
		return nil, fmt.Errorf("token missing subject id")
	}

	role, _ := claims["role"].(string)

	return &Claims{UserID: userID, Role: role}, nil
}

// Authorized is the role gate applied uniformly in front of protected
// routes: it reports whether the caller's role appears in the required set.
// An empty required set admits any authenticated caller.
func Authorized(callerRole string, requiredRoles ...string) bool {
	if len(requiredRoles) == 0 {
		return true
	}
	for _, role := range requiredRoles {
		if callerRole == role {
			return true
		}
	}
	return false
}
