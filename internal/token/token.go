package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	models "github.com/seatwise/seatwise/internal"
)

// Manager issues and verifies stateless HS256 session tokens. Expiry lives
// inside the token; nothing is tracked server-side.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

func (m *Manager) Issue(claims models.Claims) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":   claims.UserID,
		"role":     string(claims.Role),
		"approval": string(claims.Approval),
		"iat":      now.Unix(),
		"exp":      now.Add(m.ttl).Unix(),
	})
	return t.SignedString(m.secret)
}

func (m *Manager) Verify(tokenString string) (models.Claims, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return models.Claims{}, models.ErrUnauthenticated
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return models.Claims{}, models.ErrUnauthenticated
	}

	userID, _ := mapClaims["userId"].(string)
	role, _ := mapClaims["role"].(string)
	approval, _ := mapClaims["approval"].(string)
	if userID == "" || role == "" {
		return models.Claims{}, models.ErrUnauthenticated
	}

	return models.Claims{
		UserID:   userID,
		Role:     models.Role(role),
		Approval: models.ApprovalStatus(approval),
	}, nil
}
