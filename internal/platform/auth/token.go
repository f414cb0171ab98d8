package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token kinds. A session token authenticates dashboard requests; an invite
// token is mailed to a new hospital user and is only good for accepting the
// invitation.
const (
	KindSession = "session"
	KindInvite  = "invite"
)

type Claims struct {
	jwt.RegisteredClaims
	UserID  uuid.UUID `json:"user_id"`
	IsAdmin bool      `json:"is_admin"`
	Kind    string    `json:"kind"`
}

// TokenIssuer signs and verifies HS256 tokens for sessions and invitations.
type TokenIssuer struct {
	secret     []byte
	sessionTTL time.Duration
	inviteTTL  time.Duration
}

func NewTokenIssuer(secret string, sessionTTL, inviteTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
		inviteTTL:  inviteTTL,
	}
}

func (t *TokenIssuer) IssueSession(userID uuid.UUID, isAdmin bool) (string, error) {
	return t.issue(userID, isAdmin, KindSession, t.sessionTTL)
}

func (t *TokenIssuer) IssueInvite(userID uuid.UUID) (string, error) {
	return t.issue(userID, false, KindInvite, t.inviteTTL)
}

func (t *TokenIssuer) issue(userID uuid.UUID, isAdmin bool, kind string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:  userID,
		IsAdmin: isAdmin,
		Kind:    kind,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the signature and expiry and checks the token kind.
func (t *TokenIssuer) Parse(tokenStr, wantKind string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Kind != wantKind {
		return nil, fmt.Errorf("expected %s token, got %s", wantKind, claims.Kind)
	}
	return claims, nil
}
