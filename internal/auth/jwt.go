package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	dom "Tracker/internal/domain"
)

// Token kinds. Session tokens authenticate API requests. Reset tokens authorize
// a single password change and are additionally checked against the token stored
// on the user row, so they cannot be replayed after use.
const (
	KindSession = "session"
	KindReset   = "reset"
)

// ErrInvalidToken covers every verification failure: malformed, expired and
// bad signature all collapse into this one outcome.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the JWT payload for both token kinds.
type Claims struct {
	UserID   int64  `json:"id"`
	Username string `json:"username,omitempty"`
	Kind     string `json:"kind"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HMAC-signed bearer tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

// NewTokens returns a token service signing with secret. Both token kinds
// expire after ttl.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl}
}

// IssueSession returns a session token carrying the user's id and username.
func (t *Tokens) IssueSession(u dom.User) (string, error) {
	return t.sign(Claims{
		UserID:   u.ID,
		Username: u.Username,
		Kind:     KindSession,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(t.ttl)),
		},
	})
}

// IssueReset returns a reset token carrying only the user's id, along with its expiry.
func (t *Tokens) IssueReset(userID int64) (string, time.Time, error) {
	expiry := time.Now().Add(t.ttl)
	tok, err := t.sign(Claims{
		UserID: userID,
		Kind:   KindReset,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	})
	return tok, expiry, err
}

func (t *Tokens) sign(c Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.secret)
}

// Verify checks the signature and expiry and returns the claims.
func (t *Tokens) Verify(tokenString string) (Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(tok *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}
	return *claims, nil
}
