package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"member-auth/internal/model"
)

// HS256 needs a key of at least the hash size.
const minSecretLen = 32

// AccessClaims is the payload of a short-lived access token.
type AccessClaims struct {
	ID   int64
	Role model.Role
	Name string
}

// RefreshClaims is the payload of a long-lived refresh token. It carries
// the member id and nothing else; the two claim shapes are disjoint so
// tokens of one kind never parse as the other.
type RefreshClaims struct {
	ID int64
}

// Codec issues and parses signed, expiring tokens. The signing secret is
// loaded once at startup and never rotated, so a Codec is safe for
// unsynchronized concurrent use.
type Codec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewCodec(secret []byte, accessTTL time.Duration, refreshTTL time.Duration) (*Codec, error) {
	if len(secret) < minSecretLen {
		return nil, fmt.Errorf("signing secret must be at least %d bytes, got %d", minSecretLen, len(secret))
	}

	return &Codec{secret: secret, accessTTL: accessTTL, refreshTTL: refreshTTL}, nil
}

func (c *Codec) IssueAccess(claims AccessClaims) (string, error) {
	return c.sign(jwt.MapClaims{
		"id":   claims.ID,
		"role": string(claims.Role),
		"name": claims.Name,
	}, c.accessTTL)
}

func (c *Codec) IssueRefresh(claims RefreshClaims) (string, error) {
	return c.sign(jwt.MapClaims{
		"id": claims.ID,
	}, c.refreshTTL)
}

// ParseAccess verifies signature and expiry and decodes the access claim
// shape. A refresh-shaped token fails here because it carries no role or
// name. Every failure mode collapses into model.ErrUnauthorized.
func (c *Codec) ParseAccess(tokenString string) (AccessClaims, error) {
	payload, err := c.parse(tokenString)
	if err != nil {
		return AccessClaims{}, err
	}

	id, ok := claimID(payload)
	if !ok {
		return AccessClaims{}, model.ErrUnauthorized
	}

	rawRole, ok := payload["role"].(string)
	if !ok {
		return AccessClaims{}, model.ErrUnauthorized
	}
	role, err := model.ParseRole(rawRole)
	if err != nil {
		return AccessClaims{}, model.ErrUnauthorized
	}

	name, ok := payload["name"].(string)
	if !ok {
		return AccessClaims{}, model.ErrUnauthorized
	}

	return AccessClaims{ID: id, Role: role, Name: name}, nil
}

// ParseRefresh verifies signature and expiry and decodes the refresh
// claim shape. An access-shaped token fails here: the refresh shape must
// not carry role or name claims.
func (c *Codec) ParseRefresh(tokenString string) (RefreshClaims, error) {
	payload, err := c.parse(tokenString)
	if err != nil {
		return RefreshClaims{}, err
	}

	id, ok := claimID(payload)
	if !ok {
		return RefreshClaims{}, model.ErrUnauthorized
	}

	if _, present := payload["role"]; present {
		return RefreshClaims{}, model.ErrUnauthorized
	}
	if _, present := payload["name"]; present {
		return RefreshClaims{}, model.ErrUnauthorized
	}

	return RefreshClaims{ID: id}, nil
}

func (c *Codec) sign(claims jwt.MapClaims, validity time.Duration) (string, error) {
	now := time.Now()
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(validity).Unix()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		// Signing failures surface as the same opaque error as parse failures.
		return "", model.ErrUnauthorized
	}
	return signed, nil
}

func (c *Codec) parse(tokenString string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, model.ErrUnauthorized
		}
		return c.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return nil, model.ErrUnauthorized
	}

	payload, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, model.ErrUnauthorized
	}
	return payload, nil
}

// claimID reads the numeric member id. JSON numbers decode as float64;
// the id must be integral.
func claimID(payload jwt.MapClaims) (int64, bool) {
	raw, ok := payload["id"].(float64)
	if !ok || raw != float64(int64(raw)) {
		return 0, false
	}
	return int64(raw), true
}
