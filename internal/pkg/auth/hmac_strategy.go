package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/comedor/comedor/internal/domain/model"
)

var ErrInvalidToken = errors.New("invalid auth token")

// HMACStrategy implements auth token creation/verification using HMAC signatures.
type HMACStrategy struct {
	secret []byte
	ttl    time.Duration
}

// NewHMACStrategy builds HMACStrategy with provided secret and options.
func NewHMACStrategy(secret string, opts Options) *HMACStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &HMACStrategy{secret: []byte(secret), ttl: ttl}
}

// IssueToken generates a signed token for the principal.
func (s *HMACStrategy) IssueToken(p Principal) (string, error) {
	expires := time.Now().Add(s.ttl).Unix()
	payload := fmt.Sprintf("%s:%d:%s:%d", p.Kind, p.ID, p.Role, expires)
	sig := s.sign(payload)
	token := fmt.Sprintf("%s:%s", payload, sig)
	return base64.StdEncoding.EncodeToString([]byte(token)), nil
}

// ParseToken validates the token and returns the encoded principal.
func (s *HMACStrategy) ParseToken(token string) (Principal, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return Principal{}, ErrInvalidToken
	}

	parts := strings.Split(string(raw), ":")
	if len(parts) != 5 {
		return Principal{}, ErrInvalidToken
	}

	payload := strings.Join(parts[:4], ":")
	expectedSig := s.sign(payload)
	if !hmac.Equal([]byte(expectedSig), []byte(parts[4])) {
		return Principal{}, ErrInvalidToken
	}

	kind := PrincipalKind(parts[0])
	if kind != KindCustomer && kind != KindStaff {
		return Principal{}, ErrInvalidToken
	}

	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Principal{}, ErrInvalidToken
	}

	role := model.Role(parts[2])
	if kind == KindStaff && !role.Valid() {
		return Principal{}, ErrInvalidToken
	}
	if kind == KindCustomer && role != "" {
		return Principal{}, ErrInvalidToken
	}

	expires, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return Principal{}, ErrInvalidToken
	}

	if time.Unix(expires, 0).Before(time.Now()) {
		return Principal{}, ErrInvalidToken
	}

	return Principal{Kind: kind, ID: id, Role: role}, nil
}

func (s *HMACStrategy) Name() string {
	return "hmac"
}

func (s *HMACStrategy) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
