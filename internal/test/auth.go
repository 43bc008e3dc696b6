package test

import (
	"errors"

	pkgAuth "github.com/comedor/comedor/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues and parses tokens via function overrides.
type StrategyStub struct {
	IssueFn   func(pkgAuth.Principal) (string, error)
	ParseFn   func(string) (pkgAuth.Principal, error)
	Principal pkgAuth.Principal
	NameVal   string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(p pkgAuth.Principal) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(p)
	}
	return "token", nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (pkgAuth.Principal, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return s.Principal, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// TokenParserStub implements middleware token parsing contract.
type TokenParserStub struct {
	Principal pkgAuth.Principal
	Err       error
	ParseFn   func(string) (pkgAuth.Principal, error)
}

// ParseToken either delegates to override or returns predefined result.
func (s TokenParserStub) ParseToken(token string) (pkgAuth.Principal, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.Err != nil {
		return pkgAuth.Principal{}, s.Err
	}
	return s.Principal, nil
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
