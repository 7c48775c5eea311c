package auth

import (
	"crypto/subtle"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// TokenHasher defines hashing strategy for API tokens.
type TokenHasher interface {
	Hash(token string) (string, error)
	Compare(hash string, token string) error
}

// BcryptHasher uses bcrypt to hash tokens.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates BcryptHasher with provided cost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns bcrypt hash for provided token.
func (h *BcryptHasher) Hash(token string) (string, error) {
	encoded, err := bcrypt.GenerateFromPassword([]byte(token), h.cost)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// Compare checks token against stored hash.
func (h *BcryptHasher) Compare(hash string, token string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(token))
}

// Verifier checks bearer tokens against a configured hash. The last accepted
// token is remembered so repeated requests skip the bcrypt comparison.
type Verifier struct {
	hash   string
	hasher TokenHasher

	mu       sync.Mutex
	accepted string
}

// NewVerifier builds a verifier. An empty hash disables verification.
func NewVerifier(hash string, hasher TokenHasher) *Verifier {
	return &Verifier{hash: strings.TrimSpace(hash), hasher: hasher}
}

// Enabled reports whether a token hash is configured.
func (v *Verifier) Enabled() bool {
	return v.hash != ""
}

// Verify reports whether token matches the configured hash.
func (v *Verifier) Verify(token string) bool {
	if !v.Enabled() {
		return true
	}
	if token == "" {
		return false
	}

	v.mu.Lock()
	cached := v.accepted
	v.mu.Unlock()
	if cached != "" && subtle.ConstantTimeCompare([]byte(cached), []byte(token)) == 1 {
		return true
	}

	if err := v.hasher.Compare(v.hash, token); err != nil {
		return false
	}
	v.mu.Lock()
	v.accepted = token
	v.mu.Unlock()
	return true
}
