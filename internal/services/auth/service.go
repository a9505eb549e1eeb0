package auth

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/guessfilm/internal/dependencies/random"
)

// Errors
var (
	ErrInvalidAPIKey = errors.New("invalid api key")
	ErrInvalidHash   = errors.New("invalid api key hash")
)

const (
	// KeyPrefix marks generated keys so they are recognisable in config
	KeyPrefix = "gf_"
	// KeyAlphabet is the character set for generated keys
	KeyAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// KeyLength is the number of random characters after the prefix
	KeyLength = 32
)

// Service verifies API keys against a single bcrypt hash. With no hash
// configured every request is allowed.
type Service struct {
	hash   []byte
	random random.Random

	// verified remembers keys that already passed bcrypt so only the first
	// request with a key pays for the comparison
	mu       sync.RWMutex
	verified map[string]struct{}
}

// New creates a Service. An empty hash disables verification.
func New(hash string, rnd random.Random) (*Service, error) {
	if hash != "" {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidHash, err)
		}
	}
	return &Service{
		hash:     []byte(hash),
		random:   rnd,
		verified: make(map[string]struct{}),
	}, nil
}

// Enabled reports whether requests must present a key
func (s *Service) Enabled() bool {
	return len(s.hash) > 0
}

// Verify checks a presented key
func (s *Service) Verify(key string) error {
	if !s.Enabled() {
		return nil
	}
	if key == "" {
		return ErrInvalidAPIKey
	}

	s.mu.RLock()
	_, ok := s.verified[key]
	s.mu.RUnlock()
	if ok {
		return nil
	}

	if err := bcrypt.CompareHashAndPassword(s.hash, []byte(key)); err != nil {
		return ErrInvalidAPIKey
	}

	s.mu.Lock()
	s.verified[key] = struct{}{}
	s.mu.Unlock()
	return nil
}

// GenerateKey creates a new key and the bcrypt hash to configure the server
// with
func (s *Service) GenerateKey() (key, hash string, err error) {
	key = KeyPrefix + s.random.String(KeyLength, KeyAlphabet)
	h, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}
	return key, string(h), nil
}
