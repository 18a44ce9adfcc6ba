// Package qrtoken mints the opaque tokens printed on group booking QR codes and
// maps them back to booking ids.
package qrtoken

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var ErrUnknownToken = errors.New("unknown qr token")

type Issuer interface {
	Mint(ctx context.Context, bookingID string) (string, error)
	Resolve(ctx context.Context, token string) (string, error)
	// Revoke forgets token. Revoking an unknown token is not an error.
	Revoke(ctx context.Context, token string) error
}

var newToken = func() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

type MemoryIssuer struct {
	mu     sync.RWMutex
	tokens map[string]string
}

func NewMemoryIssuer() *MemoryIssuer {
	return &MemoryIssuer{tokens: make(map[string]string)}
}

func (i *MemoryIssuer) Mint(_ context.Context, bookingID string) (string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	token := newToken()
	for _, taken := i.tokens[token]; taken; _, taken = i.tokens[token] {
		token = newToken()
	}
	i.tokens[token] = bookingID
	return token, nil
}

func (i *MemoryIssuer) Resolve(_ context.Context, token string) (string, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	id, ok := i.tokens[token]
	if !ok {
		return "", ErrUnknownToken
	}
	return id, nil
}

func (i *MemoryIssuer) Revoke(_ context.Context, token string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	delete(i.tokens, token)
	return nil
}
