package middleware

import (
	"context"
	"errors"
	"sync"

	"github.com/tron2005/markvera/pkg"
)

// HashTokenChecker validates API tokens against a bcrypt hash.
// Verified tokens are remembered so bcrypt runs once per valid token.
type HashTokenChecker struct {
	tokenHash string
	verified  sync.Map // token -> struct{}
}

func NewHashTokenChecker(tokenHash string) (*HashTokenChecker, error) {
	if tokenHash == "" {
		return nil, errors.New("api token hash not set")
	}
	return &HashTokenChecker{
		tokenHash: tokenHash,
	}, nil
}

func (c *HashTokenChecker) IsValid(_ context.Context, token string) (bool, error) {
	if _, ok := c.verified.Load(token); ok {
		return true, nil
	}
	if !pkg.CheckPasswordHash(token, c.tokenHash) {
		return false, nil
	}
	c.verified.Store(token, struct{}{})
	return true, nil
}
