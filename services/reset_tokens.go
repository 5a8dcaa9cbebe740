package services

import (
	"context"
	"time"
)

const resetTokenTTL = 15 * time.Minute

// ResetTokenStore keeps short-lived password reset codes in the cache,
// keyed by the code itself so a single lookup resolves the user.
type ResetTokenStore struct {
	kv KV
}

func NewResetTokenStore(kv KV) *ResetTokenStore { return &ResetTokenStore{kv: kv} }

func resetKey(code string) string { return "reset_token:" + code }

func (s *ResetTokenStore) Save(ctx context.Context, code, uid string) error {
	return s.kv.Set(ctx, resetKey(code), uid, resetTokenTTL)
}

func (s *ResetTokenStore) Get(ctx context.Context, code string) (string, error) {
	return s.kv.Get(ctx, resetKey(code))
}

func (s *ResetTokenStore) Delete(ctx context.Context, code string) error {
	return s.kv.Del(ctx, resetKey(code))
}
