package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"backend/models"
	"backend/utils"

	"github.com/redis/go-redis/v9"
)

// AuthState is the three-valued answer a session lookup can give: a cache
// hit is only optimistic, so "unknown" is a real state until the database
// has confirmed the account.
type AuthState int

const (
	AuthUnknown AuthState = iota
	AuthNo
	AuthYes
)

// ErrCacheMiss is returned by KV.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// KV is the durable key-value cache the session store mirrors itself into.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

type redisKV struct{ client *redis.Client }

func NewRedisKV(client *redis.Client) KV { return &redisKV{client: client} }

func (r *redisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	return val, err
}

func (r *redisKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisKV) Del(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// SessionStore keeps the serialized profile snapshot for each signed-in
// user. A snapshot lives exactly as long as the session token that goes
// with it; clearing it is the server-side half of sign-out.
type SessionStore struct {
	kv KV
}

func NewSessionStore(kv KV) *SessionStore { return &SessionStore{kv: kv} }

func sessionKey(uid string) string { return "session:" + uid }

func (s *SessionStore) Save(ctx context.Context, snap models.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, sessionKey(snap.UID), string(raw), utils.SessionTokenTTL)
}

// Lookup returns the cached snapshot, if any. A hit means "authenticated,
// possibly stale"; a miss means "unknown" and the caller must go to the
// database before deciding.
func (s *SessionStore) Lookup(ctx context.Context, uid string) (*models.Snapshot, AuthState) {
	raw, err := s.kv.Get(ctx, sessionKey(uid))
	if err != nil {
		return nil, AuthUnknown
	}
	var snap models.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, AuthUnknown
	}
	return &snap, AuthYes
}

func (s *SessionStore) Clear(ctx context.Context, uid string) error {
	return s.kv.Del(ctx, sessionKey(uid))
}
