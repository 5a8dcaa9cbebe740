package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	kv := newFakeKV()
	store := NewSessionStore(kv)
	ctx := context.Background()

	snap := models.Snapshot{
		UID:       "abc-123",
		Email:     "a@b.com",
		Username:  "alice1234",
		Provider:  models.ProviderEmail,
		CreatedAt: time.Now(),
	}
	require.NoError(t, store.Save(ctx, snap))

	got, state := store.Lookup(ctx, "abc-123")
	assert.Equal(t, AuthYes, state)
	require.NotNil(t, got)
	assert.Equal(t, snap.UID, got.UID)
	assert.Equal(t, snap.Username, got.Username)
}

func TestLookupMissIsUnknown(t *testing.T) {
	store := NewSessionStore(newFakeKV())

	got, state := store.Lookup(context.Background(), "nobody")
	assert.Nil(t, got)
	assert.Equal(t, AuthUnknown, state)
}

func TestLookupCorruptSnapshotIsUnknown(t *testing.T) {
	kv := newFakeKV()
	kv.data["session:abc"] = "{not json"
	store := NewSessionStore(kv)

	got, state := store.Lookup(context.Background(), "abc")
	assert.Nil(t, got)
	assert.Equal(t, AuthUnknown, state)
}

func TestClearRevokesSession(t *testing.T) {
	kv := newFakeKV()
	store := NewSessionStore(kv)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, models.Snapshot{UID: "abc"}))
	require.NoError(t, store.Clear(ctx, "abc"))

	_, state := store.Lookup(ctx, "abc")
	assert.Equal(t, AuthUnknown, state)
}

func TestCachedCopyDeserializesToSameUID(t *testing.T) {
	kv := newFakeKV()
	store := NewSessionStore(kv)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, models.Snapshot{UID: "uid-9"}))

	raw := kv.data["session:uid-9"]
	var out models.Snapshot
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	assert.Equal(t, "uid-9", out.UID)
}
