package authclient_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authclient "github.com/sunnypayments/go-auth-client"
)

func newSQLiteStorage(t *testing.T) *authclient.BunStorage {
	t.Helper()
	storage, err := authclient.OpenSQLiteStorage(context.Background(), ":memory:")
	require.NoError(t, err)
	return storage
}

func TestBunStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	storage := newSQLiteStorage(t)

	_, ok := storage.Get(ctx, "missing")
	assert.False(t, ok)

	require.NoError(t, storage.Set(ctx, "token", "abc"))
	v, ok := storage.Get(ctx, "token")
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	require.NoError(t, storage.Set(ctx, "token", "def"))
	v, ok = storage.Get(ctx, "token")
	assert.True(t, ok)
	assert.Equal(t, "def", v, "second write replaces the first")

	require.NoError(t, storage.Delete(ctx, "token"))
	_, ok = storage.Get(ctx, "token")
	assert.False(t, ok)

	assert.NoError(t, storage.Delete(ctx, "never-existed"))
}

func TestBunStorageBacksCredentialStore(t *testing.T) {
	ctx := context.Background()
	store := authclient.NewCredentialStore(newSQLiteStorage(t))

	store.SetTokens(ctx, "access", "refresh")
	store.StoreSession(ctx,
		&authclient.User{Email: "pepe@example.com", AccountType: authclient.AccountTypeDeveloper},
		&authclient.Session{AccessToken: "access", ExpiresAt: time.Now().Add(time.Hour)},
	)

	assert.Equal(t, "access", store.AccessToken(ctx))
	assert.Equal(t, "refresh", store.RefreshToken(ctx))

	user := store.StoredUser(ctx)
	require.NotNil(t, user)
	assert.Equal(t, authclient.AccountTypeDeveloper, user.AccountType)

	store.ClearTokens(ctx)
	assert.Empty(t, store.AccessToken(ctx))
	assert.Nil(t, store.StoredUser(ctx))
}
