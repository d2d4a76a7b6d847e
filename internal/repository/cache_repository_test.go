package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/unischedule/pkg/errors"
)

func TestCacheRepositoryGetMissWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, nil)

	var dest string
	err := repo.Get(context.Background(), "any-key", &dest)

	require.True(t, errors.Is(err, appErrors.ErrCacheMiss))
}

func TestCacheRepositorySetNoopWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, nil)

	err := repo.Set(context.Background(), "any-key", map[string]string{"a": "b"}, 0)

	require.NoError(t, err)
}

func TestCacheRepositoryCloseNoopWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, nil)

	require.NoError(t, repo.Close())
}
