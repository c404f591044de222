package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads/")
	require.NoError(t, err)
	return s
}

func TestLocalStorage_UploadOpenDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	key, err := s.Upload(ctx, strings.NewReader("workbook"), "rosters/2025-04/abc.xlsx", "application/octet-stream")
	require.NoError(t, err)
	assert.Equal(t, "rosters/2025-04/abc.xlsx", key)

	exists, err := s.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	rc, err := s.Open(ctx, key)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "workbook", string(body))

	require.NoError(t, s.Delete(ctx, key))
	require.NoError(t, s.Delete(ctx, key))

	exists, err = s.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = s.Open(ctx, key)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLocalStorage_TraversalIsConfined(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	key, err := s.Upload(ctx, strings.NewReader("x"), "../../etc/roster.xlsx", "")
	require.NoError(t, err)
	assert.Equal(t, "etc/roster.xlsx", key)

	_, err = s.Upload(ctx, strings.NewReader("x"), "..", "")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestLocalStorage_GetURL(t *testing.T) {
	s := newTestStorage(t)

	u, err := s.GetURL(context.Background(), "rosters/2025-04/a b.xlsx", 0)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/rosters/2025-04/a%20b.xlsx", u)
}
