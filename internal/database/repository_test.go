package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focuslog/internal/models"
)

func strPtr(s string) *string { return &s }

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := Connect(filepath.Join(t.TempDir(), "index", "focuslog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Initialize())

	return NewRepository(db, func(at time.Time) string {
		return "focus_log_" + at.Format("20060102") + ".txt"
	})
}

func TestConnectEmptyPath(t *testing.T) {
	_, err := Connect("")
	assert.Error(t, err)
}

func TestAppendAndGetLatest(t *testing.T) {
	repo := newTestRepository(t)

	latest, err := repo.GetLatest()
	require.NoError(t, err)
	assert.Nil(t, latest)

	first := models.NewFocusChangeRecord(time.Date(2024, 3, 9, 10, 0, 0, 0, time.Local), "desk", strPtr("kitty"), strPtr("vim"))
	second := models.NewFocusChangeRecord(time.Date(2024, 3, 9, 10, 0, 5, 0, time.Local), "desk", nil, nil)

	require.NoError(t, repo.Append(first))
	require.NoError(t, repo.Append(second))

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	latest, err = repo.GetLatest()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Nil(t, latest.ProcessName)
	assert.Nil(t, latest.WindowTitle)
	assert.Equal(t, "desk", latest.Hostname)
	assert.Equal(t, "focus_log_20240309.txt", latest.LogFile)
}

func TestAppendAfterClose(t *testing.T) {
	db, err := Connect(filepath.Join(t.TempDir(), "focuslog.db"))
	require.NoError(t, err)
	require.NoError(t, db.Initialize())
	require.NoError(t, db.Close())

	repo := NewRepository(db, nil)
	err = repo.Append(models.NewFocusChangeRecord(time.Now(), "desk", nil, nil))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert focus change")
}
