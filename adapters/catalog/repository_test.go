package catalog

import (
	"context"
	"testing"
	"time"

	"datapreview/domain/dataset"
	"datapreview/internal/config"
	"datapreview/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) Repository {
	t.Helper()
	db, err := Open(context.Background(), config.CatalogConfig{DatabaseURL: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db)
}

func TestSaveAndGet(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	uploaded := time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC)

	err := repo.Save(ctx, &dataset.File{
		ID:               "12",
		OriginalFilename: "ventes.csv",
		FileType:         dataset.FileTypeCSV,
		UploadedAt:       uploaded,
		RowCount:         1200,
		ColumnCount:      8,
	})
	require.NoError(t, err)

	f, err := repo.Get(ctx, "12")
	require.NoError(t, err)
	assert.Equal(t, "ventes.csv", f.OriginalFilename)
	assert.Equal(t, dataset.FileTypeCSV, f.FileType)
	assert.True(t, uploaded.Equal(f.UploadedAt))
	assert.Equal(t, 1200, f.RowCount)
	assert.False(t, f.Processed)
}

func TestSaveUpdatesExisting(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	f := &dataset.File{ID: "1", OriginalFilename: "a.csv", FileType: dataset.FileTypeCSV, UploadedAt: time.Now()}
	require.NoError(t, repo.Save(ctx, f))

	f.Processed = true
	f.RowCount = 10
	require.NoError(t, repo.Save(ctx, f))

	got, err := repo.Get(ctx, "1")
	require.NoError(t, err)
	assert.True(t, got.Processed)
	assert.Equal(t, 10, got.RowCount)

	files, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestListNewestFirst(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "new", "mid"} {
		offset := map[string]time.Duration{"old": 0, "mid": time.Hour, "new": 2 * time.Hour}[id]
		require.NoError(t, repo.Save(ctx, &dataset.File{
			ID:               id,
			OriginalFilename: id + ".json",
			FileType:         dataset.FileTypeJSON,
			UploadedAt:       base.Add(offset),
			RowCount:         i,
		}))
	}

	files, err := repo.List(ctx)
	require.NoError(t, err)
	var ids []string
	for _, f := range files {
		ids = append(ids, f.ID)
	}
	assert.Equal(t, []string{"new", "mid", "old"}, ids)
}

func TestGetMissing(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestDelete(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, &dataset.File{ID: "x", OriginalFilename: "x.xml", FileType: dataset.FileTypeXML, UploadedAt: time.Now()}))

	require.NoError(t, repo.Delete(ctx, "x"))
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(repo.Delete(ctx, "x")))
}

func TestSaveValidates(t *testing.T) {
	repo := newTestRepository(t)

	err := repo.Save(context.Background(), &dataset.File{OriginalFilename: "a.csv"})
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	err = repo.Save(context.Background(), &dataset.File{ID: "1"})
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}
