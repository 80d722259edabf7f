package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procurelens/procurelens/internal/common"
	"github.com/procurelens/procurelens/internal/storage"
)

func writeTestCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadTable(t *testing.T) {
	path := writeTestCSV(t, "orders.csv",
		"PO Number,Vendor Name,Total Amount\nPO-1,Acme,1500.50\nPO-2,Globex,200\n")

	table, err := loadTable(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"PO Number", "Vendor Name", "Total Amount"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "PO-1", table.Rows[0]["PO Number"])
	assert.Equal(t, 1500.50, table.Rows[0]["Total Amount"])
}

func TestLoadTableUnsupportedFormat(t *testing.T) {
	path := writeTestCSV(t, "orders.pdf", "not a spreadsheet")

	_, err := loadTable(path)
	assert.ErrorIs(t, err, common.ErrUnsupportedFormat)
}

func TestLoadTableMissingFile(t *testing.T) {
	_, err := loadTable(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestStoreUpload(t *testing.T) {
	ctx := context.Background()

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	require.NoError(t, store.Migrate(ctx))

	content := "PO Number,Vendor Name\nPO-1,Acme\n"
	path := writeTestCSV(t, "orders.csv", content)

	file, err := storeUpload(ctx, store, "session-1", path)
	require.NoError(t, err)

	assert.NotEmpty(t, file.ID)
	assert.Equal(t, "orders.csv", file.Filename)
	assert.Equal(t, ".csv", file.FileType)
	assert.Equal(t, int64(len(content)), file.FileSize)

	stored, err := store.GetUploadedFiles(ctx, "session-1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, content, string(stored[0].Content))
}
