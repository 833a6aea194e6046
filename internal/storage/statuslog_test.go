package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mathanmathan27/aarvel-store/internal/storage"
	"github.com/stretchr/testify/assert"
)

func TestStatusLog_MissingFile(t *testing.T) {
	log := storage.NewFileStatusLog(filepath.Join(t.TempDir(), "upi_status.log"))

	status, err := log.LastStatus(context.Background(), "AB12CD34")
	assert.NoError(t, err)
	assert.Empty(t, status, "no file means no entries")
}

func TestStatusLog_AppendAndLastMatchWins(t *testing.T) {
	log := storage.NewFileStatusLog(filepath.Join(t.TempDir(), "upi_status.log"))
	ctx := context.Background()

	assert.NoError(t, log.Append(ctx, "AB12CD34", "PENDING"))
	assert.NoError(t, log.Append(ctx, "FF00FF00", "FAILURE"))
	assert.NoError(t, log.Append(ctx, "AB12CD34", "SUCCESS"))

	status, err := log.LastStatus(ctx, "AB12CD34")
	assert.NoError(t, err)
	assert.Equal(t, "SUCCESS", status)

	status, err = log.LastStatus(ctx, "FF00FF00")
	assert.NoError(t, err)
	assert.Equal(t, "FAILURE", status)

	status, err = log.LastStatus(ctx, "NOSUCHID")
	assert.NoError(t, err)
	assert.Empty(t, status)
}

func TestStatusLog_MalformedLinesSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upi_status.log")
	content := "garbage line without a comma\nAB12CD34,PENDING\n\nAB12CD34,SUCCESS\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	log := storage.NewFileStatusLog(path)

	status, err := log.LastStatus(context.Background(), "AB12CD34")
	assert.NoError(t, err)
	assert.Equal(t, "SUCCESS", status, "malformed lines must not break the scan")
}

func TestStatusLog_FileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upi_status.log")
	log := storage.NewFileStatusLog(path)

	assert.NoError(t, log.Append(context.Background(), "AB12CD34", "SUCCESS"))

	raw, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "AB12CD34,SUCCESS\n", string(raw), "entries are comma-joined lines")
}
