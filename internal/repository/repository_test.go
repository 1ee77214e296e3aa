package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masaki-ito/weldreg/internal/entity"
	"github.com/masaki-ito/weldreg/internal/extract"
)

func openTestDB(t *testing.T) *entsql.Driver {
	t.Helper()
	drv, err := Open(context.Background(), Config{Path: filepath.Join(t.TempDir(), "test.db")}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = drv.Close() })
	return drv
}

func TestLicenseUpsertAndList(t *testing.T) {
	drv := openTestDB(t)
	repo := NewLicenseRepository(drv, nil)
	ctx := context.Background()

	expiry := time.Date(2028, 9, 1, 0, 0, 0, 0, time.UTC)
	rec := entity.LicenseRecord{
		Source:     "certs/matsuoka.pdf",
		Name:       "松岡 正",
		LicenseNo:  "SE2500123",
		Confidence: 0.9,
		ExpiryDate: &expiry,
		Origins:    []string{"azure-ocr", "tesseract"},
	}
	require.NoError(t, repo.Upsert(ctx, rec))

	// second upsert with a better confidence replaces, not duplicates
	rec.Confidence = 1.0
	require.NoError(t, repo.Upsert(ctx, rec))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "SE2500123", got[0].LicenseNo)
	assert.Equal(t, 1.0, got[0].Confidence)
	assert.Equal(t, []string{"azure-ocr", "tesseract"}, got[0].Origins)
	require.NotNil(t, got[0].ExpiryDate)
	assert.Equal(t, expiry, *got[0].ExpiryDate)
	assert.Nil(t, got[0].IssueDate)
}

func TestAuditSaveAndListRun(t *testing.T) {
	drv := openTestDB(t)
	repo := NewAuditRepository(drv, nil)
	ctx := context.Background()

	rows := []extract.Row{
		{Source: "a.pdf", Page: 1, LineNo: 1, Candidate: "SE2500123", Accepted: true, Confidence: 1, Reason: "label CERT_NO at distance 0, shape ALPHANUM_SUFFIXED", Line: "証明書番号 SE2500123"},
		{Source: "a.pdf", Page: 1, LineNo: 2, Candidate: "2025", Accepted: false, Confidence: 0, Reason: "date-like token \"2025\"", Line: "有効期限 2025-06-01"},
	}
	runID, err := repo.SaveRun(ctx, rows)
	require.NoError(t, err)

	got, err := repo.ListRun(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}
