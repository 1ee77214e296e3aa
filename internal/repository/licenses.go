package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/masaki-ito/weldreg/internal/common"
	"github.com/masaki-ito/weldreg/internal/entity"
)

const dateLayout = "2006-01-02"

// LicenseRepository persists license records keyed by (source, license_no).
type LicenseRepository struct {
	drv    *entsql.Driver
	logger *slog.Logger
}

func NewLicenseRepository(drv *entsql.Driver, logger *slog.Logger) *LicenseRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &LicenseRepository{drv: drv, logger: logger}
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// Upsert inserts a record or refreshes an existing (source, license_no)
// row with the latest extraction result.
func (r *LicenseRepository) Upsert(ctx context.Context, rec entity.LicenseRecord) error {
	now := time.Now().UTC().Format(time.RFC3339)

	query, args := builder().
		Update("licenses").
		Set("name", rec.Name).
		Set("qualification", rec.Qualification).
		Set("issue_date", fmtDate(rec.IssueDate)).
		Set("expiry_date", fmtDate(rec.ExpiryDate)).
		Set("confidence", rec.Confidence).
		Set("origins", strings.Join(rec.Origins, ";")).
		Set("updated_at", now).
		Where(entsql.And(
			entsql.EQ("source", rec.Source),
			entsql.EQ("license_no", rec.LicenseNo),
		)).
		Query()
	res, err := r.drv.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return common.NewAppError("DB_UPSERT", "update license", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	query, args = builder().
		Insert("licenses").
		Columns("id", "source", "name", "license_no", "qualification",
			"issue_date", "expiry_date", "confidence", "origins", "updated_at").
		Values(uuid.NewString(), rec.Source, rec.Name, rec.LicenseNo, rec.Qualification,
			fmtDate(rec.IssueDate), fmtDate(rec.ExpiryDate), rec.Confidence,
			strings.Join(rec.Origins, ";"), now).
		Query()
	if _, err := r.drv.DB().ExecContext(ctx, query, args...); err != nil {
		return common.NewAppError("DB_UPSERT", "insert license", err)
	}
	return nil
}

// List returns all records ordered by (source, license_no).
func (r *LicenseRepository) List(ctx context.Context) ([]entity.LicenseRecord, error) {
	query, args := builder().
		Select("source", "name", "license_no", "qualification",
			"issue_date", "expiry_date", "confidence", "origins").
		From(entsql.Table("licenses")).
		OrderBy("source", "license_no").
		Query()
	rows, err := r.drv.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewAppError("DB_LIST", "list licenses", err)
	}
	defer rows.Close()

	var out []entity.LicenseRecord
	for rows.Next() {
		var rec entity.LicenseRecord
		var issue, expiry, origins sql.NullString
		if err := rows.Scan(&rec.Source, &rec.Name, &rec.LicenseNo, &rec.Qualification,
			&issue, &expiry, &rec.Confidence, &origins); err != nil {
			return nil, common.NewAppError("DB_LIST", "scan license", err)
		}
		rec.IssueDate = parseDate(issue)
		rec.ExpiryDate = parseDate(expiry)
		if origins.Valid && origins.String != "" {
			rec.Origins = strings.Split(origins.String, ";")
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func fmtDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(dateLayout)
}

func parseDate(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s.String)
	if err != nil {
		return nil
	}
	return &t
}
