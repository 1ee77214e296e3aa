package repository

import (
	"context"
	"log/slog"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/masaki-ito/weldreg/internal/common"
	"github.com/masaki-ito/weldreg/internal/extract"
)

// AuditRepository archives the audit trail of extraction runs so accept
// and reject decisions stay inspectable after the fact.
type AuditRepository struct {
	drv    *entsql.Driver
	logger *slog.Logger
}

func NewAuditRepository(drv *entsql.Driver, logger *slog.Logger) *AuditRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditRepository{drv: drv, logger: logger}
}

// SaveRun stores the rows of one extraction run under a fresh run ID.
func (r *AuditRepository) SaveRun(ctx context.Context, rows []extract.Row) (uuid.UUID, error) {
	runID := uuid.New()
	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := r.drv.DB().BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, common.NewAppError("DB_AUDIT", "begin audit tx", err)
	}
	for _, row := range rows {
		query, args := builder().
			Insert("audit_rows").
			Columns("run_id", "source", "page", "line_no", "candidate",
				"accepted", "confidence", "reason", "line", "created_at").
			Values(runID.String(), row.Source, row.Page, row.LineNo, row.Candidate,
				row.Accepted, row.Confidence, row.Reason, row.Line, now).
			Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			_ = tx.Rollback()
			return uuid.Nil, common.NewAppError("DB_AUDIT", "insert audit row", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return uuid.Nil, common.NewAppError("DB_AUDIT", "commit audit tx", err)
	}
	r.logger.Info("audit run saved", "run_id", runID, "rows", len(rows))
	return runID, nil
}

// ListRun returns the stored rows of one run in audit order.
func (r *AuditRepository) ListRun(ctx context.Context, runID uuid.UUID) ([]extract.Row, error) {
	query, args := builder().
		Select("source", "page", "line_no", "candidate", "accepted", "confidence", "reason", "line").
		From(entsql.Table("audit_rows")).
		Where(entsql.EQ("run_id", runID.String())).
		OrderBy("source", "page", "line_no", "candidate").
		Query()
	rows, err := r.drv.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewAppError("DB_AUDIT", "list audit rows", err)
	}
	defer rows.Close()

	var out []extract.Row
	for rows.Next() {
		var row extract.Row
		if err := rows.Scan(&row.Source, &row.Page, &row.LineNo, &row.Candidate,
			&row.Accepted, &row.Confidence, &row.Reason, &row.Line); err != nil {
			return nil, common.NewAppError("DB_AUDIT", "scan audit row", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
