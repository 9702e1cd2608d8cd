package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aquilahq/aquila/internal/db"
	"github.com/aquilahq/aquila/internal/domain"
)

const planColumns = `id, task_name, course_name, day, status, created_at`

const entryColumns = `id, plan_id, title, estimated_min, source, slot_start, slot_end`

// SQLitePlanRepo implements PlanRepo over a DBTX, so the same code serves
// both direct reads and tx-scoped writes inside a unit of work.
type SQLitePlanRepo struct {
	db db.DBTX
}

// NewSQLitePlanRepo creates a new SQLitePlanRepo.
func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

func (r *SQLitePlanRepo) Create(ctx context.Context, p *domain.Plan) error {
	query := `INSERT INTO plans (` + planColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.TaskName,
		p.CourseName,
		p.Day.Format(dateLayout),
		string(p.Status),
		p.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}

	entryQuery := `INSERT INTO plan_entries (` + entryColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	for i := range p.Entries {
		e := &p.Entries[i]
		_, err := r.db.ExecContext(ctx, entryQuery,
			e.ID,
			p.ID,
			e.Title,
			e.EstimatedMin,
			string(e.Source),
			e.SlotStart.Format(time.RFC3339),
			e.SlotEnd.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("inserting plan entry %q: %w", e.Title, err)
		}
	}
	return nil
}

func (r *SQLitePlanRepo) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	p, err := r.scanPlan(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadEntries(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *SQLitePlanRepo) ListByDay(ctx context.Context, day string) ([]*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE day = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, day)
	if err != nil {
		return nil, fmt.Errorf("listing plans by day: %w", err)
	}
	defer rows.Close()
	return r.scanPlansWithEntries(ctx, rows)
}

func (r *SQLitePlanRepo) ListRecent(ctx context.Context, limit int) ([]*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans ORDER BY created_at DESC, id LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent plans: %w", err)
	}
	defer rows.Close()
	return r.scanPlansWithEntries(ctx, rows)
}

func (r *SQLitePlanRepo) UpdateStatus(ctx context.Context, id string, status domain.PlanStatus) error {
	query := `UPDATE plans SET status = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, string(status), id)
	if err != nil {
		return fmt.Errorf("updating plan status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating plan status: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("plan %s: %w", id, ErrNotFound)
	}
	return nil
}

// scanPlan scans a single plan from a *sql.Row. Entries are not loaded.
func (r *SQLitePlanRepo) scanPlan(row *sql.Row) (*domain.Plan, error) {
	var p domain.Plan
	var statusStr, dayStr, createdAtStr string

	err := row.Scan(&p.ID, &p.TaskName, &p.CourseName, &dayStr, &statusStr, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("plan: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning plan: %w", err)
	}
	return r.populatePlan(&p, statusStr, dayStr, createdAtStr)
}

// scanPlansWithEntries scans plan rows and loads each plan's entries.
func (r *SQLitePlanRepo) scanPlansWithEntries(ctx context.Context, rows *sql.Rows) ([]*domain.Plan, error) {
	var plans []*domain.Plan
	for rows.Next() {
		var p domain.Plan
		var statusStr, dayStr, createdAtStr string

		if err := rows.Scan(&p.ID, &p.TaskName, &p.CourseName, &dayStr, &statusStr, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning plan row: %w", err)
		}
		plan, err := r.populatePlan(&p, statusStr, dayStr, createdAtStr)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}

	for _, p := range plans {
		if err := r.loadEntries(ctx, p); err != nil {
			return nil, err
		}
	}
	return plans, nil
}

// populatePlan fills in parsed fields on a Plan after scanning raw values.
func (r *SQLitePlanRepo) populatePlan(p *domain.Plan, statusStr, dayStr, createdAtStr string) (*domain.Plan, error) {
	p.Status = domain.PlanStatus(statusStr)

	var err error
	p.Day, err = parseDay(dayStr)
	if err != nil {
		return nil, err
	}
	p.CreatedAt, err = parseTimestamp("created_at", createdAtStr)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *SQLitePlanRepo) loadEntries(ctx context.Context, p *domain.Plan) error {
	query := `SELECT ` + entryColumns + ` FROM plan_entries WHERE plan_id = ? ORDER BY slot_start, id`
	rows, err := r.db.QueryContext(ctx, query, p.ID)
	if err != nil {
		return fmt.Errorf("listing plan entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e domain.PlanEntry
		var sourceStr, startStr, endStr string

		err := rows.Scan(&e.ID, &e.PlanID, &e.Title, &e.EstimatedMin, &sourceStr, &startStr, &endStr)
		if err != nil {
			return fmt.Errorf("scanning plan entry: %w", err)
		}
		e.Source = domain.SubtaskSource(sourceStr)
		if e.SlotStart, err = parseTimestamp("slot_start", startStr); err != nil {
			return err
		}
		if e.SlotEnd, err = parseTimestamp("slot_end", endStr); err != nil {
			return err
		}
		p.Entries = append(p.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating plan entries: %w", err)
	}
	return nil
}
