package generations

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo is the Postgres-backed generation history store.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Insert(ctx context.Context, rec Record) error {
	const query = `
INSERT INTO generations (id, instruction, status, repaired, error, duration_ms, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	var errText sql.NullString
	if rec.Error != "" {
		errText = sql.NullString{String: rec.Error, Valid: true}
	}
	_, err := r.DB.ExecContext(ctx, query,
		rec.ID,
		rec.Instruction,
		rec.Status,
		rec.Repaired,
		errText,
		rec.DurationMs,
		rec.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Record, error) {
	const query = `
SELECT id, instruction, status, repaired, error, duration_ms, created_at
FROM generations
WHERE id = $1
LIMIT 1`
	rec, err := scanRecord(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return rec, nil
}

func (r *PGRepo) List(ctx context.Context, limit int) ([]Record, error) {
	const query = `
SELECT id, instruction, status, repaired, error, duration_ms, created_at
FROM generations
ORDER BY created_at DESC
LIMIT $1`
	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var rec Record
	var errText sql.NullString
	if err := row.Scan(
		&rec.ID,
		&rec.Instruction,
		&rec.Status,
		&rec.Repaired,
		&errText,
		&rec.DurationMs,
		&rec.CreatedAt,
	); err != nil {
		return Record{}, err
	}
	if errText.Valid {
		rec.Error = errText.String
	}
	return rec, nil
}
