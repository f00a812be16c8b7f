package generations

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &PGRepo{DB: db}, mock
}

func recordColumns() []string {
	return []string{"id", "instruction", "status", "repaired", "error", "duration_ms", "created_at"}
}

func TestPGRepoInsert(t *testing.T) {
	repo, mock := newMockRepo(t)

	rec := Record{
		ID:          "abc-123",
		Instruction: "a counter",
		Status:      StatusSucceeded,
		Repaired:    true,
		DurationMs:  420,
		CreatedAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	mock.ExpectExec("INSERT INTO generations").
		WithArgs(rec.ID, rec.Instruction, rec.Status, rec.Repaired, sql.NullString{}, rec.DurationMs, rec.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Insert(context.Background(), rec); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestPGRepoInsertStoresFailureMessage(t *testing.T) {
	repo, mock := newMockRepo(t)

	rec := Record{
		ID:          "def-456",
		Instruction: "a chart",
		Status:      StatusFailed,
		Error:       `cannot import "recharts"`,
		CreatedAt:   time.Now().UTC(),
	}
	mock.ExpectExec("INSERT INTO generations").
		WithArgs(rec.ID, rec.Instruction, rec.Status, rec.Repaired,
			sql.NullString{String: rec.Error, Valid: true}, rec.DurationMs, rec.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Insert(context.Background(), rec); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestPGRepoGetByID(t *testing.T) {
	repo, mock := newMockRepo(t)

	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT id, instruction, status, repaired, error, duration_ms, created_at").
		WithArgs("abc-123").
		WillReturnRows(sqlmock.NewRows(recordColumns()).
			AddRow("abc-123", "a counter", string(StatusFailed), false, "boom", int64(17), created))

	rec, err := repo.GetByID(context.Background(), "abc-123")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Error != "boom" || rec.Status != StatusFailed || !rec.CreatedAt.Equal(created) {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT id, instruction, status, repaired, error, duration_ms, created_at").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.GetByID(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPGRepoList(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT id, instruction, status, repaired, error, duration_ms, created_at").
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows(recordColumns()).
			AddRow("b", "second", string(StatusSucceeded), true, nil, int64(5), time.Now()).
			AddRow("a", "first", string(StatusSucceeded), false, nil, int64(9), time.Now()))

	records, err := repo.List(context.Background(), 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 || records[0].ID != "b" || !records[0].Repaired {
		t.Fatalf("unexpected records: %+v", records)
	}
	if records[0].Error != "" {
		t.Fatalf("null error column should scan to empty string")
	}
}
