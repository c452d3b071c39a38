package leads

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// rowQueryer is the slice of pgxpool.Pool the repository needs. pgxmock
// satisfies it in tests.
type rowQueryer interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores leads in the relational database. The table
// assigns id and created_at.
type PostgresRepository struct {
	db rowQueryer
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("leads: pgx pool required")
	}
	return &PostgresRepository{db: pool}
}

func newPostgresRepositoryWithQueryer(db rowQueryer) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new row and returns it as stored.
func (r *PostgresRepository) Create(ctx context.Context, req *SubmitLeadRequest) (*Lead, error) {
	lead := newLead(req)
	query := `
		INSERT INTO leads (name, mobile, email, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	if err := r.db.QueryRow(ctx, query,
		lead.Name,
		lead.Mobile,
		lead.Email,
		string(lead.Status),
	).Scan(&lead.ID, &lead.CreatedAt); err != nil {
		return nil, fmt.Errorf("leads: insert failed: %w", err)
	}
	return lead, nil
}

// Configured reports whether a pool was supplied.
func (r *PostgresRepository) Configured() bool {
	return r != nil && r.db != nil
}
