// internal/repository/postgres/agent_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"tedtam-service/internal/domain/agent"
	xerrors "tedtam-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AgentRepository struct {
	db *pgxpool.Pool
}

func NewAgentRepository(db *pgxpool.Pool) *AgentRepository {
	return &AgentRepository{db: db}
}

// Create inserts a new field agent.
func (r *AgentRepository) Create(ctx context.Context, a *agent.Agent) error {
	query := `
		INSERT INTO agents (id, email, password_hash, full_name, field_team)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query, a.ID, a.Email, a.PasswordHash, a.FullName, a.FieldTeam).
		Scan(&a.CreatedAt)
	if err != nil {
		return xerrors.Wrap(translateErr(err), "failed to create agent")
	}
	return nil
}

// FindByEmail retrieves an agent for login.
func (r *AgentRepository) FindByEmail(ctx context.Context, email string) (*agent.Agent, error) {
	query := `
		SELECT id, email, password_hash, full_name, field_team, created_at
		FROM agents WHERE email = $1
	`
	var a agent.Agent
	err := r.db.QueryRow(ctx, query, email).
		Scan(&a.ID, &a.Email, &a.PasswordHash, &a.FullName, &a.FieldTeam, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find agent: %w", err)
	}
	return &a, nil
}

// FindByID retrieves an agent by identity.
func (r *AgentRepository) FindByID(ctx context.Context, id string) (*agent.Agent, error) {
	query := `
		SELECT id, email, password_hash, full_name, field_team, created_at
		FROM agents WHERE id = $1
	`
	var a agent.Agent
	err := r.db.QueryRow(ctx, query, id).
		Scan(&a.ID, &a.Email, &a.PasswordHash, &a.FullName, &a.FieldTeam, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find agent: %w", err)
	}
	return &a, nil
}
