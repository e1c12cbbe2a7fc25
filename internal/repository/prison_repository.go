package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vsip/visit-sync/internal/model"
)

// PrisonRepo resolves prison (establishment) identifiers.
type PrisonRepo struct {
	db *sql.DB
}

// NewPrisonRepo returns a new PrisonRepo bound to the given database.
func NewPrisonRepo(db *sql.DB) *PrisonRepo { return &PrisonRepo{db: db} }

// GetByID resolves a prison id supplied by the caller. An unknown id
// yields ErrBadData with the offending value named.
func (r *PrisonRepo) GetByID(ctx context.Context, prisonID string) (*model.Prison, error) {
	const q = `SELECT id, name FROM prisons WHERE id = ?`
	var p model.Prison
	err := r.db.QueryRowContext(ctx, q, prisonID).Scan(&p.ID, &p.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: prison %q", ErrBadData, prisonID)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
