package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vsip/visit-sync/internal/model"
)

// PersonRepo resolves visitor person identifiers.
type PersonRepo struct {
	db *sql.DB
}

// NewPersonRepo returns a new PersonRepo bound to the given database.
func NewPersonRepo(db *sql.DB) *PersonRepo { return &PersonRepo{db: db} }

// GetByID resolves a person id supplied by the caller. An unknown id
// yields ErrBadData with the offending value named.
func (r *PersonRepo) GetByID(ctx context.Context, personID uint64) (*model.Person, error) {
	const q = `SELECT id, first_name, last_name FROM persons WHERE id = ?`
	var p model.Person
	err := r.db.QueryRowContext(ctx, q, personID).Scan(&p.ID, &p.FirstName, &p.LastName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: person %d", ErrBadData, personID)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
