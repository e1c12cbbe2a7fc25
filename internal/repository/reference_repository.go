package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vsip/visit-sync/internal/model"
)

// refCacheTTL bounds how long a resolved reference code is served from
// redis before the database is consulted again. Reference data changes
// rarely; a short TTL keeps deactivations visible within minutes.
const refCacheTTL = 5 * time.Minute

// ReferenceRepo resolves business codes (visit types, statuses, outcome
// and adjustment reasons) to validated, described values. Lookups are
// read-through cached in redis when a client is available; the repo
// degrades to database-only lookups when rdb is nil.
type ReferenceRepo struct {
	db  *sql.DB
	rdb *redis.Client
}

// NewReferenceRepo returns a ReferenceRepo bound to the given database
// and optional redis client (nil disables caching).
func NewReferenceRepo(db *sql.DB, rdb *redis.Client) *ReferenceRepo {
	return &ReferenceRepo{db: db, rdb: rdb}
}

// GetCode resolves a caller-supplied (domain, code) pair to an active
// reference code. An unknown or inactive code yields ErrBadData with
// the offending value named. Only active codes are cached.
func (r *ReferenceRepo) GetCode(ctx context.Context, domain, code string) (*model.ReferenceCode, error) {
	key := "ref:" + domain + ":" + code
	if r.rdb != nil {
		if desc, err := r.rdb.Get(ctx, key).Result(); err == nil {
			return &model.ReferenceCode{Domain: domain, Code: code, Description: desc, Active: true}, nil
		}
	}
	rc, err := r.lookup(ctx, domain, code)
	if err != nil {
		return nil, err
	}
	if !rc.Active {
		return nil, fmt.Errorf("%w: %s code %q is inactive", ErrBadData, domain, code)
	}
	if r.rdb != nil {
		// Best effort; a failed cache write must not fail the request.
		_ = r.rdb.Set(ctx, key, rc.Description, refCacheTTL).Err()
	}
	return rc, nil
}

// seed resolves a fixed reference code the service depends on. Unlike
// GetCode, absence is a deployment fault (ErrSeedMissing), never caller
// error, and inactive seeds are still usable.
func (r *ReferenceRepo) seed(ctx context.Context, domain, code string) (*model.ReferenceCode, error) {
	rc, err := r.lookup(ctx, domain, code)
	if err != nil {
		if errors.Is(err, ErrBadData) {
			return nil, fmt.Errorf("%w: %s/%s", ErrSeedMissing, domain, code)
		}
		return nil, err
	}
	return rc, nil
}

// ScheduledStatus returns the SCH visit status seed code.
func (r *ReferenceRepo) ScheduledStatus(ctx context.Context) (*model.ReferenceCode, error) {
	return r.seed(ctx, model.DomainVisitStatus, model.StatusScheduled)
}

// CancelledStatus returns the CANC visit status seed code.
func (r *ReferenceRepo) CancelledStatus(ctx context.Context) (*model.ReferenceCode, error) {
	return r.seed(ctx, model.DomainVisitStatus, model.StatusCancelled)
}

// AbsentOutcome returns the ABS attendance outcome seed code.
func (r *ReferenceRepo) AbsentOutcome(ctx context.Context) (*model.ReferenceCode, error) {
	return r.seed(ctx, model.DomainEventOutcome, model.OutcomeAbsent)
}

func (r *ReferenceRepo) lookup(ctx context.Context, domain, code string) (*model.ReferenceCode, error) {
	const q = `SELECT domain, code, description, active FROM reference_codes WHERE domain = ? AND code = ?`
	var rc model.ReferenceCode
	err := r.db.QueryRowContext(ctx, q, domain, code).Scan(&rc.Domain, &rc.Code, &rc.Description, &rc.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s code %q", ErrBadData, domain, code)
	}
	if err != nil {
		return nil, err
	}
	return &rc, nil
}
