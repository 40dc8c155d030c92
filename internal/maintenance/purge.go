package maintenance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// Execer is the subset of pgxpool.Pool used by the purge.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Soft-deleted rows live in these tables until purged.
var purgeTables = []string{"projects", "sample_works"}

type PurgeResult struct {
	Cutoff      time.Time
	Projects    int64
	SampleWorks int64
}

func (r PurgeResult) Total() int64 {
	return r.Projects + r.SampleWorks
}

type Purger struct {
	db  Execer
	now func() time.Time
}

func NewPurger(db Execer) *Purger {
	return &Purger{db: db, now: time.Now}
}

// Purge hard-deletes rows soft-deleted longer than retention ago.
func (p *Purger) Purge(ctx context.Context, retention time.Duration) (PurgeResult, error) {
	if retention <= 0 {
		return PurgeResult{}, errors.New("retention must be positive")
	}

	res := PurgeResult{Cutoff: p.now().UTC().Add(-retention)}
	for _, table := range purgeTables {
		q := fmt.Sprintf(`DELETE FROM %s WHERE deleted_at IS NOT NULL AND deleted_at < $1`, table)
		tag, err := p.db.Exec(ctx, q, res.Cutoff)
		if err != nil {
			return res, fmt.Errorf("purge %s: %w", table, err)
		}

		switch table {
		case "projects":
			res.Projects = tag.RowsAffected()
		case "sample_works":
			res.SampleWorks = tag.RowsAffected()
		}
	}
	return res, nil
}
