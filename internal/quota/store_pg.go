package quota

import (
	"context"
	"database/sql"
	"time"
)

type pgStore struct {
	DB *sql.DB
}

// NewPGStore constructs a Postgres-backed quota store.
func NewPGStore(db *sql.DB) *pgStore {
	return &pgStore{DB: db}
}

func (s *pgStore) Get(ctx context.Context, userID string) (Usage, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return Usage{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()
	u, err := s.lockAndEnsure(ctx, tx, userID)
	if err != nil {
		return Usage{}, err
	}
	if err = tx.Commit(); err != nil {
		return Usage{}, err
	}
	return u, nil
}

func (s *pgStore) Consume(ctx context.Context, userID string, n int) (Usage, error) {
	if n <= 0 {
		return s.Get(ctx, userID)
	}
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return Usage{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	u, err := s.lockAndEnsure(ctx, tx, userID)
	if err != nil {
		return Usage{}, err
	}
	if u.Used+n > u.Limit {
		err = ErrLimitReached
		return Usage{}, err
	}
	u.Used += n
	if _, err = tx.ExecContext(ctx, `
UPDATE generation_quota SET used = $1 WHERE user_id = $2`, u.Used, userID); err != nil {
		return Usage{}, err
	}
	if err = tx.Commit(); err != nil {
		return Usage{}, err
	}
	return u, nil
}

func (s *pgStore) lockAndEnsure(ctx context.Context, tx *sql.Tx, userID string) (Usage, error) {
	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx, `
INSERT INTO generation_quota (user_id, plan, limit_amount, used, resets_at)
VALUES ($1, $2, $3, 0, $4)
ON CONFLICT (user_id) DO NOTHING`, userID, defaultPlan, defaultLimit, now.Add(defaultWindow)); err != nil {
		return Usage{}, err
	}

	var u Usage
	row := tx.QueryRowContext(ctx, `
SELECT plan, limit_amount, used, resets_at
FROM generation_quota
WHERE user_id = $1
FOR UPDATE`, userID)
	if err := row.Scan(&u.Plan, &u.Limit, &u.Used, &u.ResetsAt); err != nil {
		return Usage{}, err
	}

	if now.After(u.ResetsAt) {
		u.Used = 0
		u.ResetsAt = now.Add(defaultWindow)
		if _, err := tx.ExecContext(ctx, `
UPDATE generation_quota SET used = 0, resets_at = $1 WHERE user_id = $2`, u.ResetsAt, userID); err != nil {
			return Usage{}, err
		}
	}
	return u, nil
}
