package recommendations

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo is the Postgres-backed Repo.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, rec Recommendation) error {
	paramsJSON, err := json.Marshal(rec.Request.Parameters)
	if err != nil {
		return fmt.Errorf("marshal parameters: %w", err)
	}
	var resultJSON []byte
	if rec.Result != nil {
		resultJSON, err = json.Marshal(rec.Result)
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
	}

	_, err = r.DB.ExecContext(ctx, `
INSERT INTO recommendations (id, user_id, product_type, purpose, custom_purpose, budget, parameters, recommendations, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.ID,
		rec.UserID,
		rec.Request.ProductType,
		rec.Request.Purpose,
		nullString(rec.Request.CustomPurpose),
		rec.Request.Budget,
		paramsJSON,
		resultJSON,
		rec.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID, id string) (Recommendation, error) {
	row := r.DB.QueryRowContext(ctx, `
SELECT id, user_id, product_type, purpose, custom_purpose, budget, parameters, recommendations, created_at
FROM recommendations
WHERE id = $1 AND user_id = $2`, id, userID)
	rec, err := scanRecommendation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Recommendation{}, ErrNotFound
	}
	return rec, err
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Recommendation, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.DB.QueryContext(ctx, `
SELECT id, user_id, product_type, purpose, custom_purpose, budget, parameters, recommendations, created_at
FROM recommendations
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Recommendation
	for rows.Next() {
		rec, err := scanRecommendation(rows)
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

func scanRecommendation(row rowScanner) (Recommendation, error) {
	var (
		rec           Recommendation
		customPurpose sql.NullString
		paramsJSON    []byte
		resultJSON    []byte
	)
	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Request.ProductType,
		&rec.Request.Purpose,
		&customPurpose,
		&rec.Request.Budget,
		&paramsJSON,
		&resultJSON,
		&rec.CreatedAt,
	)
	if err != nil {
		return Recommendation{}, err
	}
	rec.Request.CustomPurpose = customPurpose.String
	if len(paramsJSON) > 0 {
		if err := json.Unmarshal(paramsJSON, &rec.Request.Parameters); err != nil {
			return Recommendation{}, fmt.Errorf("unmarshal parameters: %w", err)
		}
	}
	if len(resultJSON) > 0 {
		var result Result
		if err := json.Unmarshal(resultJSON, &result); err != nil {
			return Recommendation{}, fmt.Errorf("unmarshal result: %w", err)
		}
		rec.Result = &result
	}
	return rec, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var _ Repo = (*PGRepo)(nil)
