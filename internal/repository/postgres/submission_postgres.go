package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"regapi/internal/model"
	"regapi/internal/repository"
)

// SubmissionPostgres is a PostgreSQL implementation of
// repository.SubmissionRepository. It uses database/sql with
// parameterized queries and contains no business logic. Monotonic,
// never-reused ids come from the table's BIGSERIAL sequence.
type SubmissionPostgres struct {
	db *sql.DB
}

// NewSubmissionPostgres creates a new SubmissionPostgres repository.
func NewSubmissionPostgres(db *sql.DB) *SubmissionPostgres {
	return &SubmissionPostgres{db: db}
}

var _ repository.SubmissionRepository = (*SubmissionPostgres)(nil)

const submissionColumns = `id, first_name, last_name, email, phone, age, country, gender, interests, bio, created_at, updated_at`

// scanSubmission reads one submission row; interests are stored as a
// JSONB array of strings.
func scanSubmission(row interface{ Scan(...any) error }) (*model.Submission, error) {
	var s model.Submission
	var interests []byte
	if err := row.Scan(
		&s.ID,
		&s.FirstName,
		&s.LastName,
		&s.Email,
		&s.Phone,
		&s.Age,
		&s.Country,
		&s.Gender,
		&interests,
		&s.Bio,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(interests) > 0 {
		if err := json.Unmarshal(interests, &s.Interests); err != nil {
			return nil, fmt.Errorf("decode interests: %w", err)
		}
	}
	if s.Interests == nil {
		s.Interests = []string{}
	}
	return &s, nil
}

func (r *SubmissionPostgres) Insert(ctx context.Context, sub *model.Submission) (*model.Submission, error) {
	interests, err := json.Marshal(sub.Interests)
	if err != nil {
		return nil, fmt.Errorf("encode interests: %w", err)
	}

	q := `
		INSERT INTO submissions (first_name, last_name, email, phone, age, country, gender, interests, bio)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + submissionColumns
	row := r.db.QueryRowContext(ctx, q,
		sub.FirstName,
		sub.LastName,
		sub.Email,
		sub.Phone,
		sub.Age,
		sub.Country,
		sub.Gender,
		interests,
		sub.Bio,
	)
	return scanSubmission(row)
}

func (r *SubmissionPostgres) FindByID(ctx context.Context, id int64) (*model.Submission, error) {
	q := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = $1`
	s, err := scanSubmission(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *SubmissionPostgres) Update(ctx context.Context, sub *model.Submission) (*model.Submission, error) {
	interests, err := json.Marshal(sub.Interests)
	if err != nil {
		return nil, fmt.Errorf("encode interests: %w", err)
	}

	q := `
		UPDATE submissions
		SET first_name = $2, last_name = $3, email = $4, phone = $5, age = $6,
		    country = $7, gender = $8, interests = $9, bio = $10, updated_at = now()
		WHERE id = $1
		RETURNING ` + submissionColumns
	row := r.db.QueryRowContext(ctx, q,
		sub.ID,
		sub.FirstName,
		sub.LastName,
		sub.Email,
		sub.Phone,
		sub.Age,
		sub.Country,
		sub.Gender,
		interests,
		sub.Bio,
	)
	s, err := scanSubmission(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *SubmissionPostgres) Delete(ctx context.Context, id int64) (*model.Submission, error) {
	q := `DELETE FROM submissions WHERE id = $1 RETURNING ` + submissionColumns
	s, err := scanSubmission(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

// whereClause builds the WHERE fragment and its arguments for a filter.
func whereClause(f repository.Filter) (string, []any) {
	var conds []string
	var args []any

	next := func() string { return fmt.Sprintf("$%d", len(args)+1) }

	if f.Country != "" {
		args = append(args, f.Country)
		conds = append(conds, "LOWER(country) = LOWER("+next()+")")
	}
	if f.Gender != "" {
		args = append(args, f.Gender)
		conds = append(conds, "LOWER(gender) = LOWER("+next()+")")
	}
	if f.MinAge != nil {
		args = append(args, *f.MinAge)
		conds = append(conds, "age >= "+next())
	}
	if f.MaxAge != nil {
		args = append(args, *f.MaxAge)
		conds = append(conds, "age <= "+next())
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		p := next()
		conds = append(conds, "(first_name ILIKE "+p+" OR last_name ILIKE "+p+" OR email ILIKE "+p+")")
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *SubmissionPostgres) List(ctx context.Context, f repository.Filter, pq repository.PageQuery) (*repository.PageResult[model.Submission], error) {
	where, args := whereClause(f)

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM submissions"+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	q := fmt.Sprintf(
		"SELECT %s FROM submissions%s ORDER BY id ASC LIMIT $%d OFFSET $%d",
		submissionColumns, where, len(args)+1, len(args)+2,
	)
	rows, err := r.db.QueryContext(ctx, q, append(args, pq.Limit, pq.Offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Submission, 0)
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Submission]{Items: items, Total: total}, nil
}

func (r *SubmissionPostgres) All(ctx context.Context) ([]model.Submission, error) {
	q := `SELECT ` + submissionColumns + ` FROM submissions ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Submission, 0)
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
