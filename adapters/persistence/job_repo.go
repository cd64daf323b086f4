package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haanhpham/autopress/internal/domain/job"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type postgresJobRepo struct {
	db *pgxpool.Pool
}

func NewPostgresJobRepo(db *pgxpool.Pool) job.Repository {
	return &postgresJobRepo{db: db}
}

func (r *postgresJobRepo) Save(ctx context.Context, j *job.PublishJob) error {
	requestJSON, err := json.Marshal(j.Request)
	if err != nil {
		return fmt.Errorf("marshal job request failed: %w", err)
	}

	query, args, err := psql.Insert("publish_jobs").
		Columns("id", "status", "request", "error_text", "created_at", "updated_at").
		Values(j.ID, j.Status, requestJSON, j.ErrorText, j.CreatedAt, j.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query failed: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert publish job failed: %w", err)
	}
	return nil
}

func (r *postgresJobRepo) FindByID(ctx context.Context, id uuid.UUID) (*job.PublishJob, error) {
	query, args, err := psql.Select("id", "status", "request", "result", "error_text", "created_at", "updated_at").
		From("publish_jobs").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select query failed: %w", err)
	}

	return scanJob(r.db.QueryRow(ctx, query, args...))
}

func (r *postgresJobRepo) Update(ctx context.Context, j *job.PublishJob) error {
	var resultJSON any
	if j.Result != nil {
		b, err := json.Marshal(j.Result)
		if err != nil {
			return fmt.Errorf("marshal job result failed: %w", err)
		}
		resultJSON = b
	}

	query, args, err := psql.Update("publish_jobs").
		Set("status", j.Status).
		Set("result", resultJSON).
		Set("error_text", j.ErrorText).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": j.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query failed: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update publish job failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return job.ErrJobNotFound
	}
	return nil
}

func scanJob(row pgx.Row) (*job.PublishJob, error) {
	j := &job.PublishJob{}
	var requestBytes, resultBytes []byte
	var errorText sql.NullString

	err := row.Scan(
		&j.ID,
		&j.Status,
		&requestBytes,
		&resultBytes,
		&errorText,
		&j.CreatedAt,
		&j.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, job.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to scan publish job row: %w", err)
	}

	if len(requestBytes) > 0 {
		if err := json.Unmarshal(requestBytes, &j.Request); err != nil {
			return nil, fmt.Errorf("unmarshal job request failed: %w", err)
		}
	}
	if len(resultBytes) > 0 {
		j.Result = &job.Result{}
		if err := json.Unmarshal(resultBytes, j.Result); err != nil {
			return nil, fmt.Errorf("unmarshal job result failed: %w", err)
		}
	}
	if errorText.Valid {
		j.ErrorText = errorText.String
	}
	return j, nil
}
