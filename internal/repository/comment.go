package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mtlprog/tasktrail/internal/domain"
)

// CommentRepository handles database operations for task comments.
type CommentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

// Create appends a comment within the mutation's transaction.
func (r *CommentRepository) Create(ctx context.Context, tx pgx.Tx, comment *domain.Comment) error {
	query, args, err := psql.
		Insert("comments").
		Columns("task_id", "author_id", "body").
		Values(comment.TaskID, comment.AuthorID, comment.Body).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	err = tx.QueryRow(ctx, query, args...).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}

	return nil
}

// ListByTaskID retrieves all comments for a task, oldest first.
func (r *CommentRepository) ListByTaskID(ctx context.Context, taskID string) ([]*domain.Comment, error) {
	query, args, err := psql.
		Select("id", "task_id", "author_id", "body", "created_at").
		From("comments").
		Where(sq.Eq{"task_id": taskID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	var comments []*domain.Comment
	for rows.Next() {
		var comment domain.Comment
		err := rows.Scan(
			&comment.ID,
			&comment.TaskID,
			&comment.AuthorID,
			&comment.Body,
			&comment.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return comments, nil
}
