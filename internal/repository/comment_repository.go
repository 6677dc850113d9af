package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"eduplatform/internal/models"
)

type commentRepository struct {
	db *sqlx.DB
}

type CreateCommentRequest struct {
	Text     string  `json:"text"`
	LessonID string  `json:"lessonId"`
	ReplyTo  *string `json:"replyTo"`
	AuthorID string  `json:"authorId"`
}

type UpdateCommentRequest struct {
	CommentID string `json:"commentId"`
	Text      string `json:"text"`
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

var commentOrdering = map[string]string{
	"id":         "comment_id",
	"created_at": "created_at",
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if comment.CommentID == "" {
		comment.CommentID = uuid.New().String()
	}
	comment.CreatedAt = time.Now()

	query := `
		INSERT INTO comments (comment_id, text, created_at, reply_to, lesson_id, author_id)
		VALUES (:comment_id, :text, :created_at, :reply_to, :lesson_id, :author_id)
	`

	_, err := r.db.NamedExecContext(ctx, query, comment)
	if err != nil {
		return fmt.Errorf("ошибка при создании комментария: %w", err)
	}

	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, commentID string) (*models.Comment, error) {
	var comment models.Comment

	query := `SELECT * FROM comments WHERE comment_id = $1`

	err := r.db.GetContext(ctx, &comment, query, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("комментарий с ID %s: %w", commentID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении комментария: %w", err)
	}

	return &comment, nil
}

func (r *commentRepository) List(ctx context.Context, params ListParams) ([]models.Comment, int, error) {
	where := ""
	args := []interface{}{}

	if params.Search != "" {
		where = fmt.Sprintf(` WHERE (comment_id ILIKE '%%' || $%d || '%%' OR text ILIKE '%%' || $%d || '%%')`, len(args)+1, len(args)+1)
		args = append(args, params.Search)
	}

	// equality filter by lesson
	if params.FilterID != "" {
		if where == "" {
			where = fmt.Sprintf(` WHERE lesson_id = $%d`, len(args)+1)
		} else {
			where += fmt.Sprintf(` AND lesson_id = $%d`, len(args)+1)
		}
		args = append(args, params.FilterID)
	}

	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM comments`+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при подсчёте комментариев: %w", err)
	}

	query := `SELECT * FROM comments` + where +
		orderClause(commentOrdering, params.Ordering, "created_at") +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, params.Limit, params.Offset)

	var comments []models.Comment
	err = r.db.SelectContext(ctx, &comments, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при получении комментариев: %w", err)
	}

	return comments, count, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	query := `
		UPDATE comments
		SET text = :text
		WHERE comment_id = :comment_id
	`

	result, err := r.db.NamedExecContext(ctx, query, comment)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении комментария: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("комментарий с ID %s: %w", comment.CommentID, ErrNotFound)
	}

	return nil
}

func (r *commentRepository) Delete(ctx context.Context, commentID string) error {
	query := `DELETE FROM comments WHERE comment_id = $1`

	result, err := r.db.ExecContext(ctx, query, commentID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении комментария: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("комментарий с ID %s: %w", commentID, ErrNotFound)
	}

	return nil
}
