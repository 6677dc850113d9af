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

type lessonFileRepository struct {
	db *sqlx.DB
}

func NewLessonFileRepository(db *sqlx.DB) LessonFileRepository {
	return &lessonFileRepository{db: db}
}

func (r *lessonFileRepository) Create(ctx context.Context, file *models.LessonFile) error {
	if file.FileID == "" {
		file.FileID = uuid.New().String()
	}

	if file.CreatedAt.IsZero() {
		file.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO lesson_files (file_id, lesson_id, file_url, created_at)
		VALUES (:file_id, :lesson_id, :file_url, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, file)
	if err != nil {
		return fmt.Errorf("ошибка при создании файла урока: %w", err)
	}

	return nil
}

func (r *lessonFileRepository) GetByID(ctx context.Context, fileID string) (*models.LessonFile, error) {
	var file models.LessonFile

	query := `SELECT * FROM lesson_files WHERE file_id = $1`

	err := r.db.GetContext(ctx, &file, query, fileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("файл с ID %s: %w", fileID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении файла урока: %w", err)
	}

	return &file, nil
}

func (r *lessonFileRepository) List(ctx context.Context, params ListParams) ([]models.LessonFile, int, error) {
	where := ""
	args := []interface{}{}

	if params.Search != "" {
		where = fmt.Sprintf(` WHERE file_id ILIKE '%%' || $%d || '%%'`, len(args)+1)
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
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM lesson_files`+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при подсчёте файлов: %w", err)
	}

	query := `SELECT * FROM lesson_files` + where + " ORDER BY created_at" +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, params.Limit, params.Offset)

	var files []models.LessonFile
	err = r.db.SelectContext(ctx, &files, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при получении файлов урока: %w", err)
	}

	return files, count, nil
}

func (r *lessonFileRepository) Delete(ctx context.Context, fileID string) error {
	query := `DELETE FROM lesson_files WHERE file_id = $1`

	result, err := r.db.ExecContext(ctx, query, fileID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении файла урока: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("файл с ID %s: %w", fileID, ErrNotFound)
	}

	return nil
}
