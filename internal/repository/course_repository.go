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

type courseRepository struct {
	db *sqlx.DB
}

type CreateCourseRequest struct {
	Name string `json:"name"`
}

type UpdateCourseRequest struct {
	CourseID string `json:"courseId"`
	Name     string `json:"name"`
}

func NewCourseRepository(db *sqlx.DB) CourseRepository {
	return &courseRepository{db: db}
}

var courseOrdering = map[string]string{
	"name":       "name",
	"created_at": "created_at",
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.CourseID == "" {
		course.CourseID = uuid.New().String()
	}
	course.CreatedAt = time.Now()

	query := `
		INSERT INTO courses (course_id, name, created_at)
		VALUES (:course_id, :name, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, course)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("курс с названием %s уже существует: %w", course.Name, ErrDuplicate)
		}
		return fmt.Errorf("ошибка при создании курса: %w", err)
	}

	return nil
}

func (r *courseRepository) GetByID(ctx context.Context, courseID string) (*models.Course, error) {
	var course models.Course

	query := `SELECT * FROM courses WHERE course_id = $1`

	err := r.db.GetContext(ctx, &course, query, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("курс с ID %s: %w", courseID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении курса: %w", err)
	}

	return &course, nil
}

func (r *courseRepository) List(ctx context.Context, params ListParams) ([]models.Course, int, error) {
	where := ""
	args := []interface{}{}

	// search by id and name
	if params.Search != "" {
		where = ` WHERE (course_id ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%')`
		args = append(args, params.Search)
	}

	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM courses`+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при подсчёте курсов: %w", err)
	}

	query := `SELECT * FROM courses` + where +
		orderClause(courseOrdering, params.Ordering, "created_at DESC") +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, params.Limit, params.Offset)

	var courses []models.Course
	err = r.db.SelectContext(ctx, &courses, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при получении курсов: %w", err)
	}

	return courses, count, nil
}

func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses
		SET name = :name
		WHERE course_id = :course_id
	`

	result, err := r.db.NamedExecContext(ctx, query, course)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("курс с названием %s уже существует: %w", course.Name, ErrDuplicate)
		}
		return fmt.Errorf("ошибка при обновлении курса: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("курс с ID %s: %w", course.CourseID, ErrNotFound)
	}

	return nil
}

func (r *courseRepository) Delete(ctx context.Context, courseID string) error {
	query := `DELETE FROM courses WHERE course_id = $1`

	result, err := r.db.ExecContext(ctx, query, courseID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении курса: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("курс с ID %s: %w", courseID, ErrNotFound)
	}

	return nil
}
