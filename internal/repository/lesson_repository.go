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
	"eduplatform/internal/reaction"
)

type lessonRepository struct {
	db *sqlx.DB
}

type CreateLessonRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	IsActive    *bool  `json:"isActive"`
	CourseID    string `json:"courseId"`
	TeacherID   string `json:"teacherId"`
}

type UpdateLessonRequest struct {
	LessonID    string  `json:"lessonId"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
	CourseID    *string `json:"courseId"`
}

func NewLessonRepository(db *sqlx.DB) LessonRepository {
	return &lessonRepository{db: db}
}

var lessonOrdering = map[string]string{
	"title":      "title",
	"created_at": "created_at",
}

func (r *lessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	if lesson.LessonID == "" {
		lesson.LessonID = uuid.New().String()
	}

	now := time.Now()
	lesson.CreatedAt = now
	lesson.UpdatedAt = now

	query := `
		INSERT INTO lessons (lesson_id, title, description, created_at, updated_at, is_active, course_id, teacher_id, like_count, dislike_count)
		VALUES (:lesson_id, :title, :description, :created_at, :updated_at, :is_active, :course_id, :teacher_id, :like_count, :dislike_count)
	`

	_, err := r.db.NamedExecContext(ctx, query, lesson)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("урок %s уже существует в этом курсе: %w", lesson.Title, ErrDuplicate)
		}
		return fmt.Errorf("ошибка при создании урока: %w", err)
	}

	return nil
}

func (r *lessonRepository) GetByID(ctx context.Context, lessonID string) (*models.Lesson, error) {
	var lesson models.Lesson

	query := `SELECT * FROM lessons WHERE lesson_id = $1`

	err := r.db.GetContext(ctx, &lesson, query, lessonID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("урок с ID %s: %w", lessonID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении урока: %w", err)
	}

	return &lesson, nil
}

func (r *lessonRepository) List(ctx context.Context, params ListParams) ([]models.Lesson, int, error) {
	where := ""
	args := []interface{}{}

	if params.Search != "" {
		where = fmt.Sprintf(` WHERE (lesson_id ILIKE '%%' || $%d || '%%' OR title ILIKE '%%' || $%d || '%%')`, len(args)+1, len(args)+1)
		args = append(args, params.Search)
	}

	// equality filter by course
	if params.FilterID != "" {
		if where == "" {
			where = fmt.Sprintf(` WHERE course_id = $%d`, len(args)+1)
		} else {
			where += fmt.Sprintf(` AND course_id = $%d`, len(args)+1)
		}
		args = append(args, params.FilterID)
	}

	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM lessons`+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при подсчёте уроков: %w", err)
	}

	query := `SELECT * FROM lessons` + where +
		orderClause(lessonOrdering, params.Ordering, "created_at DESC") +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, params.Limit, params.Offset)

	var lessons []models.Lesson
	err = r.db.SelectContext(ctx, &lessons, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при получении уроков: %w", err)
	}

	return lessons, count, nil
}

func (r *lessonRepository) Update(ctx context.Context, lesson *models.Lesson) error {
	lesson.UpdatedAt = time.Now()

	query := `
		UPDATE lessons SET
			title = :title,
			description = :description,
			is_active = :is_active,
			course_id = :course_id,
			updated_at = :updated_at
		WHERE lesson_id = :lesson_id
	`

	result, err := r.db.NamedExecContext(ctx, query, lesson)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("урок %s уже существует в этом курсе: %w", lesson.Title, ErrDuplicate)
		}
		return fmt.Errorf("ошибка при обновлении урока: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("урок с ID %s: %w", lesson.LessonID, ErrNotFound)
	}

	return nil
}

func (r *lessonRepository) Delete(ctx context.Context, lessonID string) error {
	query := `DELETE FROM lessons WHERE lesson_id = $1`

	result, err := r.db.ExecContext(ctx, query, lessonID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении урока: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("урок с ID %s: %w", lessonID, ErrNotFound)
	}

	return nil
}

// SetReaction применяет реакцию пользователя к уроку одной транзакцией:
// строка реакции пары (lesson, user) блокируется через FOR UPDATE,
// счётчики урока меняются относительным UPDATE, без read-modify-write.
func (r *lessonRepository) SetReaction(ctx context.Context, lessonID, userID string, desired reaction.Kind) (int, int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM lessons WHERE lesson_id = $1)`, lessonID)
	if err != nil {
		return 0, 0, fmt.Errorf("ошибка при проверке урока: %w", err)
	}
	if !exists {
		return 0, 0, fmt.Errorf("урок с ID %s: %w", lessonID, ErrNotFound)
	}

	// lock the (lesson, user) pair
	var row models.LessonReaction
	current := reaction.None

	err = tx.GetContext(ctx, &row, `SELECT * FROM lesson_reactions WHERE lesson_id = $1 AND user_id = $2 FOR UPDATE`, lessonID, userID)
	switch {
	case err == nil:
		current = reaction.StateOf(row.Reaction)
	case errors.Is(err, sql.ErrNoRows):
		// реакции ещё нет
	default:
		return 0, 0, fmt.Errorf("ошибка при получении реакции: %w", err)
	}

	tr := reaction.Apply(current, desired)

	switch {
	case current == reaction.None:
		_, err = tx.ExecContext(ctx,
			`INSERT INTO lesson_reactions (reaction_id, lesson_id, user_id, reaction) VALUES ($1, $2, $3, $4)`,
			uuid.New().String(), lessonID, userID, tr.Next.String())
	case tr.Next == reaction.None:
		_, err = tx.ExecContext(ctx,
			`DELETE FROM lesson_reactions WHERE reaction_id = $1`, row.ReactionID)
	default:
		_, err = tx.ExecContext(ctx,
			`UPDATE lesson_reactions SET reaction = $1 WHERE reaction_id = $2`, tr.Next.String(), row.ReactionID)
	}
	if err != nil {
		if isUniqueViolation(err) {
			// параллельный запрос той же пары успел первым
			return 0, 0, fmt.Errorf("реакция уже применена: %w", ErrDuplicate)
		}
		return 0, 0, fmt.Errorf("ошибка при записи реакции: %w", err)
	}

	var likeCount, dislikeCount int
	err = tx.QueryRowxContext(ctx,
		`UPDATE lessons SET like_count = like_count + $1, dislike_count = dislike_count + $2, updated_at = CURRENT_TIMESTAMP WHERE lesson_id = $3 RETURNING like_count, dislike_count`,
		tr.LikeDelta, tr.DislikeDelta, lessonID).Scan(&likeCount, &dislikeCount)
	if err != nil {
		return 0, 0, fmt.Errorf("ошибка при обновлении счётчиков урока: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return likeCount, dislikeCount, nil
}

func (r *lessonRepository) CountReactions(ctx context.Context, lessonID string, kind reaction.Kind) (int, error) {
	var count int

	query := `SELECT COUNT(*) FROM lesson_reactions WHERE lesson_id = $1 AND reaction = $2`

	err := r.db.GetContext(ctx, &count, query, lessonID, string(kind))
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте реакций: %w", err)
	}

	return count, nil
}
