package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"eduplatform/internal/models"
	"eduplatform/internal/reaction"
)

// Сигнальные ошибки слоя репозиториев, сервисы и хендлеры
// сопоставляют их с HTTP статусами через errors.Is.
var (
	ErrNotFound  = errors.New("запись не найдена")
	ErrDuplicate = errors.New("нарушение уникальности")
)

// ListParams - общие параметры списочных запросов: поиск, сортировка,
// фильтр по внешнему ключу и постраничный вывод.
type ListParams struct {
	Search   string
	Ordering string
	FilterID string
	Limit    int
	Offset   int
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	VerifyPassword(ctx context.Context, username, password string) (*models.User, error)
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
	ClearRefreshToken(ctx context.Context, userID string) error
	ListEmails(ctx context.Context) ([]string, error)
}

type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, courseID string) (*models.Course, error)
	List(ctx context.Context, params ListParams) ([]models.Course, int, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, courseID string) error
}

type LessonRepository interface {
	Create(ctx context.Context, lesson *models.Lesson) error
	GetByID(ctx context.Context, lessonID string) (*models.Lesson, error)
	List(ctx context.Context, params ListParams) ([]models.Lesson, int, error)
	Update(ctx context.Context, lesson *models.Lesson) error
	Delete(ctx context.Context, lessonID string) error
	SetReaction(ctx context.Context, lessonID, userID string, desired reaction.Kind) (int, int, error)
	CountReactions(ctx context.Context, lessonID string, kind reaction.Kind) (int, error)
}

type LessonFileRepository interface {
	Create(ctx context.Context, file *models.LessonFile) error
	GetByID(ctx context.Context, fileID string) (*models.LessonFile, error)
	List(ctx context.Context, params ListParams) ([]models.LessonFile, int, error)
	Delete(ctx context.Context, fileID string) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, commentID string) (*models.Comment, error)
	List(ctx context.Context, params ListParams) ([]models.Comment, int, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, commentID string) error
}

type TokenRepository interface {
	BlacklistAccessToken(ctx context.Context, token string) error
	IsBlacklisted(ctx context.Context, token string) (bool, error)
}

type HealthRepository interface {
	CountTablesDB(ctx context.Context) (int, error)
}

type Repository struct {
	User       UserRepository
	Course     CourseRepository
	Lesson     LessonRepository
	LessonFile LessonFileRepository
	Comment    CommentRepository
	Token      TokenRepository
	Health     HealthRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:       NewUserRepository(db),
		Course:     NewCourseRepository(db),
		Lesson:     NewLessonRepository(db),
		LessonFile: NewLessonFileRepository(db),
		Comment:    NewCommentRepository(db),
		Token:      NewTokenRepository(db),
		Health:     NewHealthRepository(db),
	}
}

// orderClause строит ORDER BY по белому списку колонок.
// Префикс "-" означает сортировку по убыванию, неизвестные поля игнорируются.
func orderClause(allowed map[string]string, ordering, fallback string) string {
	field := strings.TrimSpace(ordering)
	desc := strings.HasPrefix(field, "-")
	field = strings.TrimPrefix(field, "-")

	column, ok := allowed[field]
	if !ok {
		return " ORDER BY " + fallback
	}

	if desc {
		return " ORDER BY " + column + " DESC"
	}
	return " ORDER BY " + column
}

// isUniqueViolation распознаёт ошибку нарушения уникального ограничения Postgres.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key value")
}
