package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"eduplatform/internal/mailer"
	"eduplatform/internal/models"
	"eduplatform/internal/reaction"
	"eduplatform/internal/repository"
)

type LessonService interface {
	CreateLesson(ctx context.Context, req repository.CreateLessonRequest) (*models.Lesson, error)
	GetLesson(ctx context.Context, lessonID string) (*models.Lesson, error)
	ListLessons(ctx context.Context, params repository.ListParams) ([]models.Lesson, int, error)
	UpdateLesson(ctx context.Context, req repository.UpdateLessonRequest) (*models.Lesson, error)
	DeleteLesson(ctx context.Context, lessonID string) error
	React(ctx context.Context, lessonID, userID string, desired reaction.Kind) (int, int, error)
}

type lessonService struct {
	lessonRepo repository.LessonRepository
	userRepo   repository.UserRepository
	mailer     mailer.Mailer
}

func NewLessonService(lessonRepo repository.LessonRepository, userRepo repository.UserRepository, mail mailer.Mailer) LessonService {
	return &lessonService{
		lessonRepo: lessonRepo,
		userRepo:   userRepo,
		mailer:     mail,
	}
}

func (s *lessonService) CreateLesson(ctx context.Context, req repository.CreateLessonRequest) (*models.Lesson, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	lesson := &models.Lesson{
		Title:       req.Title,
		Description: req.Description,
		IsActive:    isActive,
		CourseID:    req.CourseID,
		TeacherID:   req.TeacherID,
	}

	err := s.lessonRepo.Create(ctx, lesson)
	if err != nil {
		return nil, err
	}

	// уведомление уходит после записи урока и не влияет на результат запроса
	go s.notifyLessonCreated(lesson)

	return lesson, nil
}

// notifyLessonCreated рассылает письмо о новом уроке всем пользователям.
// Отправка best-effort: любая ошибка логируется и глотается.
func (s *lessonService) notifyLessonCreated(lesson *models.Lesson) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	emails, err := s.userRepo.ListEmails(ctx)
	if err != nil {
		log.Printf("Не удалось получить адреса для рассылки: %v", err)
		return
	}

	if len(emails) == 0 {
		return
	}

	description := lesson.Description
	if description == "" {
		description = "Описание не добавлено."
	}

	body := fmt.Sprintf("Добавлен новый урок: %s\n\n%s", lesson.Title, description)

	if err := s.mailer.Send(ctx, emails, "Новый урок на платформе", body); err != nil {
		log.Printf("Не удалось отправить уведомление о новом уроке: %v", err)
	}
}

func (s *lessonService) GetLesson(ctx context.Context, lessonID string) (*models.Lesson, error) {
	return s.lessonRepo.GetByID(ctx, lessonID)
}

func (s *lessonService) ListLessons(ctx context.Context, params repository.ListParams) ([]models.Lesson, int, error) {
	return s.lessonRepo.List(ctx, params)
}

func (s *lessonService) UpdateLesson(ctx context.Context, req repository.UpdateLessonRequest) (*models.Lesson, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, req.LessonID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		lesson.Title = *req.Title
	}
	if req.Description != nil {
		lesson.Description = *req.Description
	}
	if req.IsActive != nil {
		lesson.IsActive = *req.IsActive
	}
	if req.CourseID != nil {
		lesson.CourseID = *req.CourseID
	}

	err = s.lessonRepo.Update(ctx, lesson)
	if err != nil {
		return nil, err
	}

	return lesson, nil
}

func (s *lessonService) DeleteLesson(ctx context.Context, lessonID string) error {
	return s.lessonRepo.Delete(ctx, lessonID)
}

func (s *lessonService) React(ctx context.Context, lessonID, userID string, desired reaction.Kind) (int, int, error) {
	return s.lessonRepo.SetReaction(ctx, lessonID, userID, desired)
}
