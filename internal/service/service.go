package service

import (
	"eduplatform/internal/config"
	"eduplatform/internal/mailer"
	"eduplatform/internal/repository"
	"eduplatform/internal/storage"
)

type Service struct {
	Auth       AuthService
	Course     CourseService
	Lesson     LessonService
	LessonFile LessonFileService
	Comment    CommentService
	Health     HealthService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, mail mailer.Mailer) *Service {
	return &Service{
		Auth:       NewAuthService(rep.User, rep.Token, cfg),
		Course:     NewCourseService(rep.Course),
		Lesson:     NewLessonService(rep.Lesson, rep.User, mail),
		LessonFile: NewLessonFileService(rep.LessonFile, rep.Lesson, storage, cfg),
		Comment:    NewCommentService(rep.Comment, rep.Lesson),
		Health:     NewHealthService(rep.Health),
	}
}
