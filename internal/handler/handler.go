package handlers

import (
	"github.com/go-playground/validator/v10"

	"eduplatform/internal/config"
	"eduplatform/internal/repository"
	"eduplatform/internal/service"
)

type Handlers struct {
	AuthService       service.AuthService
	CourseService     service.CourseService
	LessonService     service.LessonService
	LessonFileService service.LessonFileService
	CommentService    service.CommentService
	HealthService     service.HealthService
	UserRepo          repository.UserRepository
	Cfg               *config.Config
	Validate          *validator.Validate
}

func NewHandlers(repo *repository.Repository, service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:       service.Auth,
		CourseService:     service.Course,
		LessonService:     service.Lesson,
		LessonFileService: service.LessonFile,
		CommentService:    service.Comment,
		HealthService:     service.Health,
		UserRepo:          repo.User,
		Cfg:               config,
		Validate:          validator.New(),
	}
}
