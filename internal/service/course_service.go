package service

import (
	"context"

	"eduplatform/internal/models"
	"eduplatform/internal/repository"
)

type CourseService interface {
	CreateCourse(ctx context.Context, req repository.CreateCourseRequest) (*models.Course, error)
	GetCourse(ctx context.Context, courseID string) (*models.Course, error)
	ListCourses(ctx context.Context, params repository.ListParams) ([]models.Course, int, error)
	UpdateCourse(ctx context.Context, req repository.UpdateCourseRequest) (*models.Course, error)
	DeleteCourse(ctx context.Context, courseID string) error
}

type courseService struct {
	courseRepo repository.CourseRepository
}

func NewCourseService(courseRepo repository.CourseRepository) CourseService {
	return &courseService{courseRepo: courseRepo}
}

func (s *courseService) CreateCourse(ctx context.Context, req repository.CreateCourseRequest) (*models.Course, error) {
	course := &models.Course{
		Name: req.Name,
	}

	err := s.courseRepo.Create(ctx, course)
	if err != nil {
		return nil, err
	}

	return course, nil
}

func (s *courseService) GetCourse(ctx context.Context, courseID string) (*models.Course, error) {
	return s.courseRepo.GetByID(ctx, courseID)
}

func (s *courseService) ListCourses(ctx context.Context, params repository.ListParams) ([]models.Course, int, error) {
	return s.courseRepo.List(ctx, params)
}

func (s *courseService) UpdateCourse(ctx context.Context, req repository.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	course.Name = req.Name

	err = s.courseRepo.Update(ctx, course)
	if err != nil {
		return nil, err
	}

	return course, nil
}

func (s *courseService) DeleteCourse(ctx context.Context, courseID string) error {
	return s.courseRepo.Delete(ctx, courseID)
}
