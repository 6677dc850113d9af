package service

import (
	"context"
	"fmt"
	"io"
	"log"

	"eduplatform/internal/config"
	"eduplatform/internal/models"
	"eduplatform/internal/repository"
	"eduplatform/internal/storage"
)

type LessonFileService interface {
	UploadFile(ctx context.Context, lessonID, fileName string, file io.Reader, size int64) (*models.LessonFile, error)
	GetFile(ctx context.Context, fileID string) (*models.LessonFile, error)
	ListFiles(ctx context.Context, params repository.ListParams) ([]models.LessonFile, int, error)
	DeleteFile(ctx context.Context, fileID string) error
}

type lessonFileService struct {
	fileRepo   repository.LessonFileRepository
	lessonRepo repository.LessonRepository
	storage    storage.Storage
	cfg        *config.Config
}

func NewLessonFileService(fileRepo repository.LessonFileRepository, lessonRepo repository.LessonRepository, storage storage.Storage, cfg *config.Config) LessonFileService {
	return &lessonFileService{
		fileRepo:   fileRepo,
		lessonRepo: lessonRepo,
		storage:    storage,
		cfg:        cfg,
	}
}

func (s *lessonFileService) UploadFile(ctx context.Context, lessonID, fileName string, file io.Reader, size int64) (*models.LessonFile, error) {
	// урок должен существовать до загрузки объекта
	_, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	objectName, fileURL, err := s.storage.UploadFile(ctx, lessonID, fileName, file, size)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки файла в MinIO: %w", err)
	}

	lessonFile := &models.LessonFile{
		LessonID: lessonID,
		FileURL:  fileURL,
	}

	err = s.fileRepo.Create(ctx, lessonFile)
	if err != nil {
		// компенсация: объект без строки в БД никому не нужен
		if delErr := s.storage.DeleteFile(ctx, objectName); delErr != nil {
			log.Printf("Не удалось удалить объект %s после ошибки БД: %v", objectName, delErr)
		}
		return nil, fmt.Errorf("ошибка сохранения файла в БД: %w", err)
	}

	return lessonFile, nil
}

func (s *lessonFileService) GetFile(ctx context.Context, fileID string) (*models.LessonFile, error) {
	return s.fileRepo.GetByID(ctx, fileID)
}

func (s *lessonFileService) ListFiles(ctx context.Context, params repository.ListParams) ([]models.LessonFile, int, error) {
	return s.fileRepo.List(ctx, params)
}

func (s *lessonFileService) DeleteFile(ctx context.Context, fileID string) error {
	file, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return err
	}

	objectName := storage.ObjectNameFromURL(file.FileURL, s.cfg.MinIO.BucketName)
	if objectName != "" {
		if err := s.storage.DeleteFile(ctx, objectName); err != nil {
			log.Printf("Предупреждение: не удалось удалить объект из MinIO: %v", err)
		}
	}

	return s.fileRepo.Delete(ctx, fileID)
}
