package service

import (
	"context"
	"fmt"

	"eduplatform/internal/models"
	"eduplatform/internal/repository"
)

type CommentService interface {
	CreateComment(ctx context.Context, req repository.CreateCommentRequest) (*models.Comment, error)
	GetComment(ctx context.Context, commentID string) (*models.Comment, error)
	ListComments(ctx context.Context, params repository.ListParams) ([]models.Comment, int, error)
	UpdateComment(ctx context.Context, req repository.UpdateCommentRequest) (*models.Comment, error)
	DeleteComment(ctx context.Context, commentID string) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	lessonRepo  repository.LessonRepository
}

func NewCommentService(commentRepo repository.CommentRepository, lessonRepo repository.LessonRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		lessonRepo:  lessonRepo,
	}
}

func (s *commentService) CreateComment(ctx context.Context, req repository.CreateCommentRequest) (*models.Comment, error) {
	_, err := s.lessonRepo.GetByID(ctx, req.LessonID)
	if err != nil {
		return nil, err
	}

	// reply ссылается на существующий комментарий того же урока
	if req.ReplyTo != nil {
		parent, err := s.commentRepo.GetByID(ctx, *req.ReplyTo)
		if err != nil {
			return nil, err
		}
		if parent.LessonID != req.LessonID {
			return nil, fmt.Errorf("нельзя ответить на комментарий другого урока: %w", repository.ErrNotFound)
		}
	}

	comment := &models.Comment{
		Text:     req.Text,
		ReplyTo:  req.ReplyTo,
		LessonID: req.LessonID,
		AuthorID: &req.AuthorID,
	}

	err = s.commentRepo.Create(ctx, comment)
	if err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *commentService) GetComment(ctx context.Context, commentID string) (*models.Comment, error) {
	return s.commentRepo.GetByID(ctx, commentID)
}

func (s *commentService) ListComments(ctx context.Context, params repository.ListParams) ([]models.Comment, int, error) {
	return s.commentRepo.List(ctx, params)
}

func (s *commentService) UpdateComment(ctx context.Context, req repository.UpdateCommentRequest) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, req.CommentID)
	if err != nil {
		return nil, err
	}

	comment.Text = req.Text

	err = s.commentRepo.Update(ctx, comment)
	if err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *commentService) DeleteComment(ctx context.Context, commentID string) error {
	return s.commentRepo.Delete(ctx, commentID)
}
