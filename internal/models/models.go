package models

import (
	"time"
)

type User struct {
	UserID                 string    `json:"userId" db:"user_id"`
	Username               string    `json:"username" db:"username"`
	Email                  string    `json:"email" db:"email"`
	PasswordHash           string    `json:"-" db:"password_hash"`
	IsStaff                bool      `json:"isStaff" db:"is_staff"`
	IsActive               bool      `json:"isActive" db:"is_active"`
	RefreshToken           string    `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime time.Time `json:"-" db:"refresh_token_expiry_time"`
}

type Course struct {
	CourseID  string    `json:"courseId" db:"course_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Lesson struct {
	LessonID    string    `json:"lessonId" db:"lesson_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	CourseID    string    `json:"courseId" db:"course_id"`
	TeacherID   string    `json:"teacherId" db:"teacher_id"`
	Like        int       `json:"like" db:"like_count"`
	Dislike     int       `json:"dislike" db:"dislike_count"`
}

// LessonReaction хранит текущую позицию пользователя по уроку.
// Инвариант: не более одной строки на пару (lesson, user).
type LessonReaction struct {
	ReactionID string  `json:"reactionId" db:"reaction_id"`
	LessonID   string  `json:"lessonId" db:"lesson_id"`
	UserID     *string `json:"userId" db:"user_id"`
	Reaction   string  `json:"reaction" db:"reaction"`
}

type LessonFile struct {
	FileID    string    `json:"fileId" db:"file_id"`
	LessonID  string    `json:"lessonId" db:"lesson_id"`
	FileURL   string    `json:"fileUrl" db:"file_url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Comment struct {
	CommentID string    `json:"commentId" db:"comment_id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	ReplyTo   *string   `json:"replyTo" db:"reply_to"`
	LessonID  string    `json:"lessonId" db:"lesson_id"`
	AuthorID  *string   `json:"authorId" db:"author_id"`
}

type BlacklistedToken struct {
	TokenID       string    `json:"tokenId" db:"token_id"`
	Token         string    `json:"token" db:"token"`
	BlacklistedAt time.Time `json:"blacklistedAt" db:"blacklisted_at"`
}
