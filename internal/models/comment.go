package models

import "time"

// Comment represents a comment on a post. Comments are append-only: there
// is no update or delete path, the comments table is a log.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"index"` // MongoDB ObjectID as string
	UserID    uint      `json:"user_id" gorm:"index"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentWithUser pairs a comment with the shallow projection of its author.
type CommentWithUser struct {
	Comment
	User UserCompact `json:"user"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}
