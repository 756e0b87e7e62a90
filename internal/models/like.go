package models

import "time"

// Like represents a user liking a post. The composite unique index is the
// only guard against duplicate concurrent likes from the same user.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_post_like"`
	PostID    string    `json:"post_id" gorm:"index;uniqueIndex:idx_user_post_like"` // MongoDB ObjectID as string
	CreatedAt time.Time `json:"created_at"`
}
