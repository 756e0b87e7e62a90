package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/makanlah-app/backend/internal/apperr"
	"github.com/makanlah-app/backend/internal/models"
	"github.com/makanlah-app/backend/internal/repositories"
	"gorm.io/gorm"
)

// InteractionService owns every relation mutation (like, save, follow,
// comment) and keeps the denormalized post counters in step with them.
//
// Each counter-affecting mutation is two steps: (1) the relation row in
// Postgres, (2) an atomic $inc on the Mongo post. The two are not one
// transaction; if step 2 fails the relation stands, the counter drifts by
// one and the drift is logged for reconciliation. The mutation itself still
// succeeds because the user-visible relation change already happened.
type InteractionService struct {
	posts    repositories.PostRepository
	users    repositories.UserRepository
	likes    repositories.LikeRepository
	saves    repositories.SavedPostRepository
	follows  repositories.FollowRepository
	comments repositories.CommentRepository
}

// NewInteractionService creates a new InteractionService
func NewInteractionService(
	posts repositories.PostRepository,
	users repositories.UserRepository,
	likes repositories.LikeRepository,
	saves repositories.SavedPostRepository,
	follows repositories.FollowRepository,
	comments repositories.CommentRepository,
) *InteractionService {
	return &InteractionService{
		posts:    posts,
		users:    users,
		likes:    likes,
		saves:    saves,
		follows:  follows,
		comments: comments,
	}
}

// LikePost records that the user likes the post and bumps its likes count.
// A duplicate like fails with Conflict; the unique index on (user, post)
// is the safety net, so two concurrent likes can never both insert.
func (s *InteractionService) LikePost(ctx context.Context, userID uint, postID string) (*models.Like, error) {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}

	like := &models.Like{UserID: userID, PostID: postID}
	if err := s.likes.CreateLike(like); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("post already liked by this user")
		}
		return nil, apperr.Internal("failed to like post", err)
	}

	if err := s.posts.IncrementLikesCount(ctx, postID); err != nil {
		log.Printf("counter drift: likes_count +1 not applied for post %s: %v", postID, err)
	}
	return like, nil
}

// UnlikePost removes the user's like and drops the likes count.
func (s *InteractionService) UnlikePost(ctx context.Context, userID uint, postID string) error {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return err
	}

	if err := s.likes.DeleteLike(userID, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("like not found")
		}
		return apperr.Internal("failed to unlike post", err)
	}

	if err := s.posts.DecrementLikesCount(ctx, postID); err != nil {
		log.Printf("counter drift: likes_count -1 not applied for post %s: %v", postID, err)
	}
	return nil
}

// HasLiked reports whether the user currently likes the post. The relation
// row, not the cached counter, is the source of truth.
func (s *InteractionService) HasLiked(userID uint, postID string) (bool, error) {
	liked, err := s.likes.HasUserLikedPost(userID, postID)
	if err != nil {
		return false, apperr.Internal("failed to check like status", err)
	}
	return liked, nil
}

// SavePost bookmarks the post for the user and bumps its saves count.
func (s *InteractionService) SavePost(ctx context.Context, userID uint, postID string) (*models.SavedPost, error) {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}

	saved := &models.SavedPost{UserID: userID, PostID: postID}
	if err := s.saves.SavePost(saved); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("post already saved by this user")
		}
		return nil, apperr.Internal("failed to save post", err)
	}

	if err := s.posts.IncrementSavesCount(ctx, postID); err != nil {
		log.Printf("counter drift: saves_count +1 not applied for post %s: %v", postID, err)
	}
	return saved, nil
}

// UnsavePost removes the bookmark and drops the saves count.
func (s *InteractionService) UnsavePost(ctx context.Context, userID uint, postID string) error {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return err
	}

	if err := s.saves.UnsavePost(userID, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("saved post not found")
		}
		return apperr.Internal("failed to unsave post", err)
	}

	if err := s.posts.DecrementSavesCount(ctx, postID); err != nil {
		log.Printf("counter drift: saves_count -1 not applied for post %s: %v", postID, err)
	}
	return nil
}

// FollowUser makes followerID follow targetID.
func (s *InteractionService) FollowUser(followerID, targetID uint) error {
	if followerID == targetID {
		return apperr.InvalidArgument("cannot follow yourself")
	}

	if _, err := s.users.GetUserByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user not found")
		}
		return apperr.Internal("failed to fetch user", err)
	}

	follow := &models.Follow{FollowerID: followerID, FollowingID: targetID}
	if err := s.follows.CreateFollow(follow); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("already following this user")
		}
		return apperr.Internal("failed to follow user", err)
	}
	return nil
}

// UnfollowUser removes the follow relationship.
func (s *InteractionService) UnfollowUser(followerID, targetID uint) error {
	if err := s.follows.DeleteFollow(followerID, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("follow relationship not found")
		}
		return apperr.Internal("failed to unfollow user", err)
	}
	return nil
}

// IsFollowing reports whether followerID follows targetID.
func (s *InteractionService) IsFollowing(followerID, targetID uint) (bool, error) {
	following, err := s.follows.IsFollowing(followerID, targetID)
	if err != nil {
		return false, apperr.Internal("failed to check follow status", err)
	}
	return following, nil
}

// AddComment appends a comment to the post and bumps its comments count.
func (s *InteractionService) AddComment(ctx context.Context, userID uint, postID, content string) (*models.CommentWithUser, error) {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{PostID: postID, UserID: userID, Content: content}
	if err := s.comments.CreateComment(comment); err != nil {
		return nil, apperr.Internal("failed to create comment", err)
	}

	if err := s.posts.IncrementCommentsCount(ctx, postID); err != nil {
		log.Printf("counter drift: comments_count +1 not applied for post %s: %v", postID, err)
	}

	result := &models.CommentWithUser{Comment: *comment}
	if user, err := s.users.GetUserByID(userID); err == nil {
		result.User = user.ToCompact()
	}
	return result, nil
}

// Liker pairs a shallow user projection with the time of the like.
type Liker struct {
	User    models.UserCompact `json:"user"`
	LikedAt time.Time          `json:"liked_at"`
}

// ListPostLikers returns a page of users who liked the post, newest first.
func (s *InteractionService) ListPostLikers(ctx context.Context, postID string, page, limit int) ([]Liker, int64, error) {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	likes, err := s.likes.GetLikesByPostID(postID, offset, limit)
	if err != nil {
		return nil, 0, apperr.Internal("failed to list likes", err)
	}
	total, err := s.likes.GetLikesCountByPostID(postID)
	if err != nil {
		return nil, 0, apperr.Internal("failed to count likes", err)
	}

	userMap, err := s.compactUsersByID(likesUserIDs(likes))
	if err != nil {
		return nil, 0, err
	}

	likers := make([]Liker, len(likes))
	for i, l := range likes {
		likers[i] = Liker{User: userMap[l.UserID], LikedAt: l.CreatedAt}
	}
	return likers, total, nil
}

// SavedEntry is the shallow post projection in a saved-posts listing.
type SavedEntry struct {
	PostID   string    `json:"post_id"`
	Title    string    `json:"title"`
	ImageURL string    `json:"image_url"`
	SavedAt  time.Time `json:"saved_at"`
}

// ListSavedPosts returns a page of the user's saved posts, most recently
// saved first, each with a shallow post projection resolved in one batch.
func (s *InteractionService) ListSavedPosts(ctx context.Context, userID uint, page, limit int) ([]SavedEntry, int64, error) {
	offset := (page - 1) * limit
	saved, err := s.saves.GetSavedPostsByUser(userID, offset, limit)
	if err != nil {
		return nil, 0, apperr.Internal("failed to list saved posts", err)
	}
	total, err := s.saves.GetSavedPostsCountByUser(userID)
	if err != nil {
		return nil, 0, apperr.Internal("failed to count saved posts", err)
	}

	postIDs := make([]string, len(saved))
	for i, sp := range saved {
		postIDs[i] = sp.PostID
	}
	posts, err := s.posts.GetPostsByIDs(ctx, postIDs)
	if err != nil {
		return nil, 0, err
	}
	postMap := make(map[string]models.Post, len(posts))
	for _, p := range posts {
		postMap[p.ID.Hex()] = p
	}

	entries := make([]SavedEntry, 0, len(saved))
	for _, sp := range saved {
		post, ok := postMap[sp.PostID]
		if !ok {
			// The post was deleted after it was saved; drop the stale row
			// from the listing.
			continue
		}
		entries = append(entries, SavedEntry{
			PostID:   sp.PostID,
			Title:    post.Title,
			ImageURL: post.ImageURL,
			SavedAt:  sp.CreatedAt,
		})
	}
	return entries, total, nil
}

// ListFollowers returns a page of users following userID.
func (s *InteractionService) ListFollowers(userID uint, page, limit int) ([]models.UserCompact, int64, error) {
	offset := (page - 1) * limit
	users, err := s.follows.GetFollowers(userID, offset, limit)
	if err != nil {
		return nil, 0, apperr.Internal("failed to list followers", err)
	}
	total, err := s.follows.GetFollowersCount(userID)
	if err != nil {
		return nil, 0, apperr.Internal("failed to count followers", err)
	}
	return compactUsers(users), total, nil
}

// ListFollowing returns a page of users that userID follows.
func (s *InteractionService) ListFollowing(userID uint, page, limit int) ([]models.UserCompact, int64, error) {
	offset := (page - 1) * limit
	users, err := s.follows.GetFollowing(userID, offset, limit)
	if err != nil {
		return nil, 0, apperr.Internal("failed to list following", err)
	}
	total, err := s.follows.GetFollowingCount(userID)
	if err != nil {
		return nil, 0, apperr.Internal("failed to count following", err)
	}
	return compactUsers(users), total, nil
}

// ListComments returns a page of comments on the post with shallow user
// projections, newest first.
func (s *InteractionService) ListComments(ctx context.Context, postID string, page, limit int) ([]models.CommentWithUser, int64, error) {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	comments, err := s.comments.GetCommentsByPostID(postID, offset, limit)
	if err != nil {
		return nil, 0, apperr.Internal("failed to list comments", err)
	}
	total, err := s.comments.GetCommentsCountByPostID(postID)
	if err != nil {
		return nil, 0, apperr.Internal("failed to count comments", err)
	}

	userIDs := make([]uint, len(comments))
	for i, c := range comments {
		userIDs[i] = c.UserID
	}
	userMap, err := s.compactUsersByID(userIDs)
	if err != nil {
		return nil, 0, err
	}

	result := make([]models.CommentWithUser, len(comments))
	for i, c := range comments {
		result[i] = models.CommentWithUser{Comment: c, User: userMap[c.UserID]}
	}
	return result, total, nil
}

func (s *InteractionService) compactUsersByID(ids []uint) (map[uint]models.UserCompact, error) {
	seen := make(map[uint]bool, len(ids))
	distinct := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			distinct = append(distinct, id)
		}
	}
	users, err := s.users.GetUsersByIDs(distinct)
	if err != nil {
		return nil, apperr.Internal("failed to resolve users", err)
	}
	result := make(map[uint]models.UserCompact, len(users))
	for _, u := range users {
		result[u.ID] = u.ToCompact()
	}
	return result, nil
}

func compactUsers(users []models.User) []models.UserCompact {
	result := make([]models.UserCompact, len(users))
	for i, u := range users {
		result[i] = u.ToCompact()
	}
	return result
}

func likesUserIDs(likes []models.Like) []uint {
	ids := make([]uint, len(likes))
	for i, l := range likes {
		ids[i] = l.UserID
	}
	return ids
}
