package feed

import (
	"context"

	"github.com/makanlah-app/backend/internal/models"
	"gorm.io/gorm"
)

// In-memory repository fakes. They implement the full repository
// interfaces so the assembler and overlay can be exercised without
// Postgres or MongoDB.

type fakeLikeRepo struct {
	liked      map[string]bool
	batchCalls int
	err        error
}

func (f *fakeLikeRepo) CreateLike(like *models.Like) error { return nil }
func (f *fakeLikeRepo) DeleteLike(userID uint, postID string) error { return nil }
func (f *fakeLikeRepo) HasUserLikedPost(userID uint, postID string) (bool, error) {
	return f.liked[postID], nil
}
func (f *fakeLikeRepo) GetLikesByPostID(postID string, offset, limit int) ([]models.Like, error) {
	return nil, nil
}
func (f *fakeLikeRepo) GetLikesCountByPostID(postID string) (int64, error) { return 0, nil }
func (f *fakeLikeRepo) GetLikedPostIDs(userID uint, postIDs []string) (map[string]bool, error) {
	f.batchCalls++
	if f.err != nil {
		return nil, f.err
	}
	result := make(map[string]bool)
	for _, id := range postIDs {
		if f.liked[id] {
			result[id] = true
		}
	}
	return result, nil
}

type fakeSavedRepo struct {
	saved      map[string]bool
	batchCalls int
	err        error
}

func (f *fakeSavedRepo) SavePost(savedPost *models.SavedPost) error { return nil }
func (f *fakeSavedRepo) UnsavePost(userID uint, postID string) error { return nil }
func (f *fakeSavedRepo) IsPostSaved(userID uint, postID string) (bool, error) {
	return f.saved[postID], nil
}
func (f *fakeSavedRepo) GetSavedPostsByUser(userID uint, offset, limit int) ([]models.SavedPost, error) {
	return nil, nil
}
func (f *fakeSavedRepo) GetSavedPostsCountByUser(userID uint) (int64, error) { return 0, nil }
func (f *fakeSavedRepo) GetSavedPostIDs(userID uint, postIDs []string) (map[string]bool, error) {
	f.batchCalls++
	if f.err != nil {
		return nil, f.err
	}
	result := make(map[string]bool)
	for _, id := range postIDs {
		if f.saved[id] {
			result[id] = true
		}
	}
	return result, nil
}

type fakeUserRepo struct {
	users map[uint]models.User
}

func (f *fakeUserRepo) CreateUser(user *models.User) error { return nil }
func (f *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return &u, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) GetUserByUsername(username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) GetUsersByIDs(ids []uint) ([]models.User, error) {
	var result []models.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			result = append(result, u)
		}
	}
	return result, nil
}
func (f *fakeUserRepo) UpdateUser(user *models.User) error { return nil }
func (f *fakeUserRepo) DeleteUser(id uint) error { return nil }

type fakeFollowRepo struct {
	following map[uint][]uint
}

func (f *fakeFollowRepo) CreateFollow(follow *models.Follow) error { return nil }
func (f *fakeFollowRepo) DeleteFollow(followerID, followingID uint) error { return nil }
func (f *fakeFollowRepo) IsFollowing(followerID, followingID uint) (bool, error) {
	for _, id := range f.following[followerID] {
		if id == followingID {
			return true, nil
		}
	}
	return false, nil
}
func (f *fakeFollowRepo) GetFollowers(userID uint, offset, limit int) ([]models.User, error) {
	return nil, nil
}
func (f *fakeFollowRepo) GetFollowing(userID uint, offset, limit int) ([]models.User, error) {
	return nil, nil
}
func (f *fakeFollowRepo) GetFollowersCount(userID uint) (int64, error) { return 0, nil }
func (f *fakeFollowRepo) GetFollowingCount(userID uint) (int64, error) {
	return int64(len(f.following[userID])), nil
}
func (f *fakeFollowRepo) GetFollowingIDs(userID uint) ([]uint, error) {
	return f.following[userID], nil
}

// fakePostRepo serves paged slices from fixed in-memory orderings, one per
// strategy, the way the Mongo repository serves them from sorted queries.
type fakePostRepo struct {
	latest   []models.Post
	trending []models.Post
	located  []models.Post
	byAuthor map[uint][]models.Post
}

func pagePosts(posts []models.Post, skip, limit int64) []models.Post {
	start := int(skip)
	if start > len(posts) {
		start = len(posts)
	}
	end := start + int(limit)
	if end > len(posts) {
		end = len(posts)
	}
	return posts[start:end]
}

func (f *fakePostRepo) CreatePost(ctx context.Context, post *models.Post) error { return nil }
func (f *fakePostRepo) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	for _, p := range f.latest {
		if p.ID.Hex() == id {
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakePostRepo) GetPostsByIDs(ctx context.Context, ids []string) ([]models.Post, error) {
	var result []models.Post
	for _, id := range ids {
		for _, p := range f.latest {
			if p.ID.Hex() == id {
				result = append(result, p)
			}
		}
	}
	return result, nil
}
func (f *fakePostRepo) UpdatePost(ctx context.Context, id string, post *models.Post) error {
	return nil
}
func (f *fakePostRepo) DeletePost(ctx context.Context, id string) error { return nil }

func (f *fakePostRepo) GetLatestPosts(ctx context.Context, skip, limit int64) ([]models.Post, error) {
	return pagePosts(f.latest, skip, limit), nil
}
func (f *fakePostRepo) GetTrendingPosts(ctx context.Context, skip, limit int64) ([]models.Post, error) {
	return pagePosts(f.trending, skip, limit), nil
}
func (f *fakePostRepo) GetPostsByCategory(ctx context.Context, category models.FoodCategory, skip, limit int64) ([]models.Post, error) {
	var matched []models.Post
	for _, p := range f.latest {
		if p.FoodCategory == category {
			matched = append(matched, p)
		}
	}
	return pagePosts(matched, skip, limit), nil
}
func (f *fakePostRepo) GetPostsByCuisine(ctx context.Context, cuisine models.CuisineType, skip, limit int64) ([]models.Post, error) {
	var matched []models.Post
	for _, p := range f.latest {
		if p.CuisineType == cuisine {
			matched = append(matched, p)
		}
	}
	return pagePosts(matched, skip, limit), nil
}
func (f *fakePostRepo) GetTopRatedPosts(ctx context.Context, minRating int, skip, limit int64) ([]models.Post, error) {
	var matched []models.Post
	for _, p := range f.latest {
		if p.FoodRating >= minRating {
			matched = append(matched, p)
		}
	}
	return pagePosts(matched, skip, limit), nil
}
func (f *fakePostRepo) GetPostsByAuthorID(ctx context.Context, authorID uint, skip, limit int64) ([]models.Post, error) {
	return pagePosts(f.byAuthor[authorID], skip, limit), nil
}
func (f *fakePostRepo) GetPostsByAuthorIDs(ctx context.Context, authorIDs []uint, skip, limit int64) ([]models.Post, error) {
	var matched []models.Post
	for _, id := range authorIDs {
		matched = append(matched, f.byAuthor[id]...)
	}
	return pagePosts(matched, skip, limit), nil
}
func (f *fakePostRepo) GetPostsWithLocation(ctx context.Context) ([]models.Post, error) {
	return f.located, nil
}

func (f *fakePostRepo) CountAllPosts(ctx context.Context) (int64, error) {
	return int64(len(f.latest)), nil
}
func (f *fakePostRepo) CountPostsByCategory(ctx context.Context, category models.FoodCategory) (int64, error) {
	var n int64
	for _, p := range f.latest {
		if p.FoodCategory == category {
			n++
		}
	}
	return n, nil
}
func (f *fakePostRepo) CountPostsByCuisine(ctx context.Context, cuisine models.CuisineType) (int64, error) {
	var n int64
	for _, p := range f.latest {
		if p.CuisineType == cuisine {
			n++
		}
	}
	return n, nil
}
func (f *fakePostRepo) CountTopRatedPosts(ctx context.Context, minRating int) (int64, error) {
	var n int64
	for _, p := range f.latest {
		if p.FoodRating >= minRating {
			n++
		}
	}
	return n, nil
}
func (f *fakePostRepo) CountPostsByAuthorID(ctx context.Context, authorID uint) (int64, error) {
	return int64(len(f.byAuthor[authorID])), nil
}
func (f *fakePostRepo) CountPostsByAuthorIDs(ctx context.Context, authorIDs []uint) (int64, error) {
	var n int64
	for _, id := range authorIDs {
		n += int64(len(f.byAuthor[id]))
	}
	return n, nil
}

func (f *fakePostRepo) IncrementLikesCount(ctx context.Context, postID string) error { return nil }
func (f *fakePostRepo) DecrementLikesCount(ctx context.Context, postID string) error { return nil }
func (f *fakePostRepo) IncrementSavesCount(ctx context.Context, postID string) error { return nil }
func (f *fakePostRepo) DecrementSavesCount(ctx context.Context, postID string) error { return nil }
func (f *fakePostRepo) IncrementCommentsCount(ctx context.Context, postID string) error { return nil }
