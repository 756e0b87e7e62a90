package repositories

import (
	"context"
	"time"

	"github.com/makanlah-app/backend/internal/apperr"
	"github.com/makanlah-app/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository defines the interface for post data operations. Listing
// methods sort server-side and paginate with skip/limit; counter methods
// apply relative atomic deltas so concurrent updates never lose a write.
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetPostsByIDs(ctx context.Context, ids []string) ([]models.Post, error)
	UpdatePost(ctx context.Context, id string, post *models.Post) error
	DeletePost(ctx context.Context, id string) error

	GetLatestPosts(ctx context.Context, skip, limit int64) ([]models.Post, error)
	GetTrendingPosts(ctx context.Context, skip, limit int64) ([]models.Post, error)
	GetPostsByCategory(ctx context.Context, category models.FoodCategory, skip, limit int64) ([]models.Post, error)
	GetPostsByCuisine(ctx context.Context, cuisine models.CuisineType, skip, limit int64) ([]models.Post, error)
	GetTopRatedPosts(ctx context.Context, minRating int, skip, limit int64) ([]models.Post, error)
	GetPostsByAuthorID(ctx context.Context, authorID uint, skip, limit int64) ([]models.Post, error)
	GetPostsByAuthorIDs(ctx context.Context, authorIDs []uint, skip, limit int64) ([]models.Post, error)
	GetPostsWithLocation(ctx context.Context) ([]models.Post, error)

	CountAllPosts(ctx context.Context) (int64, error)
	CountPostsByCategory(ctx context.Context, category models.FoodCategory) (int64, error)
	CountPostsByCuisine(ctx context.Context, cuisine models.CuisineType) (int64, error)
	CountTopRatedPosts(ctx context.Context, minRating int) (int64, error)
	CountPostsByAuthorID(ctx context.Context, authorID uint) (int64, error)
	CountPostsByAuthorIDs(ctx context.Context, authorIDs []uint) (int64, error)

	IncrementLikesCount(ctx context.Context, postID string) error
	DecrementLikesCount(ctx context.Context, postID string) error
	IncrementSavesCount(ctx context.Context, postID string) error
	DecrementSavesCount(ctx context.Context, postID string) error
	IncrementCommentsCount(ctx context.Context, postID string) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// CreatePost creates a new post in MongoDB
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, post)
	if err != nil {
		return apperr.Internal("failed to create post", err)
	}
	return nil
}

// GetPostByID retrieves a post by ID from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.InvalidArgument("invalid post ID format")
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("post not found")
		}
		return nil, apperr.Internal("failed to fetch post", err)
	}
	return &post, nil
}

// GetPostsByIDs retrieves all posts matching the given hex IDs in one
// query. IDs that do not parse or no longer exist are silently skipped.
func (r *MongoPostRepository) GetPostsByIDs(ctx context.Context, ids []string) ([]models.Post, error) {
	objIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		objIDs = append(objIDs, objID)
	}
	if len(objIDs) == 0 {
		return []models.Post{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": objIDs}})
	if err != nil {
		return nil, apperr.Internal("failed to query posts by IDs", err)
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, apperr.Internal("failed to decode posts", err)
	}
	return posts, nil
}

// UpdatePost updates the content fields of an existing post in MongoDB.
// Counter fields are never touched here.
func (r *MongoPostRepository) UpdatePost(ctx context.Context, id string, post *models.Post) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.InvalidArgument("invalid post ID format")
	}

	post.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"title":               post.Title,
			"description":         post.Description,
			"image_url":           post.ImageURL,
			"food_category":       post.FoodCategory,
			"cuisine_type":        post.CuisineType,
			"dietary_tags":        post.DietaryTags,
			"food_rating":         post.FoodRating,
			"aspect_ratings":      post.AspectRatings,
			"restaurant_name":     post.RestaurantName,
			"restaurant_location": post.RestaurantLocation,
			"menu_item_name":      post.MenuItemName,
			"menu_item_price":     post.MenuItemPrice,
			"updated_at":          post.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return apperr.Internal("failed to update post", err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("post not found")
	}
	return nil
}

// DeletePost deletes a post by ID from MongoDB
func (r *MongoPostRepository) DeletePost(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.InvalidArgument("invalid post ID format")
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return apperr.Internal("failed to delete post", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("post not found")
	}
	return nil
}

// Sort orders for the feed variants. Ties are broken by _id ascending so
// pagination is deterministic across requests.
var (
	sortNewest   = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}
	sortTrending = bson.D{{Key: "likes_count", Value: -1}, {Key: "_id", Value: 1}}
	sortTopRated = bson.D{{Key: "food_rating", Value: -1}, {Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}
)

func (r *MongoPostRepository) findPosts(ctx context.Context, filter bson.M, sort bson.D, skip, limit int64) ([]models.Post, error) {
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(sort)
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, apperr.Internal("failed to query posts", err)
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, apperr.Internal("failed to decode posts", err)
	}
	return posts, nil
}

func (r *MongoPostRepository) countPosts(ctx context.Context, filter bson.M) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, apperr.Internal("failed to count posts", err)
	}
	return count, nil
}

// GetLatestPosts retrieves all posts ordered by creation time descending
func (r *MongoPostRepository) GetLatestPosts(ctx context.Context, skip, limit int64) ([]models.Post, error) {
	return r.findPosts(ctx, bson.M{}, sortNewest, skip, limit)
}

// GetTrendingPosts retrieves all posts ordered by likes count descending
func (r *MongoPostRepository) GetTrendingPosts(ctx context.Context, skip, limit int64) ([]models.Post, error) {
	return r.findPosts(ctx, bson.M{}, sortTrending, skip, limit)
}

// GetPostsByCategory retrieves posts matching a food category, newest first
func (r *MongoPostRepository) GetPostsByCategory(ctx context.Context, category models.FoodCategory, skip, limit int64) ([]models.Post, error) {
	return r.findPosts(ctx, bson.M{"food_category": category}, sortNewest, skip, limit)
}

// GetPostsByCuisine retrieves posts matching a cuisine type, newest first
func (r *MongoPostRepository) GetPostsByCuisine(ctx context.Context, cuisine models.CuisineType, skip, limit int64) ([]models.Post, error) {
	return r.findPosts(ctx, bson.M{"cuisine_type": cuisine}, sortNewest, skip, limit)
}

// GetTopRatedPosts retrieves posts rated at or above minRating, highest
// rating first then newest first
func (r *MongoPostRepository) GetTopRatedPosts(ctx context.Context, minRating int, skip, limit int64) ([]models.Post, error) {
	return r.findPosts(ctx, bson.M{"food_rating": bson.M{"$gte": minRating}}, sortTopRated, skip, limit)
}

// GetPostsByAuthorID retrieves posts by a specific author, newest first
func (r *MongoPostRepository) GetPostsByAuthorID(ctx context.Context, authorID uint, skip, limit int64) ([]models.Post, error) {
	return r.findPosts(ctx, bson.M{"author_id": authorID}, sortNewest, skip, limit)
}

// GetPostsByAuthorIDs retrieves posts authored by any of the given users,
// newest first. Used by the following feed.
func (r *MongoPostRepository) GetPostsByAuthorIDs(ctx context.Context, authorIDs []uint, skip, limit int64) ([]models.Post, error) {
	return r.findPosts(ctx, bson.M{"author_id": bson.M{"$in": authorIDs}}, sortNewest, skip, limit)
}

// GetPostsWithLocation retrieves every post carrying a restaurant
// coordinate. Distance ranking happens in the feed layer, so this is not
// paginated: the proximity order is global, not per page.
func (r *MongoPostRepository) GetPostsWithLocation(ctx context.Context) ([]models.Post, error) {
	filter := bson.M{"restaurant_location": bson.M{"$ne": nil}}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, apperr.Internal("failed to query posts with location", err)
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, apperr.Internal("failed to decode posts", err)
	}
	return posts, nil
}

// CountAllPosts returns the total number of posts
func (r *MongoPostRepository) CountAllPosts(ctx context.Context) (int64, error) {
	return r.countPosts(ctx, bson.M{})
}

// CountPostsByCategory returns the number of posts in a food category
func (r *MongoPostRepository) CountPostsByCategory(ctx context.Context, category models.FoodCategory) (int64, error) {
	return r.countPosts(ctx, bson.M{"food_category": category})
}

// CountPostsByCuisine returns the number of posts with a cuisine type
func (r *MongoPostRepository) CountPostsByCuisine(ctx context.Context, cuisine models.CuisineType) (int64, error) {
	return r.countPosts(ctx, bson.M{"cuisine_type": cuisine})
}

// CountTopRatedPosts returns the number of posts rated at or above minRating
func (r *MongoPostRepository) CountTopRatedPosts(ctx context.Context, minRating int) (int64, error) {
	return r.countPosts(ctx, bson.M{"food_rating": bson.M{"$gte": minRating}})
}

// CountPostsByAuthorID returns the number of posts by a specific author
func (r *MongoPostRepository) CountPostsByAuthorID(ctx context.Context, authorID uint) (int64, error) {
	return r.countPosts(ctx, bson.M{"author_id": authorID})
}

// CountPostsByAuthorIDs returns the number of posts authored by any of the
// given users
func (r *MongoPostRepository) CountPostsByAuthorIDs(ctx context.Context, authorIDs []uint) (int64, error) {
	return r.countPosts(ctx, bson.M{"author_id": bson.M{"$in": authorIDs}})
}

// adjustCounter applies a relative $inc to a counter field. $inc is atomic
// on the server, so concurrent deltas on the same post cannot lose updates
// the way a read-modify-write would.
func (r *MongoPostRepository) adjustCounter(ctx context.Context, postID, field string, delta int) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return apperr.InvalidArgument("invalid post ID format")
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{field: delta}})
	if err != nil {
		return apperr.Internal("failed to adjust "+field, err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("post not found")
	}
	return nil
}

// IncrementLikesCount increments the likes count of a post
func (r *MongoPostRepository) IncrementLikesCount(ctx context.Context, postID string) error {
	return r.adjustCounter(ctx, postID, "likes_count", 1)
}

// DecrementLikesCount decrements the likes count of a post
func (r *MongoPostRepository) DecrementLikesCount(ctx context.Context, postID string) error {
	return r.adjustCounter(ctx, postID, "likes_count", -1)
}

// IncrementSavesCount increments the saves count of a post
func (r *MongoPostRepository) IncrementSavesCount(ctx context.Context, postID string) error {
	return r.adjustCounter(ctx, postID, "saves_count", 1)
}

// DecrementSavesCount decrements the saves count of a post
func (r *MongoPostRepository) DecrementSavesCount(ctx context.Context, postID string) error {
	return r.adjustCounter(ctx, postID, "saves_count", -1)
}

// IncrementCommentsCount increments the comments count of a post. Comments
// are append-only, so there is no decrement counterpart.
func (r *MongoPostRepository) IncrementCommentsCount(ctx context.Context, postID string) error {
	return r.adjustCounter(ctx, postID, "comments_count", 1)
}
