package feed

import (
	"context"
	"errors"

	"github.com/makanlah-app/backend/internal/apperr"
	"github.com/makanlah-app/backend/internal/models"
	"github.com/makanlah-app/backend/internal/repositories"
	"gorm.io/gorm"
)

// Assembler orchestrates a feed fetch: it resolves the strategy, executes
// it, projects posts to the public feed shape, applies the viewer overlay
// and wraps everything in the pagination envelope. Handlers call nothing
// else in this package.
type Assembler struct {
	posts   repositories.PostRepository
	users   repositories.UserRepository
	follows repositories.FollowRepository
	overlay *Overlay
}

// NewAssembler creates a new Assembler
func NewAssembler(
	posts repositories.PostRepository,
	users repositories.UserRepository,
	follows repositories.FollowRepository,
	overlay *Overlay,
) *Assembler {
	return &Assembler{
		posts:   posts,
		users:   users,
		follows: follows,
		overlay: overlay,
	}
}

// Fetch executes one feed strategy and returns the assembled page.
func (a *Assembler) Fetch(ctx context.Context, strategy Strategy, params Params) (*Envelope, error) {
	p := params.normalized()

	posts, total, distances, err := a.fetchPage(ctx, strategy, p)
	if err != nil {
		return nil, err
	}

	items, err := a.project(posts, distances)
	if err != nil {
		return nil, err
	}

	a.overlay.Apply(p.ViewerID, items)

	return newEnvelope(items, total, p.Page, p.Limit), nil
}

func (a *Assembler) fetchPage(ctx context.Context, strategy Strategy, p Params) ([]models.Post, int64, map[string]float64, error) {
	skip, limit := p.skip(), int64(p.Limit)

	switch strategy {
	case StrategyAll:
		posts, err := a.posts.GetLatestPosts(ctx, skip, limit)
		if err != nil {
			return nil, 0, nil, err
		}
		total, err := a.posts.CountAllPosts(ctx)
		return posts, total, nil, err

	case StrategyTrending:
		posts, err := a.posts.GetTrendingPosts(ctx, skip, limit)
		if err != nil {
			return nil, 0, nil, err
		}
		total, err := a.posts.CountAllPosts(ctx)
		return posts, total, nil, err

	case StrategyRecommended:
		// Placeholder slot for a personalization model. Until one exists the
		// recommended feed serves the trending ordering to the viewer.
		if p.ViewerID == 0 {
			return nil, 0, nil, apperr.Unauthorized("recommended feed requires an authenticated viewer")
		}
		posts, err := a.posts.GetTrendingPosts(ctx, skip, limit)
		if err != nil {
			return nil, 0, nil, err
		}
		total, err := a.posts.CountAllPosts(ctx)
		return posts, total, nil, err

	case StrategyFollowing:
		if p.ViewerID == 0 {
			return nil, 0, nil, apperr.Unauthorized("following feed requires an authenticated viewer")
		}
		followingIDs, err := a.follows.GetFollowingIDs(p.ViewerID)
		if err != nil {
			return nil, 0, nil, apperr.Internal("failed to load followed users", err)
		}
		if len(followingIDs) == 0 {
			return nil, 0, nil, nil
		}
		posts, err := a.posts.GetPostsByAuthorIDs(ctx, followingIDs, skip, limit)
		if err != nil {
			return nil, 0, nil, err
		}
		total, err := a.posts.CountPostsByAuthorIDs(ctx, followingIDs)
		return posts, total, nil, err

	case StrategyCategory:
		category := models.FoodCategory(p.Category)
		if category != models.CategorySavory && category != models.CategorySweet {
			return nil, 0, nil, apperr.InvalidArgument("unknown food category: " + p.Category)
		}
		posts, err := a.posts.GetPostsByCategory(ctx, category, skip, limit)
		if err != nil {
			return nil, 0, nil, err
		}
		total, err := a.posts.CountPostsByCategory(ctx, category)
		return posts, total, nil, err

	case StrategyCuisine:
		if p.Cuisine == "" {
			return nil, 0, nil, apperr.InvalidArgument("cuisine is required")
		}
		cuisine := models.CuisineType(p.Cuisine)
		posts, err := a.posts.GetPostsByCuisine(ctx, cuisine, skip, limit)
		if err != nil {
			return nil, 0, nil, err
		}
		total, err := a.posts.CountPostsByCuisine(ctx, cuisine)
		return posts, total, nil, err

	case StrategyTopRated:
		posts, err := a.posts.GetTopRatedPosts(ctx, p.MinRating, skip, limit)
		if err != nil {
			return nil, 0, nil, err
		}
		total, err := a.posts.CountTopRatedPosts(ctx, p.MinRating)
		return posts, total, nil, err

	case StrategyAuthor:
		authorID := p.AuthorID
		if authorID == 0 {
			if p.Username == "" {
				return nil, 0, nil, apperr.InvalidArgument("author feed requires a user ID or username")
			}
			user, err := a.users.GetUserByUsername(p.Username)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, 0, nil, apperr.NotFound("user not found: " + p.Username)
				}
				return nil, 0, nil, apperr.Internal("failed to resolve username", err)
			}
			authorID = user.ID
		}
		posts, err := a.posts.GetPostsByAuthorID(ctx, authorID, skip, limit)
		if err != nil {
			return nil, 0, nil, err
		}
		total, err := a.posts.CountPostsByAuthorID(ctx, authorID)
		return posts, total, nil, err

	case StrategyNearby:
		return a.fetchNearby(ctx, p)

	default:
		return nil, 0, nil, apperr.InvalidArgument("unknown feed strategy")
	}
}

// fetchNearby ranks every located post by distance from the viewer and
// paginates after the global sort, so page boundaries respect the full
// proximity order.
func (a *Assembler) fetchNearby(ctx context.Context, p Params) ([]models.Post, int64, map[string]float64, error) {
	if p.Latitude == nil || p.Longitude == nil {
		return nil, 0, nil, apperr.InvalidArgument("latitude and longitude are required")
	}
	if !ValidCoordinate(*p.Latitude, *p.Longitude) {
		return nil, 0, nil, apperr.InvalidArgument("latitude must be within [-90,90] and longitude within [-180,180]")
	}

	candidates, err := a.posts.GetPostsWithLocation(ctx)
	if err != nil {
		return nil, 0, nil, err
	}

	ranked := rankByDistance(*p.Latitude, *p.Longitude, candidates)
	total := int64(len(ranked))

	start := int(p.skip())
	if start > len(ranked) {
		start = len(ranked)
	}
	end := start + p.Limit
	if end > len(ranked) {
		end = len(ranked)
	}
	page := ranked[start:end]

	posts := make([]models.Post, len(page))
	distances := make(map[string]float64, len(page))
	for i, rp := range page {
		posts[i] = rp.post
		distances[rp.post.ID.Hex()] = rp.distanceKm
	}
	return posts, total, distances, nil
}

// project maps posts to the public feed shape, resolving authors with one
// batch query instead of a lookup per post.
func (a *Assembler) project(posts []models.Post, distances map[string]float64) ([]Item, error) {
	authorSet := make(map[uint]bool)
	for _, p := range posts {
		authorSet[p.AuthorID] = true
	}
	authorIDs := make([]uint, 0, len(authorSet))
	for id := range authorSet {
		authorIDs = append(authorIDs, id)
	}

	users, err := a.users.GetUsersByIDs(authorIDs)
	if err != nil {
		return nil, apperr.Internal("failed to resolve post authors", err)
	}
	authorMap := make(map[uint]Author, len(users))
	for _, u := range users {
		authorMap[u.ID] = Author{ID: u.ID, Username: u.Username, Avatar: u.AvatarURL}
	}

	items := make([]Item, len(posts))
	for i, p := range posts {
		id := p.ID.Hex()
		item := Item{
			ID:         id,
			Title:      p.Title,
			ImageURL:   p.ImageURL,
			Author:     authorMap[p.AuthorID],
			LikesCount: p.LikesCount,
		}
		if p.RestaurantName != "" || p.RestaurantLocation != nil {
			item.Restaurant = &Restaurant{Name: p.RestaurantName, Location: p.RestaurantLocation}
		}
		if distances != nil {
			if d, ok := distances[id]; ok {
				dv := d
				item.DistanceKm = &dv
			}
		}
		items[i] = item
	}
	return items, nil
}
