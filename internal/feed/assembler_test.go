package feed

import (
	"context"
	"testing"

	"github.com/makanlah-app/backend/internal/apperr"
	"github.com/makanlah-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testPost(authorID uint, title string) models.Post {
	return models.Post{
		ID:           primitive.NewObjectID(),
		AuthorID:     authorID,
		Title:        title,
		ImageURL:     "https://cdn.example.com/" + title + ".jpg",
		FoodCategory: models.CategorySavory,
		CuisineType:  models.CuisineMalay,
		FoodRating:   4,
	}
}

func testAssembler(posts *fakePostRepo, users *fakeUserRepo, follows *fakeFollowRepo, likes *fakeLikeRepo, saves *fakeSavedRepo) *Assembler {
	if users == nil {
		users = &fakeUserRepo{users: map[uint]models.User{}}
	}
	if follows == nil {
		follows = &fakeFollowRepo{}
	}
	if likes == nil {
		likes = &fakeLikeRepo{}
	}
	if saves == nil {
		saves = &fakeSavedRepo{}
	}
	return NewAssembler(posts, users, follows, NewOverlay(likes, saves))
}

func userFixture(id uint, username string) models.User {
	u := models.User{Username: username, AvatarURL: "https://cdn.example.com/" + username + ".png"}
	u.ID = id
	return u
}

func TestFetchAllEnvelopeMath(t *testing.T) {
	repo := &fakePostRepo{}
	for i := 0; i < 41; i++ {
		repo.latest = append(repo.latest, testPost(1, "post"))
	}
	users := &fakeUserRepo{users: map[uint]models.User{1: userFixture(1, "aisyah")}}
	a := testAssembler(repo, users, nil, nil, nil)

	env, err := a.Fetch(context.Background(), StrategyAll, Params{Page: 2, Limit: 10})
	require.NoError(t, err)

	assert.Len(t, env.Posts, 10)
	assert.Equal(t, int64(41), env.Total)
	assert.Equal(t, 2, env.Page)
	assert.Equal(t, 10, env.PageSize)
	assert.Equal(t, 5, env.TotalPages)
}

func TestFetchCoercesPagination(t *testing.T) {
	repo := &fakePostRepo{latest: []models.Post{testPost(1, "laksa")}}
	users := &fakeUserRepo{users: map[uint]models.User{1: userFixture(1, "aisyah")}}
	a := testAssembler(repo, users, nil, nil, nil)

	env, err := a.Fetch(context.Background(), StrategyAll, Params{Page: -1, Limit: 999})
	require.NoError(t, err)

	assert.Equal(t, 1, env.Page)
	assert.Equal(t, DefaultLimit, env.PageSize)
}

func TestFetchAllOverlayMergedIntoPage(t *testing.T) {
	a4 := testPost(1, "nasi lemak")   // oldest
	b3 := testPost(1, "char kway teow")
	c2 := testPost(1, "roti canai")
	d1 := testPost(1, "cendol") // newest
	repo := &fakePostRepo{latest: []models.Post{d1, c2, b3, a4}}

	users := &fakeUserRepo{users: map[uint]models.User{1: userFixture(1, "aisyah")}}
	likes := &fakeLikeRepo{liked: map[string]bool{a4.ID.Hex(): true, c2.ID.Hex(): true}}
	a := testAssembler(repo, users, nil, likes, nil)

	env, err := a.Fetch(context.Background(), StrategyAll, Params{Page: 1, Limit: 2, ViewerID: 7})
	require.NoError(t, err)

	require.Len(t, env.Posts, 2)
	assert.Equal(t, d1.ID.Hex(), env.Posts[0].ID)
	assert.Equal(t, c2.ID.Hex(), env.Posts[1].ID)
	assert.False(t, env.Posts[0].Liked)
	assert.True(t, env.Posts[1].Liked)
	assert.Equal(t, int64(4), env.Total)
}

func TestFetchResolvesAuthorsInBatch(t *testing.T) {
	p1 := testPost(1, "satay")
	p2 := testPost(2, "rojak")
	repo := &fakePostRepo{latest: []models.Post{p1, p2}}
	users := &fakeUserRepo{users: map[uint]models.User{
		1: userFixture(1, "aisyah"),
		2: userFixture(2, "wei_jian"),
	}}
	a := testAssembler(repo, users, nil, nil, nil)

	env, err := a.Fetch(context.Background(), StrategyAll, Params{})
	require.NoError(t, err)

	require.Len(t, env.Posts, 2)
	assert.Equal(t, "aisyah", env.Posts[0].Author.Username)
	assert.Equal(t, uint(2), env.Posts[1].Author.ID)
	assert.Equal(t, "wei_jian", env.Posts[1].Author.Username)
}

func TestFetchFollowingRequiresViewer(t *testing.T) {
	a := testAssembler(&fakePostRepo{}, nil, nil, nil, nil)

	_, err := a.Fetch(context.Background(), StrategyFollowing, Params{})
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))
}

func TestFetchRecommendedRequiresViewer(t *testing.T) {
	a := testAssembler(&fakePostRepo{}, nil, nil, nil, nil)

	_, err := a.Fetch(context.Background(), StrategyRecommended, Params{})
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))
}

func TestFetchFollowingEmptyWhenNotFollowingAnyone(t *testing.T) {
	follows := &fakeFollowRepo{following: map[uint][]uint{}}
	a := testAssembler(&fakePostRepo{}, nil, follows, nil, nil)

	env, err := a.Fetch(context.Background(), StrategyFollowing, Params{ViewerID: 7})
	require.NoError(t, err)

	assert.Empty(t, env.Posts)
	assert.Zero(t, env.Total)
	assert.Zero(t, env.TotalPages)
}

func TestFetchFollowingOnlyFollowedAuthors(t *testing.T) {
	followedPost := testPost(2, "mee goreng")
	strangerPost := testPost(3, "ice kacang")
	repo := &fakePostRepo{
		latest:   []models.Post{followedPost, strangerPost},
		byAuthor: map[uint][]models.Post{2: {followedPost}, 3: {strangerPost}},
	}
	users := &fakeUserRepo{users: map[uint]models.User{2: userFixture(2, "wei_jian")}}
	follows := &fakeFollowRepo{following: map[uint][]uint{7: {2}}}
	a := testAssembler(repo, users, follows, nil, nil)

	env, err := a.Fetch(context.Background(), StrategyFollowing, Params{ViewerID: 7})
	require.NoError(t, err)

	require.Len(t, env.Posts, 1)
	assert.Equal(t, followedPost.ID.Hex(), env.Posts[0].ID)
	assert.Equal(t, int64(1), env.Total)
}

func TestFetchCategoryRejectsUnknown(t *testing.T) {
	a := testAssembler(&fakePostRepo{}, nil, nil, nil, nil)

	_, err := a.Fetch(context.Background(), StrategyCategory, Params{Category: "Spicy"})
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))
}

func TestFetchCuisineRequiresValue(t *testing.T) {
	a := testAssembler(&fakePostRepo{}, nil, nil, nil, nil)

	_, err := a.Fetch(context.Background(), StrategyCuisine, Params{})
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))
}

func TestFetchAuthorByUsername(t *testing.T) {
	post := testPost(2, "banana leaf rice")
	repo := &fakePostRepo{
		latest:   []models.Post{post},
		byAuthor: map[uint][]models.Post{2: {post}},
	}
	users := &fakeUserRepo{users: map[uint]models.User{2: userFixture(2, "wei_jian")}}
	a := testAssembler(repo, users, nil, nil, nil)

	env, err := a.Fetch(context.Background(), StrategyAuthor, Params{Username: "wei_jian"})
	require.NoError(t, err)

	require.Len(t, env.Posts, 1)
	assert.Equal(t, post.ID.Hex(), env.Posts[0].ID)
}

func TestFetchAuthorUnknownUsername(t *testing.T) {
	a := testAssembler(&fakePostRepo{}, nil, nil, nil, nil)

	_, err := a.Fetch(context.Background(), StrategyAuthor, Params{Username: "nobody"})
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestFetchAuthorRequiresIdentity(t *testing.T) {
	a := testAssembler(&fakePostRepo{}, nil, nil, nil, nil)

	_, err := a.Fetch(context.Background(), StrategyAuthor, Params{})
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))
}

func TestFetchNearbyRequiresCoordinates(t *testing.T) {
	a := testAssembler(&fakePostRepo{}, nil, nil, nil, nil)

	lat := 3.1578
	_, err := a.Fetch(context.Background(), StrategyNearby, Params{Latitude: &lat})
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))

	badLat, lng := 95.0, 101.7117
	_, err = a.Fetch(context.Background(), StrategyNearby, Params{Latitude: &badLat, Longitude: &lng})
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))
}

func TestFetchNearbyPaginatesAfterGlobalSort(t *testing.T) {
	nearest := locatedPost(3.1580, 101.7120)
	second := locatedPost(3.1425, 101.7103)
	third := locatedPost(3.0738, 101.5183)  // Subang Jaya
	fourth := locatedPost(5.4141, 100.3288) // Penang
	for i, p := range []*models.Post{&nearest, &second, &third, &fourth} {
		p.AuthorID = 1
		p.Title = []string{"nearest", "second", "third", "fourth"}[i]
	}

	repo := &fakePostRepo{
		latest:  []models.Post{fourth, third, second, nearest},
		located: []models.Post{fourth, third, second, nearest},
	}
	users := &fakeUserRepo{users: map[uint]models.User{1: userFixture(1, "aisyah")}}
	a := testAssembler(repo, users, nil, nil, nil)

	lat, lng := 3.1578, 101.7117
	env, err := a.Fetch(context.Background(), StrategyNearby, Params{
		Page: 2, Limit: 2, Latitude: &lat, Longitude: &lng,
	})
	require.NoError(t, err)

	// Page 2 holds the third and fourth nearest; total counts every
	// located post, not just the page.
	require.Len(t, env.Posts, 2)
	assert.Equal(t, "third", env.Posts[0].Title)
	assert.Equal(t, "fourth", env.Posts[1].Title)
	assert.Equal(t, int64(4), env.Total)
	assert.Equal(t, 2, env.TotalPages)

	require.NotNil(t, env.Posts[0].DistanceKm)
	require.NotNil(t, env.Posts[1].DistanceKm)
	assert.Less(t, *env.Posts[0].DistanceKm, *env.Posts[1].DistanceKm)
}

func TestFetchNearbySkipsUnlocatedPosts(t *testing.T) {
	located := locatedPost(3.1580, 101.7120)
	located.AuthorID = 1
	unlocated := testPost(1, "delivery only")

	repo := &fakePostRepo{
		latest:  []models.Post{unlocated, located},
		located: []models.Post{located},
	}
	users := &fakeUserRepo{users: map[uint]models.User{1: userFixture(1, "aisyah")}}
	a := testAssembler(repo, users, nil, nil, nil)

	lat, lng := 3.1578, 101.7117
	env, err := a.Fetch(context.Background(), StrategyNearby, Params{Latitude: &lat, Longitude: &lng})
	require.NoError(t, err)

	require.Len(t, env.Posts, 1)
	assert.Equal(t, located.ID.Hex(), env.Posts[0].ID)
	assert.Equal(t, int64(1), env.Total)
}

func TestFetchProjectsRestaurant(t *testing.T) {
	post := testPost(1, "hokkien mee")
	post.RestaurantName = "Kedai Kopi Lai Foong"
	post.RestaurantLocation = models.NewGeoPoint(3.1466, 101.6958)
	repo := &fakePostRepo{latest: []models.Post{post}}
	users := &fakeUserRepo{users: map[uint]models.User{1: userFixture(1, "aisyah")}}
	a := testAssembler(repo, users, nil, nil, nil)

	env, err := a.Fetch(context.Background(), StrategyAll, Params{})
	require.NoError(t, err)

	require.Len(t, env.Posts, 1)
	item := env.Posts[0]
	require.NotNil(t, item.Restaurant)
	assert.Equal(t, "Kedai Kopi Lai Foong", item.Restaurant.Name)
	assert.Nil(t, item.DistanceKm)
	assert.Equal(t, post.ImageURL, item.ImageURL)
}

func TestFetchTopRatedUsesThreshold(t *testing.T) {
	high := testPost(1, "five star laksa")
	high.FoodRating = 5
	low := testPost(1, "average laksa")
	low.FoodRating = 2
	repo := &fakePostRepo{latest: []models.Post{high, low}}
	users := &fakeUserRepo{users: map[uint]models.User{1: userFixture(1, "aisyah")}}
	a := testAssembler(repo, users, nil, nil, nil)

	env, err := a.Fetch(context.Background(), StrategyTopRated, Params{})
	require.NoError(t, err)

	require.Len(t, env.Posts, 1)
	assert.Equal(t, high.ID.Hex(), env.Posts[0].ID)
	assert.Equal(t, int64(1), env.Total)
}
