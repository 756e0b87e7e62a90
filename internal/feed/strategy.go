package feed

import (
	"strings"

	"github.com/makanlah-app/backend/internal/apperr"
)

// Strategy selects one feed variant. All variants share the same fetch
// contract: a page of posts plus the total size of the candidate set.
type Strategy string

const (
	StrategyAll         Strategy = "all"
	StrategyTrending    Strategy = "trending"
	StrategyFollowing   Strategy = "following"
	StrategyCategory    Strategy = "category"
	StrategyCuisine     Strategy = "cuisine"
	StrategyTopRated    Strategy = "top_rated"
	StrategyNearby      Strategy = "nearby"
	StrategyRecommended Strategy = "recommended"
	StrategyAuthor      Strategy = "author"
)

// ParseStrategy resolves a strategy by name. An empty name selects the
// default feed (newest first).
func ParseStrategy(raw string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		return StrategyAll, nil
	case StrategyAll, StrategyTrending, StrategyFollowing, StrategyCategory,
		StrategyCuisine, StrategyTopRated, StrategyNearby, StrategyRecommended,
		StrategyAuthor:
		return Strategy(strings.ToLower(strings.TrimSpace(raw))), nil
	default:
		return "", apperr.InvalidArgument("unknown feed strategy: " + raw)
	}
}

const (
	// DefaultLimit is the page size used when the caller supplies none.
	DefaultLimit = 10
	// MaxLimit caps the page size a caller may request.
	MaxLimit = 50
	// DefaultMinRating is the top-rated threshold when none is configured.
	DefaultMinRating = 4
)

// Params carries the pagination and strategy-specific inputs of a fetch.
// ViewerID is zero for anonymous viewers.
type Params struct {
	Page      int
	Limit     int
	ViewerID  uint
	Category  string
	Cuisine   string
	Username  string
	AuthorID  uint
	Latitude  *float64
	Longitude *float64
	MinRating int
}

// normalized coerces out-of-range pagination inputs instead of rejecting
// them: page < 1 becomes 1, a missing or oversized limit becomes the default.
func (p Params) normalized() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 || p.Limit > MaxLimit {
		p.Limit = DefaultLimit
	}
	if p.MinRating < 1 || p.MinRating > 5 {
		p.MinRating = DefaultMinRating
	}
	return p
}

func (p Params) skip() int64 {
	return int64((p.Page - 1) * p.Limit)
}
