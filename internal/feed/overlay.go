package feed

import (
	"log"

	"github.com/makanlah-app/backend/internal/repositories"
)

// Overlay annotates a page of feed items with the viewer's liked/saved
// flags. It issues at most one batch query per relation kind, never one
// query per post.
type Overlay struct {
	likes repositories.LikeRepository
	saves repositories.SavedPostRepository
}

// NewOverlay creates a new Overlay
func NewOverlay(likes repositories.LikeRepository, saves repositories.SavedPostRepository) *Overlay {
	return &Overlay{likes: likes, saves: saves}
}

// Apply sets Liked and Saved on each item for the given viewer. With no
// viewer every item stays false and no query runs. A failed lookup degrades
// that flag to false for the whole page rather than failing the request;
// the degradation is logged so it is visible in production diagnostics.
func (o *Overlay) Apply(viewerID uint, items []Item) {
	if viewerID == 0 || len(items) == 0 {
		return
	}

	postIDs := make([]string, len(items))
	for i, item := range items {
		postIDs[i] = item.ID
	}

	likedMap, err := o.likes.GetLikedPostIDs(viewerID, postIDs)
	if err != nil {
		log.Printf("feed overlay: like lookup failed for user %d, degrading to liked=false: %v", viewerID, err)
		likedMap = nil
	}
	savedMap, err := o.saves.GetSavedPostIDs(viewerID, postIDs)
	if err != nil {
		log.Printf("feed overlay: save lookup failed for user %d, degrading to saved=false: %v", viewerID, err)
		savedMap = nil
	}

	for i := range items {
		items[i].Liked = likedMap[items[i].ID]
		items[i].Saved = savedMap[items[i].ID]
	}
}
