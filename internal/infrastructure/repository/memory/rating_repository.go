package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/fantachat/fantachat-api/internal/domain/rating"
)

type RatingRepository struct {
	mu    sync.RWMutex
	items map[string]map[string]rating.Rating
}

func NewRatingRepository() *RatingRepository {
	return &RatingRepository{items: make(map[string]map[string]rating.Rating)}
}

func (r *RatingRepository) UpsertBulk(_ context.Context, matchdayID string, items []rating.Rating) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byPlayer := r.items[matchdayID]
	if byPlayer == nil {
		byPlayer = make(map[string]rating.Rating, len(items))
		r.items[matchdayID] = byPlayer
	}
	for _, item := range items {
		byPlayer[item.PlayerID] = item
	}

	return len(items), nil
}

func (r *RatingRepository) ListByMatchday(_ context.Context, matchdayID string) ([]rating.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]rating.Rating, 0, len(r.items[matchdayID]))
	for _, item := range r.items[matchdayID] {
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })

	return out, nil
}
