package service

import (
	"fmt"
	"sync/atomic"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/puck-savant/internal/metrics"
	"github.com/yourusername/puck-savant/internal/models"
)

// CacheKey identifies one prediction. Collaborator toggles are part of the key so
// runs with and without adjustments never share entries.
type CacheKey struct {
	Away         string
	Home         string
	Date         time.Time
	AwayGoalie   string
	HomeGoalie   string
	WithGoalie   bool
	WithSchedule bool
}

// String returns string representation of cache key
func (k CacheKey) String() string {
	return fmt.Sprintf("%s@%s:%s:%s:%s:%t:%t",
		k.Away, k.Home, k.Date.Format("2006-01-02"), k.AwayGoalie, k.HomeGoalie, k.WithGoalie, k.WithSchedule)
}

// PredictionCache provides in-memory caching for game predictions
type PredictionCache struct {
	cache  *cache.Cache
	ttl    time.Duration
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewPredictionCache creates a new prediction cache
func NewPredictionCache(ttl time.Duration) *PredictionCache {
	return &PredictionCache{
		cache: cache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

// Get retrieves a cached prediction
func (pc *PredictionCache) Get(key CacheKey) (models.Game, bool) {
	if v, found := pc.cache.Get(key.String()); found {
		if game, ok := v.(models.Game); ok {
			pc.hits.Add(1)
			return game, true
		}
	}
	pc.misses.Add(1)
	return models.Game{}, false
}

// Set stores a prediction in cache
func (pc *PredictionCache) Set(key CacheKey, game models.Game) {
	pc.cache.Set(key.String(), game, pc.ttl)
	metrics.UpdateCacheItems(pc.cache.ItemCount())
}

// Flush drops every cached prediction.
func (pc *PredictionCache) Flush() {
	pc.cache.Flush()
	metrics.UpdateCacheItems(0)
}

// Stats returns hit and miss counts since creation.
func (pc *PredictionCache) Stats() (hits, misses uint64) {
	return pc.hits.Load(), pc.misses.Load()
}

// ItemCount returns the number of cached predictions, expired ones included until cleanup.
func (pc *PredictionCache) ItemCount() int {
	return pc.cache.ItemCount()
}
