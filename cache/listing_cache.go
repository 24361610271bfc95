package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tunevault/logger"
	"tunevault/model"
)

// Listing and dashboard responses are cheap to recompute but hammered by
// screen refreshes, so they get a short Redis TTL. All helpers degrade to
// a miss when Redis is down.
const listingTTL = 60 * time.Second

func popularKey(limit int) string {
	return fmt.Sprintf("popular:%d", limit)
}

const statsKey = "dashboard:stats"

// GetPopularSongs returns a cached popular listing, if present.
func GetPopularSongs(ctx context.Context, limit int) ([]*model.SongSummary, bool) {
	if RedisClient == nil {
		return nil, false
	}
	raw, err := RedisClient.Get(ctx, popularKey(limit)).Bytes()
	if err != nil {
		return nil, false
	}
	var songs []*model.SongSummary
	if err := json.Unmarshal(raw, &songs); err != nil {
		logger.Warn("Corrupt popular-songs cache entry", logger.ErrorField(err))
		return nil, false
	}
	return songs, true
}

// SetPopularSongs stores a popular listing.
func SetPopularSongs(ctx context.Context, limit int, songs []*model.SongSummary) {
	if RedisClient == nil {
		return
	}
	raw, err := json.Marshal(songs)
	if err != nil {
		return
	}
	if err := RedisClient.Set(ctx, popularKey(limit), raw, listingTTL).Err(); err != nil {
		logger.Warn("Failed to cache popular songs", logger.ErrorField(err))
	}
}

// InvalidatePopularSongs drops all cached popular listings. Called after an
// upload or play so rankings stay fresh within the TTL window.
func InvalidatePopularSongs(ctx context.Context) {
	if RedisClient == nil {
		return
	}
	iter := RedisClient.Scan(ctx, 0, "popular:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := RedisClient.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Warn("Failed to invalidate popular cache", logger.ErrorField(err))
		}
	}
}

// GetStats returns cached dashboard counters, if present.
func GetStats(ctx context.Context) (*model.Stats, bool) {
	if RedisClient == nil {
		return nil, false
	}
	raw, err := RedisClient.Get(ctx, statsKey).Bytes()
	if err != nil {
		return nil, false
	}
	stats := &model.Stats{}
	if err := json.Unmarshal(raw, stats); err != nil {
		return nil, false
	}
	return stats, true
}

// SetStats stores dashboard counters.
func SetStats(ctx context.Context, stats *model.Stats) {
	if RedisClient == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := RedisClient.Set(ctx, statsKey, raw, listingTTL).Err(); err != nil {
		logger.Warn("Failed to cache dashboard stats", logger.ErrorField(err))
	}
}
