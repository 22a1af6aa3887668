package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noobie-hq/noobie-api/internal/dto"
	"github.com/noobie-hq/noobie-api/internal/repository"
)

const leaderboardCacheKey = "leaderboard:top"

// LeaderboardService ranks interns by accumulated rating points.
type LeaderboardService interface {
	Top(ctx context.Context) (dto.LeaderboardResponse, error)
}

type leaderboardService struct {
	users    repository.UserRepository
	cache    *redis.Client
	cacheTTL time.Duration
	size     int
	logger   zerolog.Logger
}

// NewLeaderboardService builds the leaderboard aggregator.
func NewLeaderboardService(users repository.UserRepository, cache *redis.Client, ttl time.Duration, size int, logger zerolog.Logger) LeaderboardService {
	if size <= 0 {
		size = 10
	}

	return &leaderboardService{
		users:    users,
		cache:    cache,
		cacheTTL: ttl,
		size:     size,
		logger:   logger.With().Str("component", "leaderboard_service").Logger(),
	}
}

func (s *leaderboardService) Top(ctx context.Context) (dto.LeaderboardResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, leaderboardCacheKey).Result(); err == nil {
			var entries []dto.LeaderboardEntry
			if unmarshalErr := json.Unmarshal([]byte(cached), &entries); unmarshalErr == nil {
				s.logger.Debug().Msg("leaderboard cache hit")
				return dto.LeaderboardResponse{Entries: entries, CacheHit: true}, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read leaderboard cache")
		}
	}

	interns, err := s.users.TopByRating(ctx, s.size)
	if err != nil {
		return dto.LeaderboardResponse{}, err
	}

	entries := make([]dto.LeaderboardEntry, 0, len(interns))
	for idx, intern := range interns {
		entries = append(entries, dto.LeaderboardEntry{
			Rank:   idx + 1,
			Name:   intern.FullName(),
			Rating: intern.Rating,
		})
	}

	if s.cache != nil {
		if payload, err := json.Marshal(entries); err == nil {
			if err := s.cache.Set(ctx, leaderboardCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store leaderboard cache")
			}
		}
	}

	return dto.LeaderboardResponse{Entries: entries}, nil
}
