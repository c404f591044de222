package cron

import (
	"context"
	"log/slog"
	"time"
)

type refreshTokenStore interface {
	DeleteStaleRefreshTokens(ctx context.Context, cutoff time.Time) (int64, error)
}

type revocationList interface {
	PruneRevoked() int
}

// TokenJobs keeps the refresh token table and the in-memory access token
// blacklist from growing without bound.
type TokenJobs struct {
	refreshTokens refreshTokenStore
	revoked       revocationList
	retention     time.Duration
}

// NewTokenJobs keeps stale refresh tokens for retention before deleting them.
func NewTokenJobs(refreshTokens refreshTokenStore, revoked revocationList, retention time.Duration) *TokenJobs {
	return &TokenJobs{
		refreshTokens: refreshTokens,
		revoked:       revoked,
		retention:     retention,
	}
}

func (j *TokenJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("purge_stale_refresh_tokens", 1*time.Hour, j.PurgeStaleRefreshTokens)
	scheduler.AddJob("prune_revoked_access_tokens", 15*time.Minute, j.PruneRevokedAccessTokens)
}

func (j *TokenJobs) PurgeStaleRefreshTokens(ctx context.Context) error {
	deleted, err := j.refreshTokens.DeleteStaleRefreshTokens(ctx, time.Now().Add(-j.retention))
	if err != nil {
		return err
	}
	if deleted > 0 {
		slog.Info("Cron: purged stale refresh tokens", "count", deleted)
	}
	return nil
}

func (j *TokenJobs) PruneRevokedAccessTokens(ctx context.Context) error {
	if pruned := j.revoked.PruneRevoked(); pruned > 0 {
		slog.Info("Cron: pruned revoked access tokens", "count", pruned)
	}
	return nil
}
