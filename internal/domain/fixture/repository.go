package fixture

import (
	"context"
	"time"
)

// Repository persists fixtures keyed by their provider fixture id.
type Repository interface {
	Upsert(ctx context.Context, item Fixture) error
	GetByID(ctx context.Context, fixtureID int64) (Fixture, bool, error)
	ListByDate(ctx context.Context, date time.Time, leagueIDs []int64) ([]Fixture, error)
	CountByDate(ctx context.Context, date time.Time) (int, error)
	DeleteByDate(ctx context.Context, date time.Time) (int, error)
}
