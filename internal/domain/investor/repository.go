package investor

import "context"

type Repository interface {
	// GetOrCreate returns the profile for userID, inserting defaults on first use.
	// Concurrent first calls for the same user yield a single row.
	GetOrCreate(ctx context.Context, userID, name string) (*Investor, error)
	GetByUserID(ctx context.Context, userID string) (*Investor, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*Investor, error)
	// UpdateProfile writes only the preference columns.
	UpdateProfile(ctx context.Context, inv *Investor) error
	// UpdateRollup writes only the derived columns.
	UpdateRollup(ctx context.Context, inv *Investor) error
}
