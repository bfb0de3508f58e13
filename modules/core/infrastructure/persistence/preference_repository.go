package persistence

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/meterdesk/meterdesk/pkg/composables"
	"github.com/meterdesk/meterdesk/pkg/tabular"
)

// PreferenceRepository persists per-user column and filter visibility as an
// ordered text[] per (user, table, kind). A missing row means "no
// preference"; resolution against the declared key set happens in the
// tabular package, not here.
type PreferenceRepository struct{}

func NewPreferenceRepository() tabular.PreferenceStore {
	return &PreferenceRepository{}
}

func (r *PreferenceRepository) Get(ctx context.Context, userID int, tableID, kind string) ([]string, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	var keys []string
	err = tx.QueryRow(ctx, `
		SELECT keys FROM table_preferences
		WHERE user_id = $1 AND table_id = $2 AND kind = $3`,
		userID, tableID, kind,
	).Scan(&keys)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to query table preference")
	}
	return keys, nil
}

func (r *PreferenceRepository) Set(ctx context.Context, userID int, tableID, kind string, keys []string) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO table_preferences (user_id, table_id, kind, keys, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (user_id, table_id, kind)
		DO UPDATE SET keys = EXCLUDED.keys, updated_at = now()`,
		userID, tableID, kind, keys,
	); err != nil {
		return errors.Wrap(err, "failed to save table preference")
	}
	return nil
}
