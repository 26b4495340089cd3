package preference

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pizza-orders-be/internal/logger"
	"pizza-orders-be/internal/order"

	"go.uber.org/zap"
)

// Repository is backed by the ui_preferences table.
type Repository struct {
	db *sql.DB
}

var _ order.PreferenceRepository = (*Repository)(nil)

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Load returns nil, nil when nothing has been stored under name.
func (r *Repository) Load(ctx context.Context, name string) (*order.Preferences, error) {
	log := logger.For(ctx, "repository", "Load").With(
		zap.String("name", name),
	)

	var payload []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT payload
		FROM ui_preferences
		WHERE name = $1
	`, name).Scan(&payload)

	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no stored preferences")
		return nil, nil
	}
	if err != nil {
		log.Error("failed to query preferences", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedLoad, err)
	}

	return decode(payload)
}

func (r *Repository) Save(ctx context.Context, name string, prefs order.Preferences) error {
	payload, err := encode(prefs)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedSave, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO ui_preferences (name, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()
	`, name, payload)
	if err != nil {
		logger.For(ctx, "repository", "Save").Error("failed to upsert preferences",
			zap.String("name", name),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", ErrFailedSave, err)
	}
	return nil
}
