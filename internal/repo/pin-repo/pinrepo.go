package pinrepo

import (
	"context"
	"errors"

	"github.com/GlebRadaev/movebroker/internal/domain"
	"github.com/GlebRadaev/movebroker/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (repo *Repository) FindByEmail(ctx context.Context, email string) (*domain.CustomerPIN, error) {
	var pin domain.CustomerPIN
	err := repo.db.QueryRow(ctx, "SELECT email, pin_hash, updated_at FROM customer_pins WHERE email = lower($1)", email).
		Scan(&pin.Email, &pin.PinHash, &pin.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find customer pin", zap.Error(err))
		return nil, err
	}
	return &pin, nil
}

func (repo *Repository) Save(ctx context.Context, email, pinHash string) error {
	query := `
		INSERT INTO customer_pins (email, pin_hash)
		VALUES (lower($1), $2)
		ON CONFLICT (email) DO UPDATE
		SET pin_hash = EXCLUDED.pin_hash, updated_at = NOW()
	`
	_, err := repo.db.Exec(ctx, query, email, pinHash)
	if err != nil {
		zap.L().Error("can't save customer pin", zap.Error(err))
		return err
	}
	return nil
}
