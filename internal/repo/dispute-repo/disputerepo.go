package disputerepo

import (
	"context"
	"errors"

	"github.com/GlebRadaev/movebroker/internal/domain"
	"github.com/GlebRadaev/movebroker/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const disputeColumns = `id, order_id, request_type, request_id, requester_email, category, description,
        attachment_keys, status, created_at, updated_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanDispute(row pgx.Row) (*domain.Dispute, error) {
	var d domain.Dispute
	err := row.Scan(
		&d.ID, &d.OrderID, &d.RequestType, &d.RequestID, &d.RequesterEmail, &d.Category, &d.Description,
		&d.AttachmentKeys, &d.Status, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *Repository) Create(ctx context.Context, dispute *domain.Dispute) (*domain.Dispute, error) {
	query := `
        INSERT INTO disputes (order_id, request_type, request_id, requester_email, category, description, attachment_keys, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING ` + disputeColumns
	keys := dispute.AttachmentKeys
	if keys == nil {
		keys = []string{}
	}
	created, err := scanDispute(r.db.QueryRow(ctx, query,
		dispute.OrderID, dispute.RequestType, dispute.RequestID, dispute.RequesterEmail,
		dispute.Category, dispute.Description, keys, domain.DisputePending,
	))
	if err != nil {
		zap.L().Error("can't save dispute", zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*domain.Dispute, error) {
	query := `
        SELECT ` + disputeColumns + `
        FROM disputes
        WHERE id = $1
    `
	dispute, err := scanDispute(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find dispute", zap.Int64("dispute_id", id), zap.Error(err))
		return nil, err
	}
	return dispute, nil
}

// UpdateStatus applies from -> to only if the dispute is still in from.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.DisputeStatus) (bool, error) {
	query := `
        UPDATE disputes
        SET status = $1, updated_at = NOW()
        WHERE id = $2 AND status = $3
    `
	tag, err := r.db.Exec(ctx, query, to, id, from)
	if err != nil {
		zap.L().Error("failed to update dispute status", zap.Int64("dispute_id", id), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
