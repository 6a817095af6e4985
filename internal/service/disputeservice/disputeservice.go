package disputeservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/GlebRadaev/movebroker/internal/domain"
	"github.com/GlebRadaev/movebroker/internal/filestore"
	"github.com/GlebRadaev/movebroker/internal/notify"
	"github.com/GlebRadaev/movebroker/internal/pg"
	"github.com/GlebRadaev/movebroker/internal/registry"
	"github.com/GlebRadaev/movebroker/internal/tracing"
	"github.com/GlebRadaev/movebroker/pkg/auth"
	"go.uber.org/zap"
)

const (
	MaxAttachments = 5
	keyPrefix      = "disputes"
)

type OrderRepo interface {
	FindByID(ctx context.Context, orderID string, forUpdate bool) (*domain.Order, error)
}

type RequestRepo interface {
	FindByKey(ctx context.Context, requestType domain.RequestType, requestID int64, forUpdate bool) (*domain.Request, error)
}

type DisputeRepo interface {
	Create(ctx context.Context, dispute *domain.Dispute) (*domain.Dispute, error)
	FindByID(ctx context.Context, id int64) (*domain.Dispute, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.DisputeStatus) (bool, error)
}

type FileStore interface {
	UploadURL(ctx context.Context, key string) (string, error)
	DownloadURL(ctx context.Context, key string) (string, error)
}

type Notifier interface {
	Notify(ctx context.Context, n notify.Notification) error
}

type Service struct {
	txManager         pg.TXManager
	orderRepo         OrderRepo
	requestRepo       RequestRepo
	disputeRepo       DisputeRepo
	files             FileStore
	notifier          Notifier
	operatorMailboxID int64
	newKey            func(fileName string) string
}

func New(txManager pg.TXManager, orderRepo OrderRepo, requestRepo RequestRepo, disputeRepo DisputeRepo,
	files FileStore, notifier Notifier, operatorMailboxID int64) *Service {
	return &Service{
		txManager:         txManager,
		orderRepo:         orderRepo,
		requestRepo:       requestRepo,
		disputeRepo:       disputeRepo,
		files:             files,
		notifier:          notifier,
		operatorMailboxID: operatorMailboxID,
		newKey: func(fileName string) string {
			return filestore.NewKey(keyPrefix, fileName)
		},
	}
}

var (
	ErrDisputeNotFound    = fmt.Errorf("%w: dispute", domain.ErrNotFound)
	ErrDisputeNotVisible  = fmt.Errorf("%w: dispute", domain.ErrNotFoundOrForbidden)
	ErrSubjectNotVisible  = fmt.Errorf("%w: order or request", domain.ErrNotFoundOrForbidden)
	ErrAmbiguousSubject   = fmt.Errorf("%w: exactly one of order_id or request_type/request_id is required", domain.ErrValidation)
	ErrMissingCategory    = fmt.Errorf("%w: category is required", domain.ErrValidation)
	ErrMissingDescription = fmt.Errorf("%w: description is required", domain.ErrValidation)
	ErrTooManyAttachments = fmt.Errorf("%w: at most %d attachments", domain.ErrValidation, MaxAttachments)
	ErrInvalidStatus      = fmt.Errorf("%w: unknown dispute status", domain.ErrValidation)
	ErrInvalidTransition  = fmt.Errorf("%w: dispute status transition", domain.ErrInvalidState)
)

type CreateInput struct {
	OwnerEmail  string
	OrderID     *string
	RequestType *domain.RequestType
	RequestID   *int64
	Category    string
	Description string
	// Attachments are the file names the customer is about to upload.
	Attachments []string
}

type Attachment struct {
	Key string
	URL string
}

// View is a dispute with presigned URLs for its attachments.
type View struct {
	Dispute     *domain.Dispute
	Attachments []Attachment
}

func (in CreateInput) validate() error {
	hasOrder := in.OrderID != nil && *in.OrderID != ""
	hasRequest := in.RequestType != nil && in.RequestID != nil
	if hasOrder == hasRequest {
		return ErrAmbiguousSubject
	}
	if hasRequest && !registry.IsRegistered(*in.RequestType) {
		return registry.ErrUnknownRequestType
	}
	if strings.TrimSpace(in.Category) == "" {
		return ErrMissingCategory
	}
	if strings.TrimSpace(in.Description) == "" {
		return ErrMissingDescription
	}
	if len(in.Attachments) > MaxAttachments {
		return ErrTooManyAttachments
	}
	return nil
}

// Create files a dispute against an order or a request the caller owns and
// returns presigned upload URLs for the announced attachments.
func (s *Service) Create(ctx context.Context, in CreateInput) (*View, error) {
	ctx, span := tracing.StartSpan(ctx, "disputeservice.Create")
	defer span.End()

	if err := in.validate(); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(in.Attachments))
	for _, name := range in.Attachments {
		keys = append(keys, s.newKey(name))
	}

	var created *domain.Dispute
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		requestType, requestID, err := s.subject(ctx, in)
		if err != nil {
			return err
		}
		req, err := s.requestRepo.FindByKey(ctx, requestType, requestID, false)
		if err != nil {
			return err
		}
		if req == nil || auth.NormalizeEmail(req.RequesterEmail) != auth.NormalizeEmail(in.OwnerEmail) {
			return ErrSubjectNotVisible
		}
		created, err = s.disputeRepo.Create(ctx, &domain.Dispute{
			OrderID:        in.OrderID,
			RequestType:    &requestType,
			RequestID:      &requestID,
			RequesterEmail: auth.NormalizeEmail(in.OwnerEmail),
			Category:       strings.TrimSpace(in.Category),
			Description:    in.Description,
			AttachmentKeys: keys,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	attachments := make([]Attachment, 0, len(keys))
	for _, key := range keys {
		u, err := s.files.UploadURL(ctx, key)
		if err != nil {
			zap.L().Error("failed to presign attachment upload", zap.Int64("dispute_id", created.ID), zap.Error(err))
			return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
		}
		attachments = append(attachments, Attachment{Key: key, URL: u})
	}

	zap.L().Info("dispute submitted", zap.Int64("dispute_id", created.ID), zap.String("category", created.Category))
	if err := s.notifier.Notify(ctx, notify.Notification{
		RecipientID:   s.operatorMailboxID,
		RecipientType: notify.RecipientOperator,
		Template:      notify.TemplateDisputeSubmitted,
		Payload:       map[string]any{"dispute_id": created.ID, "category": created.Category},
	}); err != nil {
		zap.L().Error("failed to send notification", zap.Int64("dispute_id", created.ID), zap.Error(err))
	}

	return &View{Dispute: created, Attachments: attachments}, nil
}

// subject resolves the request a dispute is about.
func (s *Service) subject(ctx context.Context, in CreateInput) (domain.RequestType, int64, error) {
	if in.RequestType != nil {
		return *in.RequestType, *in.RequestID, nil
	}
	order, err := s.orderRepo.FindByID(ctx, *in.OrderID, false)
	if err != nil {
		return "", 0, err
	}
	if order == nil {
		return "", 0, ErrSubjectNotVisible
	}
	return order.RequestType, order.RequestID, nil
}

// Get returns a dispute to its owner or to an operator.
func (s *Service) Get(ctx context.Context, id int64, caller auth.Identity) (*View, error) {
	ctx, span := tracing.StartSpan(ctx, "disputeservice.Get")
	defer span.End()

	dispute, err := s.disputeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if dispute == nil {
		return nil, ErrDisputeNotVisible
	}
	if caller.Role != auth.RoleOperator && auth.NormalizeEmail(caller.Email) != auth.NormalizeEmail(dispute.RequesterEmail) {
		return nil, ErrDisputeNotVisible
	}

	attachments := make([]Attachment, 0, len(dispute.AttachmentKeys))
	for _, key := range dispute.AttachmentKeys {
		u, err := s.files.DownloadURL(ctx, key)
		if err != nil {
			zap.L().Error("failed to presign attachment download", zap.Int64("dispute_id", id), zap.Error(err))
			return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
		}
		attachments = append(attachments, Attachment{Key: key, URL: u})
	}
	return &View{Dispute: dispute, Attachments: attachments}, nil
}

// UpdateStatus moves a dispute one step along pending -> under_review -> resolved.
func (s *Service) UpdateStatus(ctx context.Context, id int64, to domain.DisputeStatus) (*domain.Dispute, error) {
	switch to {
	case domain.DisputePending, domain.DisputeUnderReview, domain.DisputeResolved:
	default:
		return nil, ErrInvalidStatus
	}

	var updated *domain.Dispute
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		dispute, err := s.disputeRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if dispute == nil {
			return ErrDisputeNotFound
		}
		if !domain.CanTransitionDispute(dispute.Status, to) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, dispute.Status, to)
		}
		ok, err := s.disputeRepo.UpdateStatus(ctx, id, dispute.Status, to)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, dispute.Status, to)
		}
		dispute.Status = to
		updated = dispute
		return nil
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("dispute status changed", zap.Int64("dispute_id", id), zap.String("status", string(to)))
	return updated, nil
}
