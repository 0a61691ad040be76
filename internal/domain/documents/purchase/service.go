package purchase

import (
	"context"
	"fmt"
	"time"

	"allot/internal/core/entity"
	"allot/internal/core/id"
	"allot/internal/core/numerator"
	"allot/internal/core/tx"
	"allot/internal/core/types"
	"allot/internal/domain/catalogs/ticket"
	"allot/internal/domain/ledger"
	"allot/internal/domain/notes"
	"allot/pkg/logger"
)

// ListFilter scopes purchase listing.
type ListFilter struct {
	DistributorID *id.ID
	DateFrom      *time.Time
	DateTo        *time.Time
	Limit         int
	Offset        int
}

// Repository is the persistence contract for purchase documents.
type Repository interface {
	Create(ctx context.Context, doc *Purchase) error
	SaveLines(ctx context.Context, docID id.ID, lines []Line) error
	GetByID(ctx context.Context, docID id.ID) (*Purchase, error)
	GetLines(ctx context.Context, docID id.ID) ([]Line, error)
	List(ctx context.Context, filter ListFilter) ([]*Purchase, error)

	// Delete hard-deletes the header and its lines.
	Delete(ctx context.Context, docID id.ID) error
}

// TicketResolver resolves ticket references on document lines.
type TicketResolver interface {
	GetByID(ctx context.Context, ticketID id.ID) (*ticket.Ticket, error)
}

// Auditor records document lifecycle events. Optional.
type Auditor interface {
	LogChange(ctx context.Context, entityType string, entityID id.ID, action string, changes map[string]any) error
}

// Service provides business operations for purchase documents.
type Service struct {
	repo      Repository
	tickets   TicketResolver
	ledger    *ledger.Service
	numerator numerator.Generator
	txManager tx.Manager
	auditor   Auditor
}

// NewService creates a new purchase service.
func NewService(
	repo Repository,
	tickets TicketResolver,
	ledgerSvc *ledger.Service,
	gen numerator.Generator,
	txManager tx.Manager,
	auditor Auditor,
) *Service {
	return &Service{
		repo:      repo,
		tickets:   tickets,
		ledger:    ledgerSvc,
		numerator: gen,
		txManager: txManager,
		auditor:   auditor,
	}
}

// Create persists a purchase atomically: header (with generated number
// and rendered notes), lines, and one positive ledger delta per line.
func (s *Service) Create(ctx context.Context, doc *Purchase) error {
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	deltas, err := s.enrich(ctx, doc)
	if err != nil {
		return err
	}

	if doc.Number == "" {
		cfg := numerator.DefaultConfig("PUR")
		number, err := s.numerator.GetNextNumber(ctx, cfg, numerator.DefaultOptions(), doc.Date)
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		doc.Number = number
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		if err := s.ledger.Append(ctx, deltas); err != nil {
			return fmt.Errorf("append ledger: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if s.auditor != nil {
		if err := s.auditor.LogChange(ctx, "Purchase", doc.ID, "create", map[string]any{
			"number": doc.Number,
			"notes":  doc.Notes,
		}); err != nil {
			logger.Warn(ctx, "audit log failed", "error", err)
		}
	}

	logger.Info(ctx, "purchase created",
		"id", doc.ID,
		"number", doc.Number,
		"total_qty", doc.TotalQty)

	return nil
}

// enrich resolves tickets, fills per-line qty and amount, renders the
// notes wire format and builds the ledger deltas.
func (s *Service) enrich(ctx context.Context, doc *Purchase) ([]entity.StockDelta, error) {
	entries := make([]notes.Entry, 0, len(doc.Lines))
	deltas := make([]entity.StockDelta, 0, len(doc.Lines))

	doc.TotalQty = 0
	doc.TotalAmount = types.Zero()

	for i := range doc.Lines {
		line := &doc.Lines[i]

		tk, err := s.tickets.GetByID(ctx, line.TicketID)
		if err != nil {
			return nil, err
		}

		length := line.ToNo - line.FromNo + 1
		line.Qty = length * tk.Multiplier()
		line.Amount = line.Rate.Mul(types.NewMoney(float64(line.Qty)))

		doc.TotalQty += line.Qty
		doc.TotalAmount = doc.TotalAmount.Add(line.Amount)

		entries = append(entries, notes.Entry{
			Ticket: tk.Name,
			Series: line.Series,
			FromNo: line.FromNo,
			ToNo:   line.ToNo,
			Qty:    line.Qty,
			Rate:   line.Rate,
		})

		deltas = append(deltas, entity.NewStockDelta(
			doc.ID,
			entity.DeltaTypePurchase,
			doc.Date,
			line.TicketID,
			types.NewQuantityFromInt64(line.Qty),
		))
	}

	doc.Notes = notes.Render(entries)
	return deltas, nil
}

// GetByID retrieves a purchase with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Purchase, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines

	return doc, nil
}

// List retrieves purchases with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Purchase, error) {
	return s.repo.List(ctx, filter)
}

// Delete removes a purchase, its lines and its ledger movements atomically.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.ledger.DeleteBySource(ctx, docID); err != nil {
			return fmt.Errorf("delete ledger movements: %w", err)
		}
		if err := s.repo.Delete(ctx, docID); err != nil {
			return fmt.Errorf("delete document: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if s.auditor != nil {
		if err := s.auditor.LogChange(ctx, "Purchase", docID, "delete", map[string]any{
			"number": doc.Number,
		}); err != nil {
			logger.Warn(ctx, "audit log failed", "error", err)
		}
	}

	logger.Info(ctx, "purchase deleted", "id", docID, "number", doc.Number)
	return nil
}
