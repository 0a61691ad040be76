package ticket

import (
	"context"

	"allot/internal/core/apperror"
	"allot/internal/core/id"
	"allot/pkg/logger"
)

// Repository is the persistence contract for tickets.
type Repository interface {
	Create(ctx context.Context, t *Ticket) error
	Update(ctx context.Context, t *Ticket) error
	GetByID(ctx context.Context, ticketID id.ID) (*Ticket, error)
	GetByName(ctx context.Context, name string) (*Ticket, error)
	List(ctx context.Context) ([]*Ticket, error)
	Delete(ctx context.Context, ticketID id.ID) error
}

// Service provides business logic for the Ticket catalog.
type Service struct {
	repo Repository
}

// NewService creates a new Ticket service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new ticket. Names are unique.
func (s *Service) Create(ctx context.Context, t *Ticket) error {
	if err := t.Validate(ctx); err != nil {
		return err
	}

	existing, err := s.repo.GetByName(ctx, t.Name)
	if err != nil && !apperror.IsNotFound(err) {
		return err
	}
	if existing != nil {
		return apperror.NewDuplicate("ticket", "name", t.Name)
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return err
	}

	logger.Info(ctx, "ticket created", "id", t.ID, "name", t.Name)
	return nil
}

// Update validates and saves changes to a ticket.
func (s *Service) Update(ctx context.Context, t *Ticket) error {
	if err := t.Validate(ctx); err != nil {
		return err
	}

	existing, err := s.repo.GetByName(ctx, t.Name)
	if err != nil && !apperror.IsNotFound(err) {
		return err
	}
	if existing != nil && existing.ID != t.ID {
		return apperror.NewDuplicate("ticket", "name", t.Name)
	}

	return s.repo.Update(ctx, t)
}

// GetByID retrieves a ticket.
func (s *Service) GetByID(ctx context.Context, ticketID id.ID) (*Ticket, error) {
	return s.repo.GetByID(ctx, ticketID)
}

// GetByName retrieves a ticket by its unique name.
func (s *Service) GetByName(ctx context.Context, name string) (*Ticket, error) {
	return s.repo.GetByName(ctx, name)
}

// List returns all tickets.
func (s *Service) List(ctx context.Context) ([]*Ticket, error) {
	return s.repo.List(ctx)
}

// Delete marks a ticket as deleted.
func (s *Service) Delete(ctx context.Context, ticketID id.ID) error {
	return s.repo.Delete(ctx, ticketID)
}
