package party

import (
	"context"

	"allot/internal/core/id"
	"allot/internal/domain/catalogs"
	"allot/pkg/logger"
)

// Repository is the persistence contract for parties.
type Repository interface {
	Create(ctx context.Context, p *Party) error
	Update(ctx context.Context, p *Party) error
	GetByID(ctx context.Context, partyID id.ID) (*Party, error)
	List(ctx context.Context) ([]*Party, error)
	Delete(ctx context.Context, partyID id.ID) error

	// MaxCodeForPrefix returns the highest display id in a first-letter
	// bucket, or empty string when the bucket has no entries.
	MaxCodeForPrefix(ctx context.Context, prefix string) (string, error)
}

// Service provides business logic for the Party catalog.
type Service struct {
	repo Repository
}

// NewService creates a new Party service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates a party, assigns its display id and persists it.
func (s *Service) Create(ctx context.Context, p *Party) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	if p.Code == "" {
		last, err := s.repo.MaxCodeForPrefix(ctx, catalogs.DisplayIDPrefix(p.Name))
		if err != nil {
			return err
		}
		code, err := catalogs.NextDisplayID(p.Name, last)
		if err != nil {
			return err
		}
		p.Code = code
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}

	logger.Info(ctx, "party created", "id", p.ID, "code", p.Code, "name", p.Name)
	return nil
}

// Update saves changes to a party. The display id is never regenerated.
func (s *Service) Update(ctx context.Context, p *Party) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}
	return s.repo.Update(ctx, p)
}

// GetByID retrieves a party.
func (s *Service) GetByID(ctx context.Context, partyID id.ID) (*Party, error) {
	return s.repo.GetByID(ctx, partyID)
}

// List returns all parties.
func (s *Service) List(ctx context.Context) ([]*Party, error) {
	return s.repo.List(ctx)
}

// Delete marks a party as deleted.
func (s *Service) Delete(ctx context.Context, partyID id.ID) error {
	return s.repo.Delete(ctx, partyID)
}
