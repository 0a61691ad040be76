package distributor

import (
	"context"

	"allot/internal/core/id"
	"allot/internal/domain/catalogs"
	"allot/pkg/logger"
)

// Repository is the persistence contract for distributors.
type Repository interface {
	Create(ctx context.Context, d *Distributor) error
	Update(ctx context.Context, d *Distributor) error
	GetByID(ctx context.Context, distributorID id.ID) (*Distributor, error)
	List(ctx context.Context) ([]*Distributor, error)
	Delete(ctx context.Context, distributorID id.ID) error

	// MaxCodeForPrefix returns the highest display id in a first-letter
	// bucket, or empty string when the bucket has no entries.
	MaxCodeForPrefix(ctx context.Context, prefix string) (string, error)
}

// Service provides business logic for the Distributor catalog.
type Service struct {
	repo Repository
}

// NewService creates a new Distributor service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates a distributor, assigns its display id and persists it.
func (s *Service) Create(ctx context.Context, d *Distributor) error {
	if err := d.Validate(ctx); err != nil {
		return err
	}

	if d.Code == "" {
		last, err := s.repo.MaxCodeForPrefix(ctx, catalogs.DisplayIDPrefix(d.Name))
		if err != nil {
			return err
		}
		code, err := catalogs.NextDisplayID(d.Name, last)
		if err != nil {
			return err
		}
		d.Code = code
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return err
	}

	logger.Info(ctx, "distributor created", "id", d.ID, "code", d.Code, "name", d.Name)
	return nil
}

// Update saves changes to a distributor. The display id is never
// regenerated, even if the name changes.
func (s *Service) Update(ctx context.Context, d *Distributor) error {
	if err := d.Validate(ctx); err != nil {
		return err
	}
	return s.repo.Update(ctx, d)
}

// GetByID retrieves a distributor.
func (s *Service) GetByID(ctx context.Context, distributorID id.ID) (*Distributor, error) {
	return s.repo.GetByID(ctx, distributorID)
}

// List returns all distributors.
func (s *Service) List(ctx context.Context) ([]*Distributor, error) {
	return s.repo.List(ctx)
}

// Delete marks a distributor as deleted.
func (s *Service) Delete(ctx context.Context, distributorID id.ID) error {
	return s.repo.Delete(ctx, distributorID)
}
