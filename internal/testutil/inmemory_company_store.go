package testutil

import (
	"context"

	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/company"
	ierr "github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/errors"
)

// InMemoryCompanyStore implements company.Repository
type InMemoryCompanyStore struct {
	*InMemoryStore[*company.Company]
}

func NewInMemoryCompanyStore() *InMemoryCompanyStore {
	return &InMemoryCompanyStore{
		InMemoryStore: NewInMemoryStore[*company.Company](),
	}
}

func copyCompany(c *company.Company) *company.Company {
	if c == nil {
		return nil
	}
	cp := *c
	if c.TaxRate != nil {
		rate := *c.TaxRate
		cp.TaxRate = &rate
	}
	return &cp
}

func (s *InMemoryCompanyStore) Create(ctx context.Context, c *company.Company) error {
	return s.InMemoryStore.Create(ctx, c.ID, copyCompany(c))
}

func (s *InMemoryCompanyStore) Get(ctx context.Context, id string) (*company.Company, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Company not found").
			Mark(ierr.ErrNotFound)
	}
	return copyCompany(c), nil
}
