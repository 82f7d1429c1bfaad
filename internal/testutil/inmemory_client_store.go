package testutil

import (
	"context"

	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/client"
	ierr "github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/errors"
)

// InMemoryClientStore implements client.Repository
type InMemoryClientStore struct {
	*InMemoryStore[*client.Client]
}

func NewInMemoryClientStore() *InMemoryClientStore {
	return &InMemoryClientStore{
		InMemoryStore: NewInMemoryStore[*client.Client](),
	}
}

func copyClient(c *client.Client) *client.Client {
	if c == nil {
		return nil
	}
	cp := *c
	if c.DefaultTaxRate != nil {
		rate := *c.DefaultTaxRate
		cp.DefaultTaxRate = &rate
	}
	return &cp
}

func (s *InMemoryClientStore) Create(ctx context.Context, c *client.Client) error {
	return s.InMemoryStore.Create(ctx, c.ID, copyClient(c))
}

func (s *InMemoryClientStore) Get(ctx context.Context, id string) (*client.Client, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Client not found").
			Mark(ierr.ErrNotFound)
	}
	return copyClient(c), nil
}
