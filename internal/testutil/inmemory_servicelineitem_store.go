package testutil

import (
	"context"
	"sync"

	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/servicelineitem"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/types"
)

// InMemoryServiceLineItemStore implements servicelineitem.Repository
type InMemoryServiceLineItemStore struct {
	*InMemoryStore[*servicelineitem.ServiceLineItem]

	mu       sync.Mutex
	failures map[types.BillingMonth]error
}

func NewInMemoryServiceLineItemStore() *InMemoryServiceLineItemStore {
	return &InMemoryServiceLineItemStore{
		InMemoryStore: NewInMemoryStore[*servicelineitem.ServiceLineItem](),
		failures:      make(map[types.BillingMonth]error),
	}
}

func (s *InMemoryServiceLineItemStore) Create(ctx context.Context, item *servicelineitem.ServiceLineItem) error {
	cp := *item
	return s.InMemoryStore.Create(ctx, item.ID, &cp)
}

// FailMonth makes every lookup for (year, month) return err
func (s *InMemoryServiceLineItemStore) FailMonth(year, month int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[types.BillingMonth{Year: year, Month: month}] = err
}

func (s *InMemoryServiceLineItemStore) ListByClientAndMonth(ctx context.Context, clientID string, year, month int) ([]*servicelineitem.ServiceLineItem, error) {
	period, err := types.NewBillingMonth(year, month)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	failure := s.failures[period]
	s.mu.Unlock()
	if failure != nil {
		return nil, failure
	}

	items := s.InMemoryStore.List(ctx, func(_ context.Context, item *servicelineitem.ServiceLineItem) bool {
		return item.ClientID == clientID && period.Contains(item.PerformedDate)
	}, func(a, b *servicelineitem.ServiceLineItem) bool {
		if !a.PerformedDate.Equal(b.PerformedDate) {
			return a.PerformedDate.Before(b.PerformedDate)
		}
		return a.ID < b.ID
	})

	result := make([]*servicelineitem.ServiceLineItem, 0, len(items))
	for _, item := range items {
		cp := *item
		result = append(result, &cp)
	}
	return result, nil
}

// Clear removes all items and injected failures
func (s *InMemoryServiceLineItemStore) Clear() {
	s.InMemoryStore.Clear()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = make(map[types.BillingMonth]error)
}
