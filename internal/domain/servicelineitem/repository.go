package servicelineitem

import "context"

// Repository defines the interface for service line item data access
type Repository interface {
	// ListByClientAndMonth returns the client's charges performed in the given calendar month
	ListByClientAndMonth(ctx context.Context, clientID string, year, month int) ([]*ServiceLineItem, error)
}
