package company

import "context"

// Repository defines the interface for company data access
type Repository interface {
	Get(ctx context.Context, id string) (*Company, error)
}
