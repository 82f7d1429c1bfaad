package client

import "context"

// Repository defines the interface for client data access
type Repository interface {
	Get(ctx context.Context, id string) (*Client, error)
}
