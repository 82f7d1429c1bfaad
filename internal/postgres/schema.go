package postgres

import (
	"context"
	_ "embed"

	ierr "github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/errors"
)

// Schema is the DDL for every table the billing engine reads or writes
//
//go:embed schema.sql
var Schema string

// ApplySchema runs Schema inside a single transaction
func (db *DB) ApplySchema(ctx context.Context) error {
	return db.WithTx(ctx, func(ctx context.Context) error {
		if _, err := db.GetQuerier(ctx).ExecContext(ctx, Schema); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to apply database schema").
				Mark(ierr.ErrDatabase)
		}
		return nil
	})
}
