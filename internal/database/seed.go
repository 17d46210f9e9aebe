package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// SeedFellows are the fellows Seed inserts, in id order.
var SeedFellows = []string{"Maya", "Reuben", "Gonzalo", "Ben"}

// Seed replaces all data with the demo fixtures: every fellow from
// SeedFellows plus one greeting post each. Ids restart at 1, so the
// first fellow is always id 1.
//
// It runs in one transaction; a failure leaves the existing data untouched.
func Seed(ctx context.Context, store Store) error {
	return WithTx(ctx, store, func(tx pgx.Tx) error {
		reset := []string{
			`DELETE FROM posts`,
			`DELETE FROM fellows`,
			`ALTER SEQUENCE posts_id_seq RESTART WITH 1`,
			`ALTER SEQUENCE fellows_id_seq RESTART WITH 1`,
		}
		for _, stmt := range reset {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("seed reset %q: %w", stmt, err)
			}
		}

		batch := &pgx.Batch{}
		for _, name := range SeedFellows {
			batch.Queue(`INSERT INTO fellows (name) VALUES ($1)`, name)
		}
		for i, name := range SeedFellows {
			batch.Queue(
				`INSERT INTO posts (post_content, fellow_id) VALUES ($1, $2)`,
				"hello world i am "+strings.ToLower(name),
				i+1,
			)
		}

		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("seed inserts: %w", err)
		}
		return nil
	})
}
