package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// defaultDepartments are inserted once into an empty catalog so a fresh
// install has something to browse.
var defaultDepartments = []struct {
	Code string
	Name string
}{
	{"MATH", "Mathematics"},
	{"SCI", "Science"},
	{"LANG", "Languages"},
	{"ART", "Arts"},
}

// CreateDefaultData seeds default departments when the table is empty
func CreateDefaultData(ctx context.Context, db *pgxpool.Pool, lgr zerolog.Logger) error {
	var count int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM departments`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count departments: %w", err)
	}

	if count > 0 {
		return nil
	}

	for _, d := range defaultDepartments {
		_, err := db.Exec(ctx,
			`INSERT INTO departments (code, name) VALUES ($1, $2) ON CONFLICT (code) DO NOTHING`,
			d.Code, d.Name)
		if err != nil {
			return fmt.Errorf("failed to seed department %s: %w", d.Code, err)
		}
	}

	lgr.Info().Int("count", len(defaultDepartments)).Msg("Seeded default departments")
	return nil
}
