package postgres

import (
	"context"
	"database/sql"
	"strings"

	_ "github.com/lib/pq"

	"github.com/bryanwahyu/contractlens/internal/infra/db/sqldb"
)

func Connect(ctx context.Context, dsn string, pool sqldb.Pool) (*sql.DB, error) {
	return sqldb.Open(ctx, "postgres", dsn, pool)
}

func stringOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
