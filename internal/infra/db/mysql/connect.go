package mysql

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"

	"github.com/bryanwahyu/contractlens/internal/infra/db/sqldb"
)

// Connect opens a MySQL pool. The DSN must carry parseTime=true.
func Connect(ctx context.Context, dsn string, pool sqldb.Pool) (*sql.DB, error) {
	return sqldb.Open(ctx, "mysql", dsn, pool)
}
