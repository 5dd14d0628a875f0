package storage

import (
	"github.com/blockday/blockday/internal/storage/postgres"
	"github.com/blockday/blockday/internal/storage/sqlite"
)

var (
	_ Provider = (*sqlite.Store)(nil)
	_ Provider = (*postgres.Store)(nil)
)

// NewProvider selects a backend from the configured location: a PostgreSQL
// connection string or a SQLite file path.
func NewProvider(location string) Provider {
	if IsPostgresConnString(location) {
		return postgres.New(location)
	}
	return sqlite.NewStore(location)
}
