// Package repomanager wires the relational repositories to a shared
// database handle and runs schema migrations at startup.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/securepass/internal/server/repositories/entries"
	"github.com/dmitrijs2005/securepass/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Entries() entries.Repository
	Close() error
}
