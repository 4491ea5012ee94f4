// Package db wires the repository constructors together and runs the
// embedded schema migrations.
package db

import (
	"context"
	"database/sql"

	"github.com/skyworks-mro/pirdesk/internal/server/sheet"
	"github.com/skyworks-mro/pirdesk/internal/server/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Sheets() sheet.Repository
}
