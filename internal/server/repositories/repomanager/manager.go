package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/adminvote/internal/dbx"
	"github.com/dmitrijs2005/adminvote/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a connection or transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}
