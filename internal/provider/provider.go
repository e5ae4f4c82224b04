// Package provider talks to the database management layer of a SQL
// Server instance. Everything it exposes is read-only.
package provider

import (
	"context"

	"github.com/shoestringdba/Check-SqlInstance/internal/models"
)

// Provider resolves an instance and enumerates its databases.
type Provider interface {
	// ResolveInstance returns the instance snapshot with its server
	// configuration populated, or an error with no partial result.
	ResolveInstance(ctx context.Context, name string) (*models.Instance, error)

	// ListDatabases returns the instance's databases in report order:
	// system databases first, then ascending by name.
	ListDatabases(ctx context.Context, inst *models.Instance) ([]models.Database, error)

	Close() error
}
