package database

import (
	"context"
)

// Driver is the database collaborator the service depends on. Pooling and
// connection reuse are left entirely to the implementation.
type Driver interface {
	// Select runs a query and scans every row into dest, a pointer to a slice.
	Select(ctx context.Context, dest any, sql string, args ...any) error

	// Ping tests the connection
	Ping(ctx context.Context) error
	Close() error

	DriverName() string
}
