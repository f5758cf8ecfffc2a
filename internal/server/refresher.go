package server

import (
	"context"

	"pickleball-ticker-service/internal/refresher"
)

// Refresher defines the minimal refresher behavior needed by the server.
type Refresher interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() refresher.Status
}
