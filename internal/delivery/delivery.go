// Package delivery defines the contract every transport-facing server
// (HTTP today, others later) fulfils so main can run them uniformly.
package delivery

import "context"

// Delivery is a long-running server bound to the application lifecycle.
type Delivery interface {
	// Serve blocks until the server stops or ctx is cancelled.
	Serve(ctx context.Context) error
}
