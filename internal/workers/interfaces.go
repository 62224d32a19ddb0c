// Package workers provides abstractions for running background workers.
// It defines the Worker interface, a Workers aggregate that runs several
// workers side by side, and a Poller that repeats a task on an interval.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
// Run blocks until the work is done or ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}
