package core

import "context"

// Worker is the long running process of a module. Run blocks until ctx is done or the worker fails.
type Worker interface {
	Run(ctx context.Context) error
}
