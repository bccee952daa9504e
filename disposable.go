package injector

import "context"

// Disposable is implemented by singletons that hold resources.
// The container calls Close when it is closed.
//
// Example:
//
//	type DatabaseConnection struct {
//	    conn *sql.DB
//	}
//
//	func (dc *DatabaseConnection) Close() error {
//	    return dc.conn.Close()
//	}
type Disposable interface {
	Close() error
}

// DisposableWithContext allows disposal with context for graceful shutdown.
// The context is the one passed to Container.CloseContext.
type DisposableWithContext interface {
	// Close disposes the resource with the provided context.
	// Implementations should respect context cancellation.
	Close(ctx context.Context) error
}

func isDisposable(instance any) bool {
	switch instance.(type) {
	case DisposableWithContext, Disposable:
		return true
	default:
		return false
	}
}

func dispose(ctx context.Context, instance any) error {
	switch d := instance.(type) {
	case DisposableWithContext:
		return d.Close(ctx)
	case Disposable:
		return d.Close()
	default:
		return nil
	}
}
