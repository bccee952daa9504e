package injector

import "context"

type contextKey struct{}

// WithContainer returns a copy of ctx that carries c.
func WithContainer(ctx context.Context, c *Container) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// FromContext returns the container carried by ctx, or ErrNoContainer.
func FromContext(ctx context.Context) (*Container, error) {
	if ctx == nil {
		return nil, ErrNoContainer
	}

	c, ok := ctx.Value(contextKey{}).(*Container)
	if !ok || c == nil {
		return nil, ErrNoContainer
	}

	return c, nil
}
