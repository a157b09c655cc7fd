package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context bundles a request context with an optional GORM transaction.
// Stores that are not backed by gorm ignore Tx.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}

// Of wraps a plain context with no transaction.
func Of(ctx context.Context) Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return Context{Ctx: ctx}
}

// Context returns the request context, defaulting to Background.
func (c Context) Context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}
