// Package handlers implements the command logic behind the CLI surface.
package handlers

import (
	"context"

	"github.com/imamik/imageboot/internal/config"
	"github.com/imamik/imageboot/internal/metadata"
)

// resolver is the slice of the metadata resolver the handlers need.
type resolver interface {
	Resolve(ctx context.Context, key string) (string, error)
}

// newResolver builds the production resolver. Replaced in tests.
var newResolver = func(cfg *config.Settings) resolver {
	client := metadata.NewClient(cfg.MetadataRoot, cfg.MetadataFlavor, nil)
	return metadata.NewResolver(client, metadata.Policy{
		MaxAttempts: cfg.MaxAttempts,
		Interval:    cfg.RetryInterval,
	})
}

// Resolve looks up one metadata key with instance-to-project fallback
// and bounded retry, returning its raw value.
func Resolve(ctx context.Context, key string) (string, error) {
	cfg := config.Load()
	return newResolver(cfg).Resolve(ctx, key)
}
