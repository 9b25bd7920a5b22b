package shared

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// NewDatabase connects to the document store described by cfg and pings the primary.
//
// Connect and ping share the configured timeout. The caller owns the returned client and must Disconnect it.
func NewDatabase(ctx context.Context, cfg DatabaseConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout())
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI()).
		SetAppName("jukeseed").
		SetConnectTimeout(cfg.Timeout())

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect: %w", ErrConnection, err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: failed to ping database: %w", ErrConnection, err)
	}

	return client, nil
}
