// Package mongodb implements the ticket persistence adapters.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	connectTimeout = 10 * time.Second

	// Ticket traffic is bursty (form submissions) but low-volume per
	// connection; a moderate pool with a long idle window avoids churn.
	maxPoolSize     = 64
	minPoolSize     = 8
	maxConnIdleTime = 5 * time.Minute
)

// NewClient connects and verifies the deployment is reachable. The ticket
// store is required infrastructure, so a failed ping is fatal to startup.
func NewClient(url, appName string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(url).
		SetAppName(appName).
		SetMaxPoolSize(maxPoolSize).
		SetMinPoolSize(minPoolSize).
		SetMaxConnIdleTime(maxConnIdleTime).
		SetRetryWrites(true)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	return client, nil
}
