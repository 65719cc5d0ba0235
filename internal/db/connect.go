package db

import (
	"context"
	"time"

	"taskly/internal/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ClientOptions returns the driver options used by Connect: Stable API v1 in
// strict mode, and nested documents decoded as maps so they serialize to
// plain JSON objects.
func ClientOptions(uri string, timeout time.Duration) *options.ClientOptions {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)

	return options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(serverAPI).
		SetConnectTimeout(timeout).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})
}

// Connect opens the process-wide client and pings the primary. Failures are
// fatal.
func Connect(uri string, timeout time.Duration) *mongo.Client {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, ClientOptions(uri, timeout))
	if err != nil {
		logger.Fatal("failed to create database client", "error", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Fatal("failed to ping database", "error", err)
	}

	logger.Info("database connected")
	return client
}

// Disconnect closes the client, waiting at most timeout for in-flight
// operations.
func Disconnect(client *mongo.Client, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		logger.Error("failed to disconnect database", "error", err)
		return
	}
	logger.Info("database disconnected")
}
