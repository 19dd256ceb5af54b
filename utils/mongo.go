package utils

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ErrNotConnected is returned by Handle before Connect has succeeded.
var ErrNotConnected = errors.New("mongo: not connected, call Connect first")

var (
	mu     sync.Mutex
	client *mongo.Client
	handle *mongo.Database
)

// Connect opens the MongoDB connection and returns the database handle.
// It is idempotent: after the first successful call every later call
// returns the cached handle without dialing again.
func Connect(uri, dbName string) (*mongo.Database, error) {
	mu.Lock()
	defer mu.Unlock()

	if handle != nil {
		return handle, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := c.Ping(ctx, readpref.Primary()); err != nil {
		_ = c.Disconnect(ctx)
		return nil, err
	}

	client = c
	handle = c.Database(dbName)
	return handle, nil
}

// Handle returns the cached database handle.
func Handle() (*mongo.Database, error) {
	mu.Lock()
	defer mu.Unlock()
	if handle == nil {
		return nil, ErrNotConnected
	}
	return handle, nil
}

// Disconnect closes the cached client, if any.
func Disconnect(ctx context.Context) error {
	mu.Lock()
	defer mu.Unlock()
	if client == nil {
		return nil
	}
	err := client.Disconnect(ctx)
	client = nil
	handle = nil
	return err
}

// GetCollection returns a collection reference from the given database handle.
func GetCollection(db *mongo.Database, name string) *mongo.Collection {
	return db.Collection(name)
}
