package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type DB struct {
	Client *mongo.Client
	db     *mongo.Database
}

// Connect opens a bounded client pool and verifies it with a ping. The
// returned DB is shared by all requests until Close.
func Connect(ctx context.Context, uri, database string, maxConns, minConns int) (*DB, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(uint64(maxConns)).
		SetMinPoolSize(uint64(minConns)).
		SetServerSelectionTimeout(10 * time.Second).
		SetSocketTimeout(45 * time.Second)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return &DB{Client: client, db: client.Database(database)}, nil
}

func (db *DB) Ping(ctx context.Context) error { return db.Client.Ping(ctx, readpref.Primary()) }

func (db *DB) Close(ctx context.Context) error { return db.Client.Disconnect(ctx) }
