package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/pageza/smartchef/backend/internal/logging"
)

// MongoConfig describes how to reach the document store.
type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// Mongo is the process-wide document store connection. It is created once
// by bootstrap and handed to whatever needs it.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// ConnectMongo connects and pings within cfg.ConnectTimeout. When that
// fails it retries once with certificate verification disabled, which lets
// hosts with an incomplete CA bundle reach TLS clusters. A second failure is
// returned to the caller; there is no later reconnect.
func ConnectMongo(ctx context.Context, cfg MongoConfig) (*Mongo, error) {
	logger := logging.For("database").WithField("mongo_database", cfg.Database)

	client, err := dialMongo(ctx, cfg, false)
	if err != nil {
		logger.WithError(err).Warn("MongoDB connection failed, retrying with relaxed TLS verification")
		client, err = dialMongo(ctx, cfg, true)
	}
	if err != nil {
		logger.WithError(err).Error("MongoDB unreachable")
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	logger.Info("Connected to MongoDB")
	return &Mongo{Client: client, DB: client.Database(cfg.Database)}, nil
}

func dialMongo(ctx context.Context, cfg MongoConfig, relaxTLS bool) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(cfg.ConnectTimeout).
		SetConnectTimeout(cfg.ConnectTimeout)
	if relaxTLS && opts.TLSConfig != nil {
		opts.TLSConfig.InsecureSkipVerify = true
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
