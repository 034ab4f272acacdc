package configs

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ConnectDB builds the Mongo client. The connection itself is lazy, so an
// unreachable server does not keep the process from starting; reads degrade
// and writes report the outage instead (see stores).
func ConnectDB(ctx context.Context) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(EnvMongoURI()).
		SetServerSelectionTimeout(5*time.Second))
	if err != nil {
		return nil, err
	}
	return client, nil
}

// PingDB reports whether the server is currently reachable.
func PingDB(ctx context.Context, client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return client.Ping(ctx, readpref.Primary())
}

func GetCollection(client *mongo.Client, collectionName string) *mongo.Collection {
	return client.Database(EnvDBName()).Collection(collectionName)
}
