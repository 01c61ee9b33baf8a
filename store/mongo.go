package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo is a Store keeping one document per key: {_id: key, value: value}.
type Mongo struct {
	coll    *mongo.Collection
	timeout time.Duration
}

var _ Store = (*Mongo)(nil)

type mongoEntry struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

// NewMongo creates a Mongo store on the given collection.
// timeout bounds every call, zero means 5 seconds.
func NewMongo(client *mongo.Client, dbName, collName string, timeout time.Duration) *Mongo {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Mongo{
		coll:    client.Database(dbName).Collection(collName),
		timeout: timeout,
	}
}

// ConnectMongo connects to uri and returns the store with its client, which the caller must disconnect.
func ConnectMongo(ctx context.Context, uri, dbName, collName string, timeout time.Duration) (*Mongo, *mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	return NewMongo(client, dbName, collName, timeout), client, nil
}

func (s *Mongo) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	var entry mongoEntry
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("mongo find %q: %w", key, err)
	}

	return entry.Value, true, nil
}

func (s *Mongo) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	_, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": key},
		bson.M{"$set": bson.M{"value": value}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongo upsert %q: %w", key, err)
	}
	return nil
}

func (s *Mongo) Remove(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("mongo delete %q: %w", key, err)
	}
	return nil
}
