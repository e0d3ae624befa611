package presets

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	ferrors "github.com/matzehuels/frosting/pkg/errors"
)

// Default MongoDB names.
const (
	DefaultDatabase   = "frosting"
	DefaultCollection = "presets"
)

const mongoTimeout = 5 * time.Second

// MongoStore keeps user presets in a MongoDB collection, one document per
// preset keyed by name.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to uri and checks the server is reachable.
func NewMongoStore(ctx context.Context, uri string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerSelectionTimeout(mongoTimeout))
	if err != nil {
		return nil, ferrors.Wrap(ferrors.ErrCodeInvalidConfig, err, "connect to mongodb")
	}
	pingCtx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, ferrors.Wrap(ferrors.ErrCodeInternal, err, "ping mongodb")
	}
	return NewMongoStoreFromClient(client, DefaultDatabase, DefaultCollection), nil
}

// NewMongoStoreFromClient wraps an existing client. Close disconnects it.
func NewMongoStoreFromClient(client *mongo.Client, database, collection string) *MongoStore {
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}
}

func (s *MongoStore) List(ctx context.Context) ([]Preset, error) {
	cur, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var out []Preset
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoStore) Get(ctx context.Context, name string) (Preset, error) {
	var p Preset
	err := s.coll.FindOne(ctx, byName(name)).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Preset{}, notFound(name)
	}
	if err != nil {
		return Preset{}, err
	}
	return p, nil
}

// Put upserts p.
func (s *MongoStore) Put(ctx context.Context, p Preset) error {
	if err := p.Validate(); err != nil {
		return err
	}
	_, err := s.coll.ReplaceOne(ctx, byName(p.Name), p, options.Replace().SetUpsert(true))
	return err
}

func (s *MongoStore) Delete(ctx context.Context, name string) error {
	res, err := s.coll.DeleteOne(ctx, byName(name))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return notFound(name)
	}
	return nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func byName(name string) bson.D {
	return bson.D{{Key: "_id", Value: name}}
}

var _ Store = (*MongoStore)(nil)
