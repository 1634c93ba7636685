package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/structviz/structviz/pkg/errors"
	"github.com/structviz/structviz/pkg/model"
)

// MongoConfig holds connection settings for the MongoDB-backed store.
type MongoConfig struct {
	URI        string        // connection string, e.g. "mongodb://localhost:27017"
	Database   string        // database name, defaults to "structviz"
	Collection string        // collection name, defaults to "workspaces"
	Timeout    time.Duration // connect timeout, defaults to 10s
}

// MongoStore is a MongoDB-backed workspace store for durable server
// deployments. Each workspace is one document keyed by its name.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB, verifies the connection, and ensures the
// unique index on workspace names.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	database := cfg.Database
	if database == "" {
		database = "structviz"
	}
	collection := cfg.Collection
	if collection == "" {
		collection = "workspaces"
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	coll := client.Database(database).Collection(collection)
	_, err = coll.Indexes().CreateOne(connectCtx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create workspace index: %w", err)
	}

	return &MongoStore{client: client, coll: coll}, nil
}

func (s *MongoStore) Get(ctx context.Context, name string) (model.Workspace, error) {
	if err := errors.ValidateWorkspaceName(name); err != nil {
		return model.Workspace{}, err
	}

	var ws model.Workspace
	err := s.coll.FindOne(ctx, bson.M{"name": name}).Decode(&ws)
	if err == mongo.ErrNoDocuments {
		return model.Workspace{}, errors.New(errors.ErrCodeWorkspaceNotFound, "workspace %q not found", name)
	}
	if err != nil {
		return model.Workspace{}, errors.Wrap(errors.ErrCodeStore, err, "read workspace %q", name)
	}
	return ws, nil
}

func (s *MongoStore) Save(ctx context.Context, ws model.Workspace) error {
	if err := errors.ValidateWorkspaceName(ws.Name); err != nil {
		return err
	}

	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"name": ws.Name},
		ws,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "write workspace %q", ws.Name)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateWorkspaceName(name); err != nil {
		return err
	}

	if _, err := s.coll.DeleteOne(ctx, bson.M{"name": name}); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "remove workspace %q", name)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	values, err := s.coll.Distinct(ctx, "name", bson.M{})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list workspaces")
	}

	names := make([]string, 0, len(values))
	for _, v := range values {
		if name, ok := v.(string); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
