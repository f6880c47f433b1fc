package store

import (
	"context"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/flowboard/pkg/errors"
	"github.com/matzehuels/flowboard/pkg/graph"
)

// CollectionName is the MongoDB collection holding process documents.
const CollectionName = "processes"

// MongoStore keeps one MongoDB document per process, keyed by _id.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// mongoRecord adds the primary key to the persisted document.
type mongoRecord struct {
	ID             string `bson:"_id"`
	graph.Document `bson:",inline"`
}

// NewMongoStore connects to uri and uses the processes collection of
// database.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, persistenceError(err, "connect to mongo")
	}
	ping := func() error { return client.Ping(ctx, nil) }
	if err := retry(ctx, ConnectAttempts, ConnectDelay, ping); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, persistenceError(err, "ping mongo")
	}
	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(CollectionName),
	}, nil
}

func (s *MongoStore) Save(ctx context.Context, doc graph.Document) (err error) {
	start := time.Now()
	defer func() { observeSave(ctx, "mongo", doc.ProcessID, start, err) }()

	if err := errors.ValidateProcessID(doc.ProcessID); err != nil {
		return err
	}
	rec := mongoRecord{ID: doc.ProcessID, Document: stamp(doc)}
	_, err = s.collection.ReplaceOne(ctx,
		bson.M{"_id": doc.ProcessID},
		rec,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return persistenceError(err, "save process %s", doc.ProcessID)
	}
	return nil
}

func (s *MongoStore) Load(ctx context.Context, processID string) (doc graph.Document, err error) {
	start := time.Now()
	defer func() { observeLoad(ctx, "mongo", processID, start, err) }()

	if err := errors.ValidateProcessID(processID); err != nil {
		return graph.Document{}, err
	}
	var rec mongoRecord
	if err := s.collection.FindOne(ctx, bson.M{"_id": processID}).Decode(&rec); err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return graph.Document{}, ErrNotFound
		}
		return graph.Document{}, persistenceError(err, "load process %s", processID)
	}
	return rec.Document, nil
}

func (s *MongoStore) Delete(ctx context.Context, processID string) error {
	if err := errors.ValidateProcessID(processID); err != nil {
		return err
	}
	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": processID})
	if err != nil {
		return persistenceError(err, "delete process %s", processID)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, persistenceError(err, "list processes")
	}
	var recs []struct {
		ID string `bson:"_id"`
	}
	if err := cursor.All(ctx, &recs); err != nil {
		return nil, persistenceError(err, "list processes")
	}
	ids := make([]string, len(recs))
	for i, r := range recs {
		ids[i] = r.ID
	}
	return ids, nil
}

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
