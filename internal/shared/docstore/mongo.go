package docstore

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoStore implements Store on a MongoDB database
type MongoStore struct {
	client     *mongo.Client
	db         *mongo.Database
	ownsClient bool
}

// Connect opens a client, verifies it with a ping and returns a store bound to dbName.
// The returned store owns the client and disconnects it on Close.
func Connect(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &MongoStore{
		client:     client,
		db:         client.Database(dbName),
		ownsClient: true,
	}, nil
}

// NewMongoStore wraps an existing database handle. Close does not disconnect its client.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{client: db.Client(), db: db}
}

// Database exposes the underlying handle
func (s *MongoStore) Database() *mongo.Database {
	return s.db
}

// Find implements Store
func (s *MongoStore) Find(ctx context.Context, collection string, q *Query, results interface{}) error {
	if err := checkSlicePtr(results); err != nil {
		return err
	}

	opts := options.Find()
	if sort := toSort(q); len(sort) > 0 {
		opts.SetSort(sort)
	}
	if q != nil && q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	cursor, err := s.db.Collection(collection).Find(ctx, toFilter(q), opts)
	if err != nil {
		return fmt.Errorf("find in %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, results); err != nil {
		return fmt.Errorf("decode %s: %w", collection, err)
	}
	return nil
}

// FindOne implements Store
func (s *MongoStore) FindOne(ctx context.Context, collection string, q *Query, result interface{}) error {
	opts := options.FindOne()
	if sort := toSort(q); len(sort) > 0 {
		opts.SetSort(sort)
	}

	err := s.db.Collection(collection).FindOne(ctx, toFilter(q), opts).Decode(result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return fmt.Errorf("find one in %s: %w", collection, err)
	}
	return nil
}

// Count implements Store
func (s *MongoStore) Count(ctx context.Context, collection string, q *Query) (int64, error) {
	n, err := s.db.Collection(collection).CountDocuments(ctx, toFilter(q))
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return n, nil
}

// Insert implements Store
func (s *MongoStore) Insert(ctx context.Context, collection string, doc interface{}) error {
	if _, err := s.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %v", ErrDuplicate, err)
		}
		return fmt.Errorf("insert into %s: %w", collection, err)
	}
	return nil
}

// DeleteOne implements Store
func (s *MongoStore) DeleteOne(ctx context.Context, collection string, q *Query) (int64, error) {
	res, err := s.db.Collection(collection).DeleteOne(ctx, toFilter(q))
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", collection, err)
	}
	return res.DeletedCount, nil
}

// EnsureIndex implements Store
func (s *MongoStore) EnsureIndex(ctx context.Context, collection string, idx Index) error {
	model := mongo.IndexModel{
		Keys:    bson.D{{Key: idx.Field, Value: 1}},
		Options: options.Index().SetUnique(idx.Unique),
	}
	if _, err := s.db.Collection(collection).Indexes().CreateOne(ctx, model); err != nil {
		return fmt.Errorf("create index %s.%s: %w", collection, idx.Field, err)
	}
	return nil
}

// Ping implements Store
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close implements Store
func (s *MongoStore) Close(ctx context.Context) error {
	if !s.ownsClient {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// toFilter merges predicates on the same field into one operator document,
// e.g. {start_date: {$gte: a, $lte: b}}.
func toFilter(q *Query) bson.M {
	filter := bson.M{}
	if q == nil {
		return filter
	}

	for _, p := range q.Predicates {
		ops, ok := filter[p.Field].(bson.M)
		if !ok {
			ops = bson.M{}
			filter[p.Field] = ops
		}

		switch p.Op {
		case OpEq:
			ops["$eq"] = p.Value
		case OpIn:
			ops["$in"] = toSlice(p.Value)
		case OpGt:
			ops["$gt"] = p.Value
		case OpGte:
			ops["$gte"] = p.Value
		case OpLt:
			ops["$lt"] = p.Value
		case OpLte:
			ops["$lte"] = p.Value
		case OpContainsFold:
			ops["$regex"] = regexp.QuoteMeta(fmt.Sprint(p.Value))
			ops["$options"] = "i"
		}
	}
	return filter
}

func toSort(q *Query) bson.D {
	if q == nil || len(q.Sorts) == 0 {
		return nil
	}
	sort := make(bson.D, 0, len(q.Sorts))
	for _, s := range q.Sorts {
		dir := 1
		if s.Descending {
			dir = -1
		}
		sort = append(sort, bson.E{Key: s.Field, Value: dir})
	}
	return sort
}

// toSlice flattens any slice value into []interface{} for $in
func toSlice(v interface{}) []interface{} {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []interface{}{v}
	}
	out := make([]interface{}, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

func checkSlicePtr(results interface{}) error {
	rv := reflect.ValueOf(results)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Slice {
		return ErrInvalidTarget
	}
	return nil
}

var _ Store = (*MongoStore)(nil)
