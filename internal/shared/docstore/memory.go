package docstore

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-process Store. Documents are round-tripped through BSON so
// decoding behaves like the mongo driver, including millisecond time precision.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]bson.M
	unique      map[string][]string
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string][]bson.M),
		unique:      make(map[string][]string),
	}
}

// Find implements Store
func (s *MemoryStore) Find(ctx context.Context, collection string, q *Query, results interface{}) error {
	if err := checkSlicePtr(results); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	docs := s.match(collection, q)
	s.mu.RUnlock()

	if q != nil && q.Limit > 0 && int64(len(docs)) > q.Limit {
		docs = docs[:q.Limit]
	}

	slice := reflect.ValueOf(results).Elem()
	elemType := slice.Type().Elem()
	out := reflect.MakeSlice(slice.Type(), 0, len(docs))
	for _, doc := range docs {
		target := elemType
		isPtr := elemType.Kind() == reflect.Ptr
		if isPtr {
			target = elemType.Elem()
		}
		elem := reflect.New(target)
		if err := decode(doc, elem.Interface()); err != nil {
			return fmt.Errorf("decode %s: %w", collection, err)
		}
		if isPtr {
			out = reflect.Append(out, elem)
		} else {
			out = reflect.Append(out, elem.Elem())
		}
	}
	slice.Set(out)
	return nil
}

// FindOne implements Store
func (s *MemoryStore) FindOne(ctx context.Context, collection string, q *Query, result interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	docs := s.match(collection, q)
	s.mu.RUnlock()

	if len(docs) == 0 {
		return ErrNotFound
	}
	if err := decode(docs[0], result); err != nil {
		return fmt.Errorf("decode %s: %w", collection, err)
	}
	return nil
}

// Count implements Store
func (s *MemoryStore) Count(ctx context.Context, collection string, q *Query) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.match(collection, q))), nil
}

// Insert implements Store
func (s *MemoryStore) Insert(ctx context.Context, collection string, doc interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := bson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", collection, err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("encode %s: %w", collection, err)
	}
	if _, ok := m["_id"]; !ok {
		m["_id"] = primitive.NewObjectID()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fields := append([]string{"_id"}, s.unique[collection]...)
	for _, existing := range s.collections[collection] {
		for _, field := range fields {
			v, ok := m[field]
			if !ok {
				continue
			}
			if ev, ok := existing[field]; ok && equal(ev, v) {
				return fmt.Errorf("%w: %s.%s = %v", ErrDuplicate, collection, field, v)
			}
		}
	}

	s.collections[collection] = append(s.collections[collection], m)
	return nil
}

// DeleteOne implements Store
func (s *MemoryStore) DeleteOne(ctx context.Context, collection string, q *Query) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[collection]
	for i, doc := range docs {
		if matches(doc, q) {
			s.collections[collection] = append(docs[:i:i], docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// EnsureIndex implements Store. Only unique indexes change behaviour.
func (s *MemoryStore) EnsureIndex(_ context.Context, collection string, idx Index) error {
	if !idx.Unique {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.unique[collection] {
		if f == idx.Field {
			return nil
		}
	}
	s.unique[collection] = append(s.unique[collection], idx.Field)
	return nil
}

// Ping implements Store
func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close implements Store
func (s *MemoryStore) Close(context.Context) error {
	return nil
}

// match returns matching documents in insertion order, then sorted. Caller holds the lock.
func (s *MemoryStore) match(collection string, q *Query) []bson.M {
	var out []bson.M
	for _, doc := range s.collections[collection] {
		if matches(doc, q) {
			out = append(out, doc)
		}
	}

	if q != nil && len(q.Sorts) > 0 {
		sort.SliceStable(out, func(i, j int) bool {
			for _, sf := range q.Sorts {
				c := sortCompare(out[i][sf.Field], out[j][sf.Field])
				if c == 0 {
					continue
				}
				if sf.Descending {
					return c > 0
				}
				return c < 0
			}
			return false
		})
	}
	return out
}

func decode(doc bson.M, result interface{}) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, result)
}

func matches(doc bson.M, q *Query) bool {
	if q == nil {
		return true
	}
	for _, p := range q.Predicates {
		if !matchPredicate(doc, p) {
			return false
		}
	}
	return true
}

func matchPredicate(doc bson.M, p Predicate) bool {
	v, present := doc[p.Field]

	switch p.Op {
	case OpEq:
		if !present {
			return p.Value == nil
		}
		return anyElement(v, func(e interface{}) bool { return equal(e, p.Value) })
	case OpIn:
		for _, candidate := range toSlice(p.Value) {
			if !present && candidate == nil {
				return true
			}
			if present && anyElement(v, func(e interface{}) bool { return equal(e, candidate) }) {
				return true
			}
		}
		return false
	case OpGt, OpGte, OpLt, OpLte:
		if !present {
			return false
		}
		return anyElement(v, func(e interface{}) bool {
			c, ok := compare(e, p.Value)
			if !ok {
				return false
			}
			switch p.Op {
			case OpGt:
				return c > 0
			case OpGte:
				return c >= 0
			case OpLt:
				return c < 0
			default:
				return c <= 0
			}
		})
	case OpContainsFold:
		needle := strings.ToLower(fmt.Sprint(p.Value))
		return anyElement(v, func(e interface{}) bool {
			s, ok := e.(string)
			return ok && strings.Contains(strings.ToLower(s), needle)
		})
	}
	return false
}

// anyElement applies fn to v, or to each element when v is an array
func anyElement(v interface{}, fn func(interface{}) bool) bool {
	switch arr := v.(type) {
	case primitive.A:
		for _, e := range arr {
			if fn(e) {
				return true
			}
		}
		return false
	case []interface{}:
		for _, e := range arr {
			if fn(e) {
				return true
			}
		}
		return false
	}
	return fn(v)
}

type kind int

// BSON comparison order for the kinds the store handles
const (
	kindNull kind = iota
	kindNumber
	kindString
	kindOther
	kindBool
	kindTime
)

func normalize(v interface{}) (kind, interface{}) {
	switch x := v.(type) {
	case nil:
		return kindNull, nil
	case string:
		return kindString, x
	case bool:
		return kindBool, x
	case int:
		return kindNumber, float64(x)
	case int8:
		return kindNumber, float64(x)
	case int16:
		return kindNumber, float64(x)
	case int32:
		return kindNumber, float64(x)
	case int64:
		return kindNumber, float64(x)
	case uint:
		return kindNumber, float64(x)
	case uint8:
		return kindNumber, float64(x)
	case uint16:
		return kindNumber, float64(x)
	case uint32:
		return kindNumber, float64(x)
	case uint64:
		return kindNumber, float64(x)
	case float32:
		return kindNumber, float64(x)
	case float64:
		return kindNumber, x
	case time.Time:
		return kindTime, x.UTC().Truncate(time.Millisecond)
	case primitive.DateTime:
		return kindTime, x.Time().UTC()
	}
	return kindOther, v
}

func equal(a, b interface{}) bool {
	ka, va := normalize(a)
	kb, vb := normalize(b)
	if ka != kb {
		return false
	}
	if ka == kindTime {
		return va.(time.Time).Equal(vb.(time.Time))
	}
	if ka == kindOther {
		return reflect.DeepEqual(va, vb)
	}
	return va == vb
}

// compare orders two values of the same kind; ok is false across kinds
func compare(a, b interface{}) (int, bool) {
	ka, va := normalize(a)
	kb, vb := normalize(b)
	if ka != kb {
		return 0, false
	}

	switch ka {
	case kindNull:
		return 0, true
	case kindNumber:
		x, y := va.(float64), vb.(float64)
		switch {
		case x < y:
			return -1, true
		case x > y:
			return 1, true
		}
		return 0, true
	case kindString:
		return strings.Compare(va.(string), vb.(string)), true
	case kindBool:
		x, y := va.(bool), vb.(bool)
		switch {
		case x == y:
			return 0, true
		case !x:
			return -1, true
		}
		return 1, true
	case kindTime:
		return va.(time.Time).Compare(vb.(time.Time)), true
	}
	return 0, false
}

// sortCompare orders across kinds by kind rank, then by value. Missing sorts as null.
func sortCompare(a, b interface{}) int {
	if c, ok := compare(a, b); ok {
		return c
	}
	ka, _ := normalize(a)
	kb, _ := normalize(b)
	switch {
	case ka < kb:
		return -1
	case ka > kb:
		return 1
	}
	return 0
}

var _ Store = (*MemoryStore)(nil)
