package docstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestToFilter_MergesOperatorsPerField(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	q := NewQuery().
		Eq("category", "Festival").
		Where("start_date", OpGte, from).
		Where("start_date", OpLte, to)

	filter := toFilter(q)

	assert.Equal(t, bson.M{"$eq": "Festival"}, filter["category"])
	assert.Equal(t, bson.M{"$gte": from, "$lte": to}, filter["start_date"])
}

func TestToFilter_InFlattensTypedSlices(t *testing.T) {
	filter := toFilter(NewQuery().Where("categories", OpIn, []string{"Culture", "Nature"}))
	assert.Equal(t, bson.M{"$in": []interface{}{"Culture", "Nature"}}, filter["categories"])
}

func TestToFilter_ContainsFoldEscapesPattern(t *testing.T) {
	filter := toFilter(NewQuery().Where("location", OpContainsFold, "a.b"))
	assert.Equal(t, bson.M{"$regex": `a\.b`, "$options": "i"}, filter["location"])
}

func TestToFilter_NilQuery(t *testing.T) {
	assert.Empty(t, toFilter(nil))
	assert.Nil(t, toSort(nil))
}

func TestToSort(t *testing.T) {
	q := NewQuery().OrderBy("start_date", false).OrderBy("created_at", true)
	assert.Equal(t, bson.D{{Key: "start_date", Value: 1}, {Key: "created_at", Value: -1}}, toSort(q))
}

func TestQueryBuilder(t *testing.T) {
	q := ByID("x").WithLimit(10)
	assert.Equal(t, []Predicate{{Field: "_id", Op: OpEq, Value: "x"}}, q.Predicates)
	assert.Equal(t, int64(10), q.Limit)
}
