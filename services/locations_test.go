package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildLocationFilter_Empty(t *testing.T) {
	filter := BuildLocationFilter(LocationQuery{})
	assert.Empty(t, filter)
}

func TestBuildLocationFilter_Types(t *testing.T) {
	filter := BuildLocationFilter(LocationQuery{Types: []string{"sports", "arts"}})

	require.Contains(t, filter, "types")
	assert.Equal(t, bson.M{"$in": []string{"sports", "arts"}}, filter["types"])
}

func TestBuildLocationFilter_Age(t *testing.T) {
	age := 4
	filter := BuildLocationFilter(LocationQuery{Age: &age})

	assert.Equal(t, bson.M{"$lte": 4}, filter["age_range.min"])
	assert.Equal(t, bson.M{"$gte": 4}, filter["age_range.max"])
}

func TestBuildLocationFilter_PriceAndFeatured(t *testing.T) {
	featured := true
	filter := BuildLocationFilter(LocationQuery{Price: "free", Featured: &featured})

	assert.Equal(t, "free", filter["price_range"])
	assert.Equal(t, true, filter["featured"])
}

func TestBuildLocationFilter_Keyword(t *testing.T) {
	filter := BuildLocationFilter(LocationQuery{Keyword: "παιδότοπος"})

	or, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 3)
	// name, description, address — όλα case-insensitive
	assert.Equal(t, bson.M{"$regex": "παιδότοπος", "$options": "i"}, or[0]["name"])
	assert.Equal(t, bson.M{"$regex": "παιδότοπος", "$options": "i"}, or[1]["description"])
	assert.Equal(t, bson.M{"$regex": "παιδότοπος", "$options": "i"}, or[2]["address"])
}

func TestBuildLocationFilter_Bounds(t *testing.T) {
	filter := BuildLocationFilter(LocationQuery{Bounds: &Bounds{
		SWLat: 37.9, SWLng: 23.6, NELat: 38.1, NELng: 23.8,
	}})

	assert.Equal(t, bson.M{"$gte": 37.9, "$lte": 38.1}, filter["coordinates.lat"])
	assert.Equal(t, bson.M{"$gte": 23.6, "$lte": 23.8}, filter["coordinates.lng"])
}

func TestHaversine_KnownDistances(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
		wantKm                 float64
		tolerance              float64
	}{
		// Σύνταγμα → Ακρόπολη, περίπου 1 χλμ
		{"syntagma to acropolis", 37.9755, 23.7348, 37.9715, 23.7267, 0.84, 0.1},
		// Αθήνα → Θεσσαλονίκη, περίπου 300 χλμ
		{"athens to thessaloniki", 37.9838, 23.7275, 40.6401, 22.9444, 302, 5},
		{"same point", 37.98, 23.72, 37.98, 23.72, 0, 0.001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Haversine(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			assert.InDelta(t, tt.wantKm, got, tt.tolerance)
		})
	}
}

func TestBoundingBox_ContainsRadius(t *testing.T) {
	// κέντρο Αθήνας, 5 χλμ
	box := BoundingBox(37.9838, 23.7275, 5)

	assert.Less(t, box.SWLat, 37.9838)
	assert.Greater(t, box.NELat, 37.9838)
	assert.Less(t, box.SWLng, 23.7275)
	assert.Greater(t, box.NELng, 23.7275)

	// οι γωνίες του box πρέπει να απέχουν τουλάχιστον όσο η ακτίνα
	cornerDist := Haversine(37.9838, 23.7275, box.NELat, box.NELng)
	assert.GreaterOrEqual(t, cornerDist, 5.0)

	// και τα άκρα των αξόνων να μην απέχουν πολύ περισσότερο από την ακτίνα
	edgeDist := Haversine(37.9838, 23.7275, box.NELat, 23.7275)
	assert.InDelta(t, 5.0, edgeDist, 0.2)
}

func TestBoundingBox_NearPoles(t *testing.T) {
	// κοντά στον πόλο το cos(lat) μηδενίζει — δεν πρέπει να σκάσει ή να βγάλει άπειρο
	box := BoundingBox(89.9, 0, 5)

	assert.False(t, box.NELng > 1000 || box.NELng != box.NELng) // όχι Inf/NaN
	assert.Greater(t, box.NELat, 89.9)
}
