package methods

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
)

func featureWithProps(props map[string]interface{}) *geojson.Feature {
	f := geojson.NewFeature(orb.Point{0, 0})
	for k, v := range props {
		f.Properties[k] = v
	}
	return f
}

func TestResolveIdentifierPrefersFeatureID(t *testing.T) {
	f := featureWithProps(map[string]interface{}{"account_num": "R200"})
	f.ID = "R100"

	id, ok := ResolveIdentifier(f)
	assert.True(t, ok)
	assert.Equal(t, "R100", id)
}

func TestResolveIdentifierCandidateOrder(t *testing.T) {
	f := featureWithProps(map[string]interface{}{
		"geo_id":      "G1",
		"prop_id":     "P1",
		"account_num": "A1",
	})

	id, ok := ResolveIdentifier(f)
	assert.True(t, ok)
	assert.Equal(t, "A1", id, "account_num wins over prop_id and geo_id")
}

func TestResolveIdentifierCaseVariants(t *testing.T) {
	cases := map[string]string{
		"ACCOUNT_NUM": "upper",
		"AccountNum":  "camel",
		"account_num": "lower",
	}
	for key, want := range cases {
		f := featureWithProps(map[string]interface{}{key: want})
		id, ok := ResolveIdentifier(f)
		assert.True(t, ok, key)
		assert.Equal(t, want, id, key)
	}
}

func TestResolveIdentifierNumericID(t *testing.T) {
	f := featureWithProps(map[string]interface{}{"prop_id": float64(123456)})
	id, ok := ResolveIdentifier(f)
	assert.True(t, ok)
	assert.Equal(t, "123456", id)
}

func TestResolveIdentifierNoCandidates(t *testing.T) {
	f := featureWithProps(map[string]interface{}{"owner_name": "SMITH"})
	_, ok := ResolveIdentifier(f)
	assert.False(t, ok)

	_, ok = ResolveIdentifier(nil)
	assert.False(t, ok)
}

func TestMatchesIdentifierCaseInsensitive(t *testing.T) {
	f := featureWithProps(map[string]interface{}{"account_num": "R100abc"})

	assert.True(t, MatchesIdentifier(f, "r100ABC"))
	assert.False(t, MatchesIdentifier(f, "R100"))
	assert.False(t, MatchesIdentifier(f, ""))
	assert.False(t, MatchesIdentifier(nil, "R100"))
}
