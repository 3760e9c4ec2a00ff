package toolvalue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeepsKeyOrder(t *testing.T) {
	raw := `{"zeta":1,"alpha":{"b":[1,2.5,"x"],"a":null},"mid":true}`

	v, err := Parse([]byte(raw))
	require.NoError(t, err)
	require.Equal(t, KindMap, v.Kind())

	keys := []string{}
	for pair := v.Map().Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, keys)

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, raw, string(out))
}

func TestNumbersSurviveUnchanged(t *testing.T) {
	v, err := Parse([]byte(`[12345678901234567890, 1.50, -3]`))
	require.NoError(t, err)

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `[12345678901234567890,1.50,-3]`, string(out))

	i, ok := v.Items()[2].AsInt()
	assert.True(t, ok)
	assert.Equal(t, int64(-3), i)
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "nul", "{", "[1,", "abc"} {
		_, err := Parse([]byte(raw))
		assert.Error(t, err, raw)
	}
}

func TestFromAnySortsGoMaps(t *testing.T) {
	v := FromAny(map[string]any{"b": 1, "a": []any{"x", true}, "c": nil})

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `{"a":["x",true],"b":1,"c":null}`, string(out))
}

func TestPairsBuildsOrderedObject(t *testing.T) {
	v := Pairs("query", "suv", "top_k", 3, "filters", map[string]any{"fuel": "diesel"})

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `{"query":"suv","top_k":3,"filters":{"fuel":"diesel"}}`, string(out))
	assert.True(t, v.Has("query"))
	assert.False(t, v.Has("missing"))
}

func TestHasIgnoresNull(t *testing.T) {
	v, err := Parse([]byte(`{"owner_changes":null,"lien":false}`))
	require.NoError(t, err)

	assert.False(t, v.Has("owner_changes"))
	assert.True(t, v.Has("lien"))
}

func TestTruthy(t *testing.T) {
	cases := []struct {
		name  string
		value Value
		want  bool
	}{
		{"null", Null(), false},
		{"true", Bool(true), true},
		{"false", Bool(false), false},
		{"zero", Int(0), false},
		{"number", Float(0.5), true},
		{"empty string", String(""), false},
		{"string", String("Y"), true},
		{"empty list", List(), false},
		{"list", List(Int(1)), true},
		{"empty map", Object(nil), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.value.Truthy())
		})
	}
}

func TestEmptyContainersMarshal(t *testing.T) {
	out, err := json.Marshal(Pairs("items", List(), "meta", Object(nil)))
	require.NoError(t, err)
	assert.Equal(t, `{"items":[],"meta":{}}`, string(out))
}

func TestTextRendersScalars(t *testing.T) {
	assert.Equal(t, "2", Int(2).Text())
	assert.Equal(t, "G80", String("G80").Text())
	assert.Equal(t, "None", Null().Text())
	assert.Equal(t, `{"a":1}`, Pairs("a", 1).Text())
}
