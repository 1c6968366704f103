package initwfn

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalJSON(t *testing.T) {
	tests := []struct {
		data   string
		typ    Type
		config Config
	}{
		{`{"Type": "HeU", "Config": {"Gain": 2}}`, HeU, HeUConfig{Gain: 2}},
		{`{"Type": "GlorotN", "Config": {"Gain": 1.5}}`, GlorotN,
			GlorotNConfig{Gain: 1.5}},
		{`{"Type": "Zeroes"}`, Zeroes, ZeroesConfig{}},
	}

	for _, test := range tests {
		var init InitWFn
		require.NoError(t, json.Unmarshal([]byte(test.data), &init))
		assert.Equal(t, test.typ, init.Type)
		assert.Equal(t, test.config, init.Config)
		assert.NotNil(t, init.InitWFn())
	}
}

func TestUnmarshalJSONErrors(t *testing.T) {
	for _, data := range []string{
		`{"Type": "Ones"}`,
		`{"Config": {"Gain": 1}}`,
		`{"Type": "HeU"}`,
		`{"Type": "GlorotU", "Config": {"Gain": -1}}`,
		`not json`,
	} {
		var init InitWFn
		assert.Error(t, json.Unmarshal([]byte(data), &init), data)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	init, err := NewGlorotU(1.0)
	require.NoError(t, err)

	data, err := json.Marshal(init)
	require.NoError(t, err)

	var decoded InitWFn
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, init.Type, decoded.Type)
	assert.Equal(t, init.Config, decoded.Config)
}

func TestConstructorsRejectNonPositiveGain(t *testing.T) {
	constructors := map[Type]func(float64) (*InitWFn, error){
		GlorotU: NewGlorotU,
		GlorotN: NewGlorotN,
		HeU:     NewHeU,
		HeN:     NewHeN,
	}

	for typ, create := range constructors {
		_, err := create(0)
		assert.Error(t, err, typ)

		init, err := create(2)
		require.NoError(t, err, typ)
		assert.Equal(t, typ, init.Type)
	}
}
