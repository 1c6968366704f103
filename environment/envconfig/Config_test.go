package envconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/godice/environment/dice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeepsDefaults(t *testing.T) {
	c, err := Parse([]byte(`
horizon: 100
params:
  savings: 0.25
  t2xco2: 3.2
`))
	require.NoError(t, err)

	want := dice.DefaultParams()
	want.Savings = 0.25
	want.T2xCO2 = 3.2

	assert.Equal(t, Welfare, c.Task)
	assert.Equal(t, 100, c.Horizon)
	assert.Equal(t, 1.0, c.Discount)
	assert.Equal(t, want, c.Params)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("horizn: 100\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("params:\n  savngs: 0.2\n"))
	assert.Error(t, err)
}

func TestParseValidates(t *testing.T) {
	tests := map[string]string{
		"unknown task":       "task: Hover\n",
		"ceiling without bound": "task: TemperatureCeiling\n",
		"negative horizon":   "horizon: -1\n",
		"bad savings":        "params:\n  savings: 1.2\n",
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestLoadAndCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dice.yaml")
	data := []byte("task: TemperatureCeiling\ntemperature_bound: 2.5\n" +
		"horizon: 50\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	c, err := Load(path)
	require.NoError(t, err)

	d, step, err := c.Create(1)
	require.NoError(t, err)
	assert.True(t, step.First())
	assert.Equal(t, 50, d.Horizon())

	task, ok := d.Task.(*dice.TemperatureCeiling)
	require.True(t, ok)
	assert.Equal(t, 2.5, task.MaxTemp())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestStartNoise(t *testing.T) {
	c := Default()
	c.StartNoise = 0.05

	_, step, err := c.CreateEnv(7)
	require.NoError(t, err)

	initial := c.Params.InitialState()
	assert.NotEqual(t, initial, step.Observation.RawVector().Data)
	assert.Equal(t, 0.0, step.Observation.AtVec(dice.Time))
	for i := 0; i < dice.Time; i++ {
		assert.InDelta(t, initial[i], step.Observation.AtVec(i),
			0.05*initial[i]+1e-12)
	}
}
