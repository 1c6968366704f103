package network

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	G "gorgonia.org/gorgonia"
)

func TestNewMLPErrors(t *testing.T) {
	_, err := NewMLP(0, 1, nil, []*Activation{Identity()}, G.Zeroes())
	assert.Error(t, err)

	_, err = NewMLP(3, 1, []int{4}, []*Activation{ReLU()}, G.Zeroes())
	assert.Error(t, err, "missing output activation")

	_, err = NewMLP(3, 1, []int{-1}, []*Activation{ReLU(), Identity()},
		G.Zeroes())
	assert.Error(t, err)
}

func TestZeroWeights(t *testing.T) {
	tests := []struct {
		name string
		act  *Activation
		want float64
	}{
		{"identity", Identity(), 0.0},
		{"sigmoid", Sigmoid(), 0.5},
		{"tanh", TanH(), 0.0},
		{"relu", ReLU(), 0.0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			net, err := NewMLP(7, 1, []int{8, 8},
				[]*Activation{ReLU(), TanH(), test.act}, G.Zeroes())
			require.NoError(t, err)
			defer net.Close()

			out, err := net.Predict([]float64{1, 2, 3, 4, 5, 6, 7})
			require.NoError(t, err)
			require.Len(t, out, 1)
			assert.InDelta(t, test.want, out[0], 1e-12)
		})
	}
}

func TestSetWeights(t *testing.T) {
	// |x| computed as relu(x) + relu(-x)
	net, err := NewMLP(1, 1, []int{2}, []*Activation{ReLU(), Identity()},
		G.Zeroes())
	require.NoError(t, err)
	defer net.Close()

	err = net.SetWeights([][]float64{{1, -1}, {0, 0}, {1, 1}, {0}})
	require.NoError(t, err)

	for _, x := range []float64{3, -2, 0} {
		out, err := net.Predict([]float64{x})
		require.NoError(t, err)
		assert.InDelta(t, abs(x), out[0], 1e-12)
	}

	err = net.SetWeights([][]float64{{1}, {0, 0}, {1, 1}, {0}})
	assert.Error(t, err)
	err = net.SetWeights([][]float64{{1, -1}})
	assert.Error(t, err)
}

func TestLinear(t *testing.T) {
	net, err := NewMLP(2, 1, nil, []*Activation{Identity()}, G.Zeroes())
	require.NoError(t, err)
	defer net.Close()

	require.NoError(t, net.SetWeights([][]float64{{2, 3}, {1}}))
	out, err := net.Predict([]float64{1, 2})
	require.NoError(t, err)
	assert.InDelta(t, 9.0, out[0], 1e-12)

	// The forward pass can be run repeatedly
	out, err = net.Predict([]float64{0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, out[0], 1e-12)
}

func TestSetInput(t *testing.T) {
	net, err := NewMLP(3, 2, []int{4}, []*Activation{TanH(), Identity()},
		G.GlorotU(1.0))
	require.NoError(t, err)
	defer net.Close()

	assert.Error(t, net.SetInput([]float64{1, 2}))
	assert.NoError(t, net.SetInput([]float64{1, 2, 3}))

	out, err := net.Forward()
	require.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, 3, net.Features())
	assert.Equal(t, 2, net.Outputs())
	assert.Len(t, net.Learnables(), 4)
}

func TestSaveLoad(t *testing.T) {
	net, err := NewMLP(8, 1, []int{16, 16},
		[]*Activation{ReLU(), ReLU(), Sigmoid()}, G.GlorotU(1.0))
	require.NoError(t, err)
	defer net.Close()

	path := filepath.Join(t.TempDir(), "net.bin")
	require.NoError(t, net.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	defer loaded.Close()

	input := []float64{0.1, -0.2, 0.3, 0.4, -0.5, 0.6, 0.7, 1.0}
	want, err := net.Predict(input)
	require.NoError(t, err)
	have, err := loaded.Predict(input)
	require.NoError(t, err)
	assert.InDeltaSlice(t, want, have, 1e-12)

	_, err = Load(filepath.Join(t.TempDir(), "missing.bin"))
	assert.Error(t, err)
}

func TestActivationFrom(t *testing.T) {
	for _, a := range []*Activation{ReLU(), TanH(), Sigmoid(), Identity()} {
		b, err := ActivationFrom(a.String())
		require.NoError(t, err)
		assert.Equal(t, a.String(), b.String())
	}
	assert.True(t, Identity().IsIdentity())

	_, err := ActivationFrom("softmax")
	assert.Error(t, err)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
