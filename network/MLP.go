// Package network implements the small feed forward networks that
// parameterize pre-trained actors and critics.
package network

import (
	"fmt"

	"github.com/samuelfneumann/godice/utils/fileutils"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// fcLayer implements a fully connected layer of a feed forward neural
// network
type fcLayer struct {
	weights *G.Node
	bias    *G.Node
	act     *Activation
}

// fwd adds the forward pass of the fcLayer to the computational graph.
// The batch dimension is always 1, so the bias is added directly.
func (f *fcLayer) fwd(x *G.Node) (*G.Node, error) {
	x, err := G.Mul(x, f.weights)
	if err != nil {
		return nil, fmt.Errorf("fwd: could not multiply weights: %v", err)
	}
	x, err = G.Add(x, f.bias)
	if err != nil {
		return nil, fmt.Errorf("fwd: could not add bias: %v", err)
	}
	return f.act.fwd(x)
}

// MLP is a multi-layered perceptron operating on a single input
// vector at a time. Each MLP owns its graph and tape machine.
type MLP struct {
	g      *G.ExprGraph
	vm     G.VM
	input  *G.Node
	layers []*fcLayer

	numInputs   int
	numOutputs  int
	hiddenSizes []int
	activations []*Activation

	prediction *G.Node
	predVal    G.Value
}

// NewMLP creates a new MLP with features inputs and outputs outputs.
// For index i, hiddenSizes[i] is the number of units in hidden layer i
// and activations[i] is its activation. A final layer of size outputs
// is always added, and its activation is the last element of
// activations, so len(activations) must be len(hiddenSizes) + 1. All
// biases are initialized to zero, weights are initialized using init.
func NewMLP(features, outputs int, hiddenSizes []int,
	activations []*Activation, init G.InitWFn) (*MLP, error) {
	if features <= 0 || outputs <= 0 {
		return nil, fmt.Errorf("newMLP: features and outputs must be "+
			"positive \n\thave(%v, %v)", features, outputs)
	}
	if len(activations) != len(hiddenSizes)+1 {
		return nil, fmt.Errorf("newMLP: invalid number of activations "+
			"\n\twant(%v) \n\thave(%v)", len(hiddenSizes)+1, len(activations))
	}
	for i, size := range hiddenSizes {
		if size <= 0 {
			return nil, fmt.Errorf("newMLP: hidden layer %v must have "+
				"positive size \n\thave(%v)", i, size)
		}
	}

	g := G.NewGraph()
	input := G.NewMatrix(g, tensor.Float64, G.WithShape(1, features),
		G.WithName("input"), G.WithInit(G.Zeroes()))

	sizes := append(append([]int{}, hiddenSizes...), outputs)
	layers := make([]*fcLayer, len(sizes))
	in := features
	for i, size := range sizes {
		weights := G.NewMatrix(g, tensor.Float64, G.WithShape(in, size),
			G.WithName(fmt.Sprintf("L%dW", i)), G.WithInit(init))
		bias := G.NewMatrix(g, tensor.Float64, G.WithShape(1, size),
			G.WithName(fmt.Sprintf("L%dB", i)), G.WithInit(G.Zeroes()))
		layers[i] = &fcLayer{weights: weights, bias: bias, act: activations[i]}
		in = size
	}

	net := &MLP{
		g:           g,
		input:       input,
		layers:      layers,
		numInputs:   features,
		numOutputs:  outputs,
		hiddenSizes: append([]int{}, hiddenSizes...),
		activations: append([]*Activation{}, activations...),
	}

	pred := input
	var err error
	for i, l := range layers {
		if pred, err = l.fwd(pred); err != nil {
			return nil, fmt.Errorf("newMLP: could not compute forward pass "+
				"of layer %v: %v", i, err)
		}
	}
	net.prediction = pred
	G.Read(net.prediction, &net.predVal)
	net.vm = G.NewTapeMachine(g)

	return net, nil
}

// Features returns the number of input features of the MLP
func (m *MLP) Features() int {
	return m.numInputs
}

// Outputs returns the number of outputs of the MLP
func (m *MLP) Outputs() int {
	return m.numOutputs
}

// Graph returns the computational graph of the MLP
func (m *MLP) Graph() *G.ExprGraph {
	return m.g
}

// Learnables returns the weights and biases of the MLP, ordered layer
// by layer with each layer's weights before its bias.
func (m *MLP) Learnables() G.Nodes {
	nodes := make(G.Nodes, 0, 2*len(m.layers))
	for _, l := range m.layers {
		nodes = append(nodes, l.weights, l.bias)
	}
	return nodes
}

// SetInput sets the value of the input node before running the forward
// pass.
func (m *MLP) SetInput(input []float64) error {
	if len(input) != m.numInputs {
		return fmt.Errorf("setInput: invalid number of inputs "+
			"\n\twant(%v) \n\thave(%v)", m.numInputs, len(input))
	}
	backing := append([]float64{}, input...)
	inputTensor := tensor.New(
		tensor.WithBacking(backing),
		tensor.WithShape(m.input.Shape()...),
	)
	return G.Let(m.input, inputTensor)
}

// Forward runs the forward pass on the current input and returns the
// outputs of the final layer
func (m *MLP) Forward() ([]float64, error) {
	defer m.vm.Reset()
	if err := m.vm.RunAll(); err != nil {
		return nil, fmt.Errorf("forward: could not run forward pass: %v",
			err)
	}

	out, err := valueData(m.predVal)
	if err != nil {
		return nil, fmt.Errorf("forward: %v", err)
	}
	return out, nil
}

// valueData returns a copy of the float64 data stored in v
func valueData(v G.Value) ([]float64, error) {
	if v == nil {
		return nil, fmt.Errorf("valueData: value is nil")
	}
	switch data := v.Data().(type) {
	case []float64:
		return append([]float64{}, data...), nil
	case float64:
		return []float64{data}, nil
	default:
		return nil, fmt.Errorf("valueData: unexpected data type %T", data)
	}
}

// Predict sets the input and runs the forward pass
func (m *MLP) Predict(input []float64) ([]float64, error) {
	if err := m.SetInput(input); err != nil {
		return nil, err
	}
	return m.Forward()
}

// SetWeights sets the value of each learnable node, in the order
// returned by Learnables().
func (m *MLP) SetWeights(values [][]float64) error {
	nodes := m.Learnables()
	if len(values) != len(nodes) {
		return fmt.Errorf("setWeights: invalid number of weight tensors "+
			"\n\twant(%v) \n\thave(%v)", len(nodes), len(values))
	}

	for i, node := range nodes {
		if len(values[i]) != node.Shape().TotalSize() {
			return fmt.Errorf("setWeights: invalid size for %v "+
				"\n\twant(%v) \n\thave(%v)", node.Name(),
				node.Shape().TotalSize(), len(values[i]))
		}
		t := tensor.New(
			tensor.WithBacking(append([]float64{}, values[i]...)),
			tensor.WithShape(node.Shape()...),
		)
		if err := G.Let(node, t); err != nil {
			return fmt.Errorf("setWeights: could not set %v: %v", node.Name(),
				err)
		}
	}
	return nil
}

// Weights returns a copy of the value of each learnable node, in the
// order returned by Learnables().
func (m *MLP) Weights() ([][]float64, error) {
	nodes := m.Learnables()
	values := make([][]float64, len(nodes))
	for i, node := range nodes {
		data, err := valueData(node.Value())
		if err != nil {
			return nil, fmt.Errorf("weights: %v: %v", node.Name(), err)
		}
		values[i] = data
	}
	return values, nil
}

// Close releases the tape machine of the MLP
func (m *MLP) Close() error {
	return m.vm.Close()
}

// checkpoint is the gob-serialized form of an MLP
type checkpoint struct {
	Features    int
	Outputs     int
	HiddenSizes []int
	Activations []string
	Weights     [][]float64
}

// Save saves the architecture and weights of the MLP to a file at path
func (m *MLP) Save(path string) error {
	acts := make([]string, len(m.activations))
	for i := range m.activations {
		acts[i] = m.activations[i].String()
	}

	weights, err := m.Weights()
	if err != nil {
		return fmt.Errorf("save: %v", err)
	}

	err = fileutils.SaveGob(path, checkpoint{
		Features:    m.numInputs,
		Outputs:     m.numOutputs,
		HiddenSizes: m.hiddenSizes,
		Activations: acts,
		Weights:     weights,
	})
	if err != nil {
		return fmt.Errorf("save: %v", err)
	}
	return nil
}

// Load loads an MLP saved with Save from the file at path
func Load(path string) (*MLP, error) {
	var c checkpoint
	err := fileutils.LoadGob(path, &c)
	if err != nil {
		return nil, fmt.Errorf("load: %v", err)
	}

	acts := make([]*Activation, len(c.Activations))
	for i, name := range c.Activations {
		if acts[i], err = ActivationFrom(name); err != nil {
			return nil, fmt.Errorf("load: %v", err)
		}
	}

	net, err := NewMLP(c.Features, c.Outputs, c.HiddenSizes, acts,
		G.Zeroes())
	if err != nil {
		return nil, fmt.Errorf("load: %v", err)
	}
	if err := net.SetWeights(c.Weights); err != nil {
		net.Close()
		return nil, fmt.Errorf("load: %v", err)
	}
	return net, nil
}
