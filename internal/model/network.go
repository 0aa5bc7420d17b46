// Package model implements the post-value regressor: a small
// feed-forward network mapping the 4-dimensional feature vector to a
// scalar predicted value.
package model

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/zoracast/zoracast/internal/coin"
)

// Topology is fixed: 4 inputs, two ReLU hidden layers, linear output.
const (
	inputSize   = 4
	hidden1Size = 64
	hidden2Size = 32
)

// Network is a trained regressor. Instances are immutable after Train
// returns, so a Network may serve concurrent Predict calls while a
// replacement is trained in the background.
type Network struct {
	w1 [][]float64 // hidden1Size x inputSize
	b1 []float64
	w2 [][]float64 // hidden2Size x hidden1Size
	b2 []float64
	w3 []float64 // hidden2Size
	b3 float64
}

// Predict runs a forward pass for one feature vector. Deterministic for
// fixed weights.
func (n *Network) Predict(fv coin.FeatureVector) float64 {
	in := fv.Values()
	h1 := make([]float64, hidden1Size)
	for i := 0; i < hidden1Size; i++ {
		sum := n.b1[i]
		for j := 0; j < inputSize; j++ {
			sum += n.w1[i][j] * in[j]
		}
		h1[i] = relu(sum)
	}
	h2 := make([]float64, hidden2Size)
	for i := 0; i < hidden2Size; i++ {
		sum := n.b2[i]
		for j := 0; j < hidden1Size; j++ {
			sum += n.w2[i][j] * h1[j]
		}
		h2[i] = relu(sum)
	}
	out := n.b3
	for i := 0; i < hidden2Size; i++ {
		out += n.w3[i] * h2[i]
	}
	return out
}

func relu(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

func newNetwork(rng *rand.Rand) *Network {
	n := &Network{
		w1: heMatrix(rng, hidden1Size, inputSize),
		b1: make([]float64, hidden1Size),
		w2: heMatrix(rng, hidden2Size, hidden1Size),
		b2: make([]float64, hidden2Size),
		w3: heRow(rng, hidden2Size),
	}
	return n
}

// heMatrix initializes weights with He scaling for ReLU layers.
func heMatrix(rng *rand.Rand, rows, cols int) [][]float64 {
	scale := math.Sqrt(2.0 / float64(cols))
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
		for j := range m[i] {
			m[i][j] = rng.NormFloat64() * scale
		}
	}
	return m
}

func heRow(rng *rand.Rand, cols int) []float64 {
	scale := math.Sqrt(2.0 / float64(cols))
	row := make([]float64, cols)
	for j := range row {
		row[j] = rng.NormFloat64() * scale
	}
	return row
}

func (n *Network) check() error {
	for _, row := range n.w1 {
		for _, w := range row {
			if math.IsNaN(w) || math.IsInf(w, 0) {
				return fmt.Errorf("non-finite weight after training")
			}
		}
	}
	return nil
}
