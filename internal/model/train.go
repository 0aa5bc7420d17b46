package model

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zoracast/zoracast/internal/coin"
)

// Config holds training hyperparameters. The defaults mirror the
// reference configuration: 50 passes over the data in mini-batches of
// 32, Adam with the standard learning rate.
type Config struct {
	Epochs       int     `yaml:"epochs"`
	BatchSize    int     `yaml:"batch_size"`
	LearningRate float64 `yaml:"learning_rate"`
	Seed         int64   `yaml:"seed"`
}

func DefaultConfig() Config {
	return Config{
		Epochs:       50,
		BatchSize:    32,
		LearningRate: 0.001,
		Seed:         1,
	}
}

func (c Config) withDefaults() Config {
	if c.Epochs <= 0 {
		c.Epochs = 50
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 32
	}
	if c.LearningRate <= 0 {
		c.LearningRate = 0.001
	}
	if c.Seed == 0 {
		c.Seed = 1
	}
	return c
}

// Adam moment decay rates and epsilon, standard values.
const (
	adamBeta1 = 0.9
	adamBeta2 = 0.999
	adamEps   = 1e-8
)

// grads mirrors the network parameters and accumulates one mini-batch
// of gradient, then doubles as Adam first/second moment storage.
type grads struct {
	w1 [][]float64
	b1 []float64
	w2 [][]float64
	b2 []float64
	w3 []float64
	b3 float64
}

func newGrads() *grads {
	return &grads{
		w1: zeroMatrix(hidden1Size, inputSize),
		b1: make([]float64, hidden1Size),
		w2: zeroMatrix(hidden2Size, hidden1Size),
		b2: make([]float64, hidden2Size),
		w3: make([]float64, hidden2Size),
	}
}

func zeroMatrix(rows, cols int) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}

func (g *grads) reset() {
	for i := range g.w1 {
		for j := range g.w1[i] {
			g.w1[i][j] = 0
		}
		g.b1[i] = 0
	}
	for i := range g.w2 {
		for j := range g.w2[i] {
			g.w2[i][j] = 0
		}
		g.b2[i] = 0
		g.w3[i] = 0
	}
	g.b3 = 0
}

// Train fits a fresh network to the sample set, minimizing mean squared
// error with mini-batch Adam. It returns a new immutable Network and
// never touches a previously published one. Fails with
// coin.ErrInsufficientData when given no samples.
func Train(samples []coin.TrainingSample, cfg Config) (*Network, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("train: %w", coin.ErrInsufficientData)
	}
	cfg = cfg.withDefaults()
	rng := rand.New(rand.NewSource(cfg.Seed))
	net := newNetwork(rng)

	g := newGrads()
	m := newGrads() // Adam first moments
	v := newGrads() // Adam second moments
	order := rng.Perm(len(samples))
	step := 0
	start := time.Now()

	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		var epochLoss float64
		for lo := 0; lo < len(order); lo += cfg.BatchSize {
			hi := lo + cfg.BatchSize
			if hi > len(order) {
				hi = len(order)
			}
			g.reset()
			var batchLoss float64
			for _, idx := range order[lo:hi] {
				batchLoss += backprop(net, g, samples[idx], hi-lo)
			}
			step++
			adamStep(net, g, m, v, cfg.LearningRate, step)
			epochLoss += batchLoss
		}
		if (epoch+1)%10 == 0 {
			log.Debug().Int("epoch", epoch+1).
				Float64("mse", epochLoss/float64(len(samples))).
				Msg("Training progress")
		}
	}

	if err := net.check(); err != nil {
		return nil, fmt.Errorf("train: %w", err)
	}
	log.Info().Int("samples", len(samples)).Int("epochs", cfg.Epochs).
		Dur("elapsed", time.Since(start)).Msg("Model training complete")
	return net, nil
}

// backprop runs forward and backward passes for one sample, adding the
// gradient contribution (already divided by batch size) into g. Returns
// the sample's squared-error contribution to the batch loss.
func backprop(n *Network, g *grads, sample coin.TrainingSample, batch int) float64 {
	in := sample.Features.Values()

	// Forward, keeping pre-activations for the ReLU derivative.
	z1 := make([]float64, hidden1Size)
	h1 := make([]float64, hidden1Size)
	for i := 0; i < hidden1Size; i++ {
		sum := n.b1[i]
		for j := 0; j < inputSize; j++ {
			sum += n.w1[i][j] * in[j]
		}
		z1[i] = sum
		h1[i] = relu(sum)
	}
	z2 := make([]float64, hidden2Size)
	h2 := make([]float64, hidden2Size)
	for i := 0; i < hidden2Size; i++ {
		sum := n.b2[i]
		for j := 0; j < hidden1Size; j++ {
			sum += n.w2[i][j] * h1[j]
		}
		z2[i] = sum
		h2[i] = relu(sum)
	}
	pred := n.b3
	for i := 0; i < hidden2Size; i++ {
		pred += n.w3[i] * h2[i]
	}

	// Backward. dLoss/dPred for MSE averaged over the batch.
	diff := pred - sample.Observed
	dOut := 2 * diff / float64(batch)

	g.b3 += dOut
	d2 := make([]float64, hidden2Size)
	for i := 0; i < hidden2Size; i++ {
		g.w3[i] += dOut * h2[i]
		if z2[i] > 0 {
			d2[i] = dOut * n.w3[i]
		}
	}
	d1 := make([]float64, hidden1Size)
	for i := 0; i < hidden2Size; i++ {
		if d2[i] == 0 {
			continue
		}
		g.b2[i] += d2[i]
		for j := 0; j < hidden1Size; j++ {
			g.w2[i][j] += d2[i] * h1[j]
			d1[j] += d2[i] * n.w2[i][j]
		}
	}
	for i := 0; i < hidden1Size; i++ {
		if z1[i] <= 0 || d1[i] == 0 {
			continue
		}
		g.b1[i] += d1[i]
		for j := 0; j < inputSize; j++ {
			g.w1[i][j] += d1[i] * in[j]
		}
	}

	return diff * diff / float64(batch)
}

// adamStep applies one Adam update to every parameter in place.
func adamStep(n *Network, g, m, v *grads, lr float64, step int) {
	c1 := 1 - math.Pow(adamBeta1, float64(step))
	c2 := 1 - math.Pow(adamBeta2, float64(step))
	upd := func(p, grad, mo, ve *float64) {
		gr := *grad
		*mo = adamBeta1*(*mo) + (1-adamBeta1)*gr
		*ve = adamBeta2*(*ve) + (1-adamBeta2)*gr*gr
		mhat := *mo / c1
		vhat := *ve / c2
		*p -= lr * mhat / (math.Sqrt(vhat) + adamEps)
	}
	for i := 0; i < hidden1Size; i++ {
		for j := 0; j < inputSize; j++ {
			upd(&n.w1[i][j], &g.w1[i][j], &m.w1[i][j], &v.w1[i][j])
		}
		upd(&n.b1[i], &g.b1[i], &m.b1[i], &v.b1[i])
	}
	for i := 0; i < hidden2Size; i++ {
		for j := 0; j < hidden1Size; j++ {
			upd(&n.w2[i][j], &g.w2[i][j], &m.w2[i][j], &v.w2[i][j])
		}
		upd(&n.b2[i], &g.b2[i], &m.b2[i], &v.b2[i])
		upd(&n.w3[i], &g.w3[i], &m.w3[i], &v.w3[i])
	}
	upd(&n.b3, &g.b3, &m.b3, &v.b3)
}
