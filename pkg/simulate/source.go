package simulate

import "github.com/shashank-93rao/statinfer/pkg/sampling"

// Source produces one sample of size n per call.
type Source interface {
	Draw(s *sampling.Stream, n int) ([]float64, error)
}

// Normal draws directly from Normal(Mu, Sigma).
type Normal struct {
	Mu    float64
	Sigma float64
}

func (p Normal) Draw(s *sampling.Stream, n int) ([]float64, error) {
	return s.Normal(p.Mu, p.Sigma, n)
}

// Finite draws without replacement from a fixed population.
type Finite struct {
	Values []float64
}

func (p Finite) Draw(s *sampling.Stream, n int) ([]float64, error) {
	return s.Choose(p.Values, n)
}
