package sample

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithModels sets how many distinct models are generated.
func WithModels(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.models = n
		}
	}
}

// WithSeed makes the output reproducible.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithReferenceEvery adds a reference row quoting an earlier paper after
// every n-th model. Zero disables reference rows.
func WithReferenceEvery(n int) Option {
	return func(g *Generator) {
		if n >= 0 {
			g.referenceEvery = n
		}
	}
}
