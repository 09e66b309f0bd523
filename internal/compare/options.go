package compare

// Option configures a comparison.
type Option func(*options)

type options struct {
	split   StepSplitter
	weights Weights
}

func newOptions(opts []Option) options {
	o := options{
		split:   SplitSteps,
		weights: DefaultWeights,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithSplitter overrides the free-text step split policy.
func WithSplitter(split StepSplitter) Option {
	return func(o *options) {
		if split != nil {
			o.split = split
		}
	}
}

// WithWeights overrides the similarity component weights.
func WithWeights(w Weights) Option {
	return func(o *options) {
		o.weights = w
	}
}
