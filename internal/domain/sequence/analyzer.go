package sequence

import "slices"

// Analysis is a successful classification.
type Analysis struct {
	Pattern   Pattern   `json:"pattern" msgpack:"pattern"`
	Predicted float64   `json:"predicted" msgpack:"predicted"`
	NextFive  []float64 `json:"nextFive" msgpack:"nextFive"`
}

// Option applies a configuration option to the Analyzer.
type Option func(*Analyzer)

// WithDetectors replaces the detection chain. Order is priority order.
func WithDetectors(detectors ...Detector) Option {
	return func(a *Analyzer) {
		if len(detectors) > 0 {
			a.detectors = slices.Clone(detectors)
		}
	}
}

// Analyzer classifies sequences. It is immutable after construction and
// safe for concurrent use.
type Analyzer struct {
	detectors []Detector
}

// NewAnalyzer returns an Analyzer using the default detection chain.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{detectors: DefaultDetectors()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze classifies seq. It returns either an Analysis or an *Error of kind
// InvalidInput or NoPatternDetected, never both. seq is not modified.
func (a *Analyzer) Analyze(seq []float64) (Analysis, error) {
	if err := Validate(seq); err != nil {
		return Analysis{}, err
	}
	seq = slices.Clone(seq)

	for _, d := range a.detectors {
		p, ok := d.TryMatch(seq)
		if !ok {
			continue
		}
		predicted := Next(seq, p)
		nextFive := Extrapolate(seq, p, ForecastSteps)
		if !isFinite(predicted) || slices.ContainsFunc(nextFive, func(v float64) bool { return !isFinite(v) }) {
			return Analysis{}, noPattern("detected " + string(p.Type) + " pattern but its extrapolation is not finite")
		}
		return Analysis{Pattern: p, Predicted: predicted, NextFive: nextFive}, nil
	}
	return Analysis{}, noPattern("could not detect a known pattern in this sequence")
}

// AnalyzeValue coerces an arbitrary value (for example decoded JSON) and
// classifies it. Non-list values are reported as InvalidInput.
func (a *Analyzer) AnalyzeValue(v any) (Analysis, error) {
	seq, err := Coerce(v)
	if err != nil {
		return Analysis{}, err
	}
	return a.Analyze(seq)
}

// Detectors returns the detection chain in priority order.
func (a *Analyzer) Detectors() []Detector {
	return slices.Clone(a.detectors)
}
