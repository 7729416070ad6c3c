// Package dist wraps the named probability laws used for failure and repair
// timing. Sampling is delegated to gonum's distuv; this package adds eager
// parameter validation and the "none" law used for unrepairable components.
package dist

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"
)

// ErrInvalidParameters is returned when a law rejects its parameters at
// construction time.
var ErrInvalidParameters = errors.New("invalid distribution parameters")

// Law identifies a probability law.
type Law int

const (
	LawExponential Law = iota
	LawWeibull
	LawGamma
	// LawNone means "never": sampling always yields 0. It is legal only as
	// a repair law.
	LawNone
)

// String returns the law name as it appears in model files.
func (l Law) String() string {
	switch l {
	case LawExponential:
		return "exponential"
	case LawWeibull:
		return "weibull"
	case LawGamma:
		return "gamma"
	case LawNone:
		return "none"
	default:
		return fmt.Sprintf("Law(%d)", int(l))
	}
}

// ParseLaw maps a model-file law name to a Law. "exp" is accepted as a
// shorthand for "exponential".
func ParseLaw(s string) (Law, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exponential", "exp":
		return LawExponential, nil
	case "weibull":
		return LawWeibull, nil
	case "gamma":
		return LawGamma, nil
	case "none":
		return LawNone, nil
	default:
		return 0, fmt.Errorf("unknown distribution law %q", s)
	}
}

// Spec describes a law plus its parameters as declared in a model file.
// Rate applies to the exponential law; Shape and Scale to Weibull and gamma.
type Spec struct {
	Law   Law
	Rate  float64
	Shape float64
	Scale float64
}

// Sampler draws random variates from a validated Spec.
type Sampler struct {
	law   Law
	rate  float64
	shape float64
	scale float64
}

// New validates spec and returns a Sampler for it.
//
// The exponential law ignores Shape; a non-zero Shape is almost always a
// caller mistake, so it is logged as a warning (set Shape to 0 to silence).
// The none law likewise warns on any non-zero parameter. A nil logger falls
// back to slog.Default.
func New(spec Spec, logger *slog.Logger) (*Sampler, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch spec.Law {
	case LawExponential:
		if spec.Rate <= 0 {
			return nil, fmt.Errorf("%w: exponential rate must be positive, got %g", ErrInvalidParameters, spec.Rate)
		}
		if spec.Shape != 0 {
			logger.Warn("shape parameter is ignored for the exponential law; set shape to 0 to silence this warning",
				"shape", spec.Shape)
		}
	case LawWeibull:
		if spec.Shape <= 0 || spec.Scale <= 0 {
			return nil, fmt.Errorf("%w: weibull shape and scale must be positive, got shape=%g scale=%g",
				ErrInvalidParameters, spec.Shape, spec.Scale)
		}
	case LawGamma:
		if spec.Shape <= 0 || spec.Scale <= 0 {
			return nil, fmt.Errorf("%w: gamma shape and scale must be positive, got shape=%g scale=%g",
				ErrInvalidParameters, spec.Shape, spec.Scale)
		}
	case LawNone:
		if spec.Rate != 0 || spec.Shape != 0 || spec.Scale != 0 {
			logger.Warn("parameters are ignored for the none law; set them to 0 to silence this warning",
				"rate", spec.Rate, "shape", spec.Shape, "scale", spec.Scale)
		}
	default:
		return nil, fmt.Errorf("%w: unknown law %d", ErrInvalidParameters, int(spec.Law))
	}

	return &Sampler{law: spec.Law, rate: spec.Rate, shape: spec.Shape, scale: spec.Scale}, nil
}

// Law reports which law this sampler draws from.
func (s *Sampler) Law() Law { return s.law }

// Sample draws one non-negative variate using rng. The none law always
// yields exactly 0.
func (s *Sampler) Sample(rng *rand.Rand) float64 {
	switch s.law {
	case LawExponential:
		return distuv.Exponential{Rate: s.rate, Src: rng}.Rand()
	case LawWeibull:
		return distuv.Weibull{K: s.shape, Lambda: s.scale, Src: rng}.Rand()
	case LawGamma:
		// distuv parameterizes gamma by rate (Beta); model files use scale.
		return distuv.Gamma{Alpha: s.shape, Beta: 1 / s.scale, Src: rng}.Rand()
	case LawNone:
		return 0
	default:
		panic(fmt.Sprintf("dist: sampler has corrupt law %d", int(s.law)))
	}
}
