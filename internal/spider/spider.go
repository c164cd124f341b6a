// Package spider implements the spatial distribution family. Every
// distribution is a pure function of (stream, row index, parameters) into the
// unit square; there is no generation-order dependency anywhere, so disjoint
// index ranges can be sampled in parallel and merged bit-exactly.
package spider

import (
	"errors"
	"fmt"
	"math"

	"github.com/spatialbench/sbgen/internal/seed"
)

// Sampler produces the unit-square point for one row index.
// Implementations must return x, y in [0, 1) and must not retain state.
type Sampler interface {
	Sample(st seed.Stream, index int64) (x, y float64)
}

var ErrDistribution = errors.New("unknown distribution")

// New builds a sampler from its config name and parameter map. Missing
// parameters take documented defaults; invalid ones are rejected here so the
// sampling path never fails.
func New(typ string, params map[string]float64) (Sampler, error) {
	switch typ {
	case "uniform":
		return Uniform{}, nil
	case "normal":
		sigma := param(params, "sigma", 0.1)
		if sigma <= 0 {
			return nil, fmt.Errorf("normal: sigma must be positive, got %v", sigma)
		}
		return Normal{Sigma: sigma}, nil
	case "diagonal":
		percent := param(params, "percent", 0.5)
		buffer := param(params, "buffer", 0.2)
		if percent < 0 || percent > 1 {
			return nil, fmt.Errorf("diagonal: percent must be in [0,1], got %v", percent)
		}
		if buffer <= 0 {
			return nil, fmt.Errorf("diagonal: buffer must be positive, got %v", buffer)
		}
		return Diagonal{Percent: percent, Buffer: buffer}, nil
	case "bit":
		prob := param(params, "probability", 0.2)
		digits := int(param(params, "digits", 10))
		if prob < 0 || prob > 1 {
			return nil, fmt.Errorf("bit: probability must be in [0,1], got %v", prob)
		}
		if digits < 1 || digits > 32 {
			return nil, fmt.Errorf("bit: digits must be in [1,32], got %d", digits)
		}
		return Bit{Prob: prob, Digits: digits}, nil
	case "sierpinski":
		iters := int(param(params, "iterations", 12))
		if iters < 1 || iters > 40 {
			return nil, fmt.Errorf("sierpinski: iterations must be in [1,40], got %d", iters)
		}
		return Sierpinski{Iterations: iters}, nil
	case "thomas":
		ppc := int64(param(params, "points_per_cluster", 100))
		sigma := param(params, "sigma", 0.02)
		if ppc < 1 {
			return nil, fmt.Errorf("thomas: points_per_cluster must be >= 1, got %d", ppc)
		}
		if sigma <= 0 {
			return nil, fmt.Errorf("thomas: sigma must be positive, got %v", sigma)
		}
		return Thomas{PointsPerCluster: ppc, Sigma: sigma}, nil
	case "hier_thomas":
		cpp := int64(param(params, "children_per_parent", 10))
		ppchild := int64(param(params, "points_per_child", 50))
		parentSigma := param(params, "parent_sigma", 0.05)
		childSigma := param(params, "child_sigma", 0.01)
		if cpp < 1 || ppchild < 1 {
			return nil, fmt.Errorf("hier_thomas: cluster sizes must be >= 1, got %d/%d", cpp, ppchild)
		}
		if parentSigma <= 0 || childSigma <= 0 {
			return nil, fmt.Errorf("hier_thomas: sigmas must be positive, got %v/%v", parentSigma, childSigma)
		}
		return HierThomas{
			ChildrenPerParent: cpp,
			PointsPerChild:    ppchild,
			ParentSigma:       parentSigma,
			ChildSigma:        childSigma,
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrDistribution, typ)
}

func param(params map[string]float64, key string, def float64) float64 {
	if v, ok := params[key]; ok {
		return v
	}
	return def
}

// fold reflects v back into [0, 1). Gaussian tails land just inside the
// boundary instead of being discarded, keeping the sample count exact.
func fold(v float64) float64 {
	v = math.Mod(v, 2)
	if v < 0 {
		v += 2
	}
	if v >= 1 {
		v = 2 - v
	}
	if v >= 1 {
		v = math.Nextafter(1, 0)
	}
	return v
}
