// Package confidence implements the Bayesian/Wilson termination layer:
// a Beta(successes+alpha, failures+beta) posterior over the true pass
// rate, its CDF via the regularized incomplete beta function, and a
// Wilson score interval as a frequentist cross-check. Stdlib-only by
// necessity — the example pack carries no statistics/special-functions
// library (gonum's specfunc lives only in other_examples/, which is
// reference material, not an importable module), so the regularized
// incomplete beta function is implemented directly via the standard
// continued-fraction method (Numerical Recipes §6.4), the textbook
// approach every from-scratch implementation of this function uses.
package confidence

import "math"

const (
	betaMaxIter = 200
	betaEps     = 3e-10
	betaTiny    = 1e-300
)

// RegularizedIncompleteBeta computes I_x(a, b) for x in [0,1], a,b > 0.
func RegularizedIncompleteBeta(x, a, b float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	lgA, _ := math.Lgamma(a)
	lgB, _ := math.Lgamma(b)
	lgAB, _ := math.Lgamma(a + b)
	front := math.Exp(lgAB - lgA - lgB + a*math.Log(x) + b*math.Log(1-x))
	if x < (a+1)/(a+b+2) {
		return front * betacf(x, a, b) / a
	}
	return 1 - front*betacf(1-x, b, a)/b
}

// betacf evaluates the continued fraction used by RegularizedIncompleteBeta.
func betacf(x, a, b float64) float64 {
	qab := a + b
	qap := a + 1
	qam := a - 1
	c := 1.0
	d := 1 - qab*x/qap
	if math.Abs(d) < betaTiny {
		d = betaTiny
	}
	d = 1 / d
	h := d
	for m := 1; m <= betaMaxIter; m++ {
		m2 := float64(2 * m)

		aa := float64(m) * (b - float64(m)) * x / ((qam + m2) * (a + m2))
		d = 1 + aa*d
		if math.Abs(d) < betaTiny {
			d = betaTiny
		}
		c = 1 + aa/c
		if math.Abs(c) < betaTiny {
			c = betaTiny
		}
		d = 1 / d
		h *= d * c

		aa = -(a + float64(m)) * (qab + float64(m)) * x / ((a + m2) * (qap + m2))
		d = 1 + aa*d
		if math.Abs(d) < betaTiny {
			d = betaTiny
		}
		c = 1 + aa/c
		if math.Abs(c) < betaTiny {
			c = betaTiny
		}
		d = 1 / d
		del := d * c
		h *= del
		if math.Abs(del-1) < betaEps {
			break
		}
	}
	return h
}

// PosteriorCDF returns P(true success rate <= tau | successes, failures)
// under a Beta(successes+alpha, failures+beta) posterior.
func PosteriorCDF(successes, failures int, alpha, beta, tau float64) float64 {
	a := float64(successes) + alpha
	b := float64(failures) + beta
	return RegularizedIncompleteBeta(tau, a, b)
}

// Confidence returns P(true success rate >= tau | data) under a
// Beta(1,1) (uniform) prior — the quantity a "stop once we're confident
// the pass rate is at least tau" termination rule checks.
func Confidence(successes, failures int, tau float64) float64 {
	return 1 - PosteriorCDF(successes, failures, 1, 1, tau)
}

// WilsonInterval returns the two-sided Wilson score interval for a
// binomial proportion (successes out of total) at the given z-score
// (1.96 for ~95%, 2.576 for ~99%).
func WilsonInterval(successes, total int, z float64) (lo, hi float64) {
	if total == 0 {
		return 0, 1
	}
	n := float64(total)
	p := float64(successes) / n
	z2 := z * z
	denom := 1 + z2/n
	center := p + z2/(2*n)
	margin := z * math.Sqrt(p*(1-p)/n+z2/(4*n*n))
	lo = (center - margin) / denom
	hi = (center + margin) / denom
	if lo < 0 {
		lo = 0
	}
	if hi > 1 {
		hi = 1
	}
	return lo, hi
}
