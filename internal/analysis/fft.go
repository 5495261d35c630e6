package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// FFT transforms data after zero-padding it to a power of two, which keeps
// bin spacing predictable for PowerSpectrum.
func FFT(data []float64) []complex128 {
	padded := make([]float64, nextPow2(len(data)))
	copy(padded, data)
	return fft.FFTReal(padded)
}

// PowerSpectrum returns the magnitudes of the non-negative frequency bins.
// Bin k corresponds to k/(N*dt) for the padded length N.
func PowerSpectrum(data []float64) []float64 {
	bins := FFT(data)
	ps := make([]float64, len(bins)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(bins[i])
	}
	return ps
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

// DominantPeriod estimates the period of the strongest oscillation in
// samples spaced dt apart. The series is mean-centred and zero-padded to a
// power of two; the peak bin is refined by parabolic interpolation. A series
// whose strongest bin is negligible against its amplitude gives
// ErrNoOscillation.
func DominantPeriod(samples []float64, dt float64) (float64, error) {
	if len(samples) < 4 {
		return 0, ErrTooShort
	}

	mean, amp := 0.0, 0.0
	for _, v := range samples {
		mean += v
		amp = math.Max(amp, math.Abs(v))
	}
	mean /= float64(len(samples))

	n := nextPow2(len(samples))
	padded := make([]float64, n)
	for i, v := range samples {
		padded[i] = v - mean
	}

	ps := PowerSpectrum(padded)

	peak := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[peak] {
			peak = k
		}
	}

	// a sinusoid of amplitude A peaks near A*len/2
	if ps[peak] <= 1e-9*amp*float64(len(samples)) {
		return 0, ErrNoOscillation
	}

	k := float64(peak)
	if peak+1 < len(ps) {
		a, b, c := ps[peak-1], ps[peak], ps[peak+1]
		if den := a - 2*b + c; den != 0 {
			k += 0.5 * (a - c) / den
		}
	}
	return float64(n) * dt / k, nil
}
