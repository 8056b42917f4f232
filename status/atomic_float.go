package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat stores a float64 as bits; the zero value is 0.0
type AtomicFloat struct {
	bits atomic.Uint64
}

func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Add adds delta and returns the new value
func (f *AtomicFloat) Add(delta float64) float64 {
	return f.update(func(old float64) (float64, bool) { return old + delta, true })
}

// Max raises the value to val if larger and returns the result
// A NaN value counts as unset and is always replaced
func (f *AtomicFloat) Max(val float64) float64 {
	return f.update(func(old float64) (float64, bool) { return val, val > old || math.IsNaN(old) })
}

// Min lowers the value to val if smaller and returns the result
// A NaN value counts as unset and is always replaced
func (f *AtomicFloat) Min(val float64) float64 {
	return f.update(func(old float64) (float64, bool) { return val, val < old || math.IsNaN(old) })
}

// update runs a CAS loop; fn reports false to leave the value untouched
func (f *AtomicFloat) update(fn func(old float64) (float64, bool)) float64 {
	for {
		oldBits := f.bits.Load()
		old := math.Float64frombits(oldBits)
		next, ok := fn(old)
		if !ok {
			return old
		}
		if f.bits.CompareAndSwap(oldBits, math.Float64bits(next)) {
			return next
		}
	}
}
