// Copyright 2026 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package bench measures bytesplit variants the way the package benchmarks
// do, but from an ordinary binary: each variant is run on 1, half, and all
// CPUs, with one private input/output pair per goroutine.
package bench

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/simd"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/bytesplit"
	"github.com/grailbio/bytesplit/variant"
)

// Opts controls Run.
type Opts struct {
	// NElem is the number of uint16 elements per input buffer.
	NElem int
	// CPUs lists goroutine counts to measure.  Empty means CPUSettings().
	CPUs []int
	// Seed seeds the random input.
	Seed int64
}

// DefaultOpts returns the reference configuration.
func DefaultOpts() Opts {
	return Opts{
		NElem: bytesplit.ReferenceLen,
		Seed:  1,
	}
}

// CPUSetting is one goroutine count to measure at.
type CPUSetting struct {
	NCPU    int
	Descrip string
}

// CPUSettings returns the 1/Half/All CPU settings for this machine.
func CPUSettings() []CPUSetting {
	totalCpu := runtime.NumCPU()
	return []CPUSetting{
		{
			NCPU:    1,
			Descrip: "1Cpu",
		},
		// 'Half' is often the saturation point, due to hyperthreading.
		{
			NCPU:    (totalCpu + 1) / 2,
			Descrip: "HalfCpu",
		},
		{
			NCPU:    totalCpu,
			Descrip: "AllCpu",
		},
	}
}

func (o Opts) settings() ([]CPUSetting, error) {
	if len(o.CPUs) == 0 {
		return CPUSettings(), nil
	}
	settings := make([]CPUSetting, len(o.CPUs))
	for i, n := range o.CPUs {
		if n < 1 {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("bench: invalid CPU count %d", n))
		}
		settings[i] = CPUSetting{NCPU: n, Descrip: fmt.Sprintf("%dCpu", n)}
	}
	return settings, nil
}

// Result is the measurement of one variant at one CPU setting.
type Result struct {
	Variant    string  `json:"variant"`
	Descrip    string  `json:"descrip"`
	NCPU       int     `json:"ncpu"`
	NElem      int     `json:"nelem"`
	Iterations int     `json:"iterations"`
	NsPerOp    float64 `json:"ns_per_op"`
	MBPerSec   float64 `json:"mb_per_sec"`
}

// sink receives one output byte per invocation, so that the compiler cannot
// discard the work being measured.
var sink uint64

// Sink returns the accumulated sink value.
func Sink() uint64 {
	return atomic.LoadUint64(&sink)
}

// Run measures every variant at every CPU setting in opts.  Variants which
// do not support opts.NElem are skipped.  Run checks ctx between
// measurements, and returns the results gathered so far along with the
// context's error.
func Run(ctx context.Context, variants []variant.Variant, opts Opts) ([]Result, error) {
	if opts.NElem < 0 {
		return nil, errors.E(errors.Invalid, fmt.Sprintf("bench: invalid element count %d", opts.NElem))
	}
	settings, err := opts.settings()
	if err != nil {
		return nil, err
	}
	var results []Result
	for _, v := range variants {
		if !v.Supports(opts.NElem) {
			log.Debug.Printf("bench: skipping %v: requires %d elements, have %d", v, v.FixedLen, opts.NElem)
			continue
		}
		for _, c := range settings {
			if err := ctx.Err(); err != nil {
				return results, errors.E(err, "bench")
			}
			r := measure(v, c, opts)
			log.Printf("bench: %s/%s: %d iterations, %.0f ns/op, %.1f MB/s", v.Name, c.Descrip, r.Iterations, r.NsPerOp, r.MBPerSec)
			results = append(results, r)
		}
	}
	return results, nil
}

func measure(v variant.Variant, c CPUSetting, opts Opts) Result {
	nElem := opts.NElem
	dsts := make([][]byte, c.NCPU)
	srcs := make([][]uint16, c.NCPU)
	rng := rand.New(rand.NewSource(opts.Seed))
	for i := 0; i < c.NCPU; i++ {
		// Add 63 to prevent false sharing.
		newArrDst := make([]byte, 2*nElem+63)
		newArrSrc := make([]uint16, nElem+63)
		if i == 0 {
			for j := 0; j < nElem; j++ {
				newArrSrc[j] = uint16(rng.Uint32())
			}
		} else {
			copy(newArrSrc[:nElem], srcs[0])
		}
		dsts[i] = newArrDst[:2*nElem]
		srcs[i] = newArrSrc[:nElem]
	}
	br := testing.Benchmark(func(b *testing.B) {
		b.SetBytes(int64(2 * nElem * c.NCPU))
		for i := 0; i < b.N; i++ {
			_ = traverse.Each(c.NCPU, func(threadIdx int) error {
				dst := dsts[threadIdx]
				v.Fn(dst, srcs[threadIdx])
				if len(dst) > 0 {
					atomic.AddUint64(&sink, uint64(dst[len(dst)-1]))
				}
				return nil
			})
		}
	})
	r := Result{
		Variant:    v.Name,
		Descrip:    c.Descrip,
		NCPU:       c.NCPU,
		NElem:      nElem,
		Iterations: br.N,
	}
	if br.N > 0 {
		r.NsPerOp = float64(br.T.Nanoseconds()) / float64(br.N)
	}
	if secs := br.T.Seconds(); secs > 0 {
		r.MBPerSec = float64(br.Bytes) * float64(br.N) / 1e6 / secs
	}
	return r
}

// Verify runs v once on nElem copies of bytesplit.FillPattern and checks that
// every even output byte is the pattern's low byte and every odd output byte
// its high byte.  A wrong byte produces an error of kind errors.Integrity.
func Verify(v variant.Variant, nElem int) error {
	if !v.Supports(nElem) {
		return errors.E(errors.Invalid, fmt.Sprintf("variant %v does not support %d elements", v, nElem))
	}
	src := make([]uint16, nElem)
	simd.RepeatU16(src, bytesplit.FillPattern)
	dst := make([]byte, 2*nElem)
	v.Fn(dst, src)
	lo, hi := byte(bytesplit.FillPattern & 0xff), byte(bytesplit.FillPattern>>8)
	for i, b := range dst {
		want := lo
		if i&1 == 1 {
			want = hi
		}
		if b != want {
			return errors.E(errors.Integrity,
				fmt.Sprintf("variant %v: output[%d] = %#x, want %#x", v, i, b, want))
		}
	}
	return nil
}
