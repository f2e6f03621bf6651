// Copyright 2026 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bytesplit

import (
	"runtime"

	"github.com/grailbio/base/traverse"
)

// minShardElem is the smallest number of elements worth handing to its own
// goroutine; below this, goroutine startup dominates the memmove.
const minShardElem = 1 << 14

// SplitU16Parallel has the same contract as SplitU16, but splits contiguous,
// disjoint ranges of src concurrently.  parallelism <= 0 means
// runtime.GOMAXPROCS(0).  The precondition is checked once, before any
// goroutine is started.
func SplitU16Parallel(dst []byte, src []uint16, parallelism int) error {
	nElem := len(src)
	if len(dst) != 2*nElem {
		return sizeMismatch("SplitU16Parallel", len(dst), nElem)
	}
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}
	if maxShard := (nElem + minShardElem - 1) / minShardElem; parallelism > maxShard {
		parallelism = maxShard
	}
	if parallelism <= 1 {
		SplitU16Unsafe(dst, src)
		return nil
	}
	return traverse.Limit(parallelism).Range(nElem, func(start, end int) error {
		SplitU16Unsafe(dst[2*start:2*end], src[start:end])
		return nil
	})
}
