// Copyright 2026 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package bytesplit splits slices of 16-bit unsigned values into their
// little-endian byte representation, and joins them back.
//
// For every i in [0, len(src)), SplitU16 writes the low byte of src[i] to
// dst[2*i] and the high byte to dst[2*i+1].  The only failure mode is a
// length mismatch, which is reported before anything is written.
//
// As in github.com/grailbio/base/simd, two classes of functions are exported:
//
// - Functions with 'Unsafe' or 'Raw' in their names do not validate documented
// preconditions.  They are intended for inner loops where the caller has
// already established the lengths.
//
// - Their safe analogues return an error (see IsSizeMismatch) instead of
// processing mismatched buffers partially.
//
// The iteration-strategy experiments that motivated this package live in the
// variant subpackage, and the benchmark driver comparing them lives in bench.
package bytesplit
