// Copyright 2026 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bytesplit

import (
	"fmt"
	"unsafe"

	"github.com/grailbio/base/errors"
)

// ReferenceLen is the number of 16-bit elements in the reference benchmark
// configuration.  The corresponding output buffer is 2*ReferenceLen bytes.
const ReferenceLen = 320000

// FillPattern is the value the correctness check fills its input with.  Every
// even output byte is then 0xaa and every odd output byte is 0xff.
const FillPattern = uint16(0xffaa)

func sizeMismatch(op string, nByte, nU16 int) error {
	return errors.E(errors.Precondition,
		fmt.Sprintf("bytesplit.%s: requires byte length == 2 * uint16 length, got %d bytes and %d uint16s", op, nByte, nU16))
}

// IsSizeMismatch returns true iff err was returned by this package because the
// byte-slice length was not exactly twice the uint16-slice length.
func IsSizeMismatch(err error) bool {
	return errors.Is(errors.Precondition, err)
}

// SplitU16 sets dst[2*pos] := byte(src[pos]) and dst[2*pos+1] :=
// byte(src[pos] >> 8) for every position in src.
//
// It returns a size-mismatch error, without modifying dst, unless len(dst) ==
// 2 * len(src).  A longer dst is rejected as well.
func SplitU16(dst []byte, src []uint16) error {
	if len(dst) != 2*len(src) {
		return sizeMismatch("SplitU16", len(dst), len(src))
	}
	SplitU16Unsafe(dst, src)
	return nil
}

// SplitU16Unsafe is the unchecked version of SplitU16.
//
// WARNING: This assumes len(dst) >= 2 * len(src).  When that isn't true it
// panics before writing anything; bytes past dst[2*len(src)-1] are never
// touched.
func SplitU16Unsafe(dst []byte, src []uint16) {
	nElem := len(src)
	if nElem == 0 {
		return
	}
	_ = dst[2*nElem-1]
	SplitU16Raw(unsafe.Pointer(&dst[0]), unsafe.Pointer(&src[0]), nElem)
}

// JoinU16 sets dst[pos] := uint16(src[2*pos]) | uint16(src[2*pos+1]) << 8 for
// every position in dst.  It is the inverse of SplitU16.
//
// It returns a size-mismatch error, without modifying dst, unless len(src) ==
// 2 * len(dst).
func JoinU16(dst []uint16, src []byte) error {
	nElem := len(dst)
	if len(src) != 2*nElem {
		return sizeMismatch("JoinU16", len(src), nElem)
	}
	if nElem != 0 {
		JoinU16Raw(unsafe.Pointer(&dst[0]), unsafe.Pointer(&src[0]), nElem)
	}
	return nil
}
