// Copyright 2026 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

//go:build !(386 || amd64 || arm || arm64 || loong64 || mips64le || mipsle || ppc64le || riscv64 || wasm)

package bytesplit

import "unsafe"

// SplitU16Raw assumes src points to an array of nElem 2-byte elements and dst
// points to an array of 2*nElem bytes.  It writes the little-endian
// representation of src to dst.
func SplitU16Raw(dst, src unsafe.Pointer, nElem int) {
	for idx := 0; idx != nElem; idx++ {
		val := *((*uint16)(src))
		*((*byte)(dst)) = byte(val)
		*((*byte)(unsafe.Add(dst, 1))) = byte(val >> 8)
		src = unsafe.Add(src, 2)
		dst = unsafe.Add(dst, 2)
	}
}

// JoinU16Raw assumes src points to an array of 2*nElem bytes and dst points to
// an array of nElem 2-byte elements.  It decodes src as little-endian uint16s.
func JoinU16Raw(dst, src unsafe.Pointer, nElem int) {
	for idx := 0; idx != nElem; idx++ {
		lo := *((*byte)(src))
		hi := *((*byte)(unsafe.Add(src, 1)))
		*((*uint16)(dst)) = uint16(lo) | uint16(hi)<<8
		src = unsafe.Add(src, 2)
		dst = unsafe.Add(dst, 2)
	}
}
