// Copyright 2026 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

//go:build 386 || amd64 || arm || arm64 || loong64 || mips64le || mipsle || ppc64le || riscv64 || wasm

package bytesplit

import "unsafe"

// SplitU16Raw assumes src points to an array of nElem 2-byte elements and dst
// points to an array of 2*nElem bytes.  It writes the little-endian
// representation of src to dst.
//
// On little-endian hosts the in-memory representation already is the output,
// so this is a single memmove.
func SplitU16Raw(dst, src unsafe.Pointer, nElem int) {
	if nElem == 0 {
		return
	}
	copy(unsafe.Slice((*byte)(dst), 2*nElem), unsafe.Slice((*byte)(src), 2*nElem))
}

// JoinU16Raw assumes src points to an array of 2*nElem bytes and dst points to
// an array of nElem 2-byte elements.  It decodes src as little-endian uint16s.
func JoinU16Raw(dst, src unsafe.Pointer, nElem int) {
	if nElem == 0 {
		return
	}
	copy(unsafe.Slice((*byte)(dst), 2*nElem), unsafe.Slice((*byte)(src), 2*nElem))
}
