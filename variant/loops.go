// Copyright 2026 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package variant

import (
	"encoding/binary"
	"unsafe"

	"github.com/grailbio/bytesplit"
)

// fixedLen is the element count that fixed-size variants are compiled for.
const fixedLen = bytesplit.ReferenceLen

func init() {
	register(Variant{
		Name: "unsafe-pointer",
		Doc:  "C-style loop over raw pointers; no bounds checks at all",
		Fn:   unsafePointer,
	})
	register(Variant{
		Name: "indexed",
		Doc:  "C-style loop, dst[2*i] and dst[2*i+1] indexing on slices",
		Fn:   indexed,
	})
	register(Variant{
		Name: "indexed-hint",
		Doc:  "indexed, after an up-front dst[2*n-1] bounds hint",
		Fn:   indexedHint,
	})
	register(Variant{
		Name:     "indexed-fixed",
		Doc:      "indexed, both buffers converted to fixed-size array pointers",
		Fn:       indexedFixed,
		FixedLen: fixedLen,
	})
	register(Variant{
		Name:     "indexed-input-fixed",
		Doc:      "indexed, only src converted to a fixed-size array pointer",
		Fn:       indexedInputFixed,
		FixedLen: fixedLen,
	})
	register(Variant{
		Name:     "indexed-output-fixed",
		Doc:      "indexed, only dst converted to a fixed-size array pointer",
		Fn:       indexedOutputFixed,
		FixedLen: fixedLen,
	})
	register(Variant{
		Name: "range-reslice",
		Doc:  "range over src, advancing dst = dst[2:] each step",
		Fn:   rangeReslice,
	})
	register(Variant{
		Name: "chunk-exact",
		Doc:  "range over src, writing through a full-slice-expression chunk of dst",
		Fn:   chunkExact,
	})
	register(Variant{
		Name: "chunk-shift",
		Doc:  "range over src, inner loop over the 2-byte chunk shifting the value",
		Fn:   chunkShift,
	})
	register(Variant{
		Name: "binary-le",
		Doc:  "encoding/binary LittleEndian.PutUint16 per element",
		Fn:   binaryLE,
	})
	register(Variant{
		Name: "word64",
		Doc:  "four elements packed into one uint64 store",
		Fn:   word64,
	})
	register(Variant{
		Name: "library",
		Doc:  "bytesplit.SplitU16Unsafe (memmove on little-endian hosts)",
		Fn:   library,
	})
}

// unsafePointer is what one would write in C.  It is memory-unsafe when
// len(dst) < 2*len(src).
//
//go:noinline
func unsafePointer(dst []byte, src []uint16) {
	nElem := len(src)
	if nElem == 0 {
		return
	}
	dstPtr := unsafe.Pointer(unsafe.SliceData(dst))
	srcPtr := unsafe.Pointer(unsafe.SliceData(src))
	for i := 0; i < nElem; i++ {
		b := *((*uint16)(unsafe.Add(srcPtr, 2*i)))
		*((*byte)(unsafe.Add(dstPtr, 2*i))) = byte(b & 0xff)
		*((*byte)(unsafe.Add(dstPtr, 2*i+1))) = byte((b >> 8) & 0xff)
	}
}

//go:noinline
func indexed(dst []byte, src []uint16) {
	for i := 0; i < len(src); i++ {
		b := src[i]
		dst[2*i] = byte(b & 0xff)
		dst[2*i+1] = byte((b >> 8) & 0xff)
	}
}

//go:noinline
func indexedHint(dst []byte, src []uint16) {
	if len(src) == 0 {
		return
	}
	_ = dst[2*len(src)-1]
	for i, b := range src {
		dst[2*i] = byte(b & 0xff)
		dst[2*i+1] = byte((b >> 8) & 0xff)
	}
}

// The fixed-size conversions panic unless len(dst) >= 2*fixedLen and
// len(src) >= fixedLen.

//go:noinline
func indexedFixed(dst []byte, src []uint16) {
	out := (*[2 * fixedLen]byte)(dst)
	in := (*[fixedLen]uint16)(src)
	for i := 0; i < len(in); i++ {
		b := in[i]
		out[2*i] = byte(b & 0xff)
		out[2*i+1] = byte((b >> 8) & 0xff)
	}
}

//go:noinline
func indexedInputFixed(dst []byte, src []uint16) {
	in := (*[fixedLen]uint16)(src)
	for i := 0; i < len(in); i++ {
		b := in[i]
		dst[2*i] = byte(b & 0xff)
		dst[2*i+1] = byte((b >> 8) & 0xff)
	}
}

//go:noinline
func indexedOutputFixed(dst []byte, src []uint16) {
	out := (*[2 * fixedLen]byte)(dst)
	for i := 0; i < len(src); i++ {
		b := src[i]
		out[2*i] = byte(b & 0xff)
		out[2*i+1] = byte((b >> 8) & 0xff)
	}
}

//go:noinline
func rangeReslice(dst []byte, src []uint16) {
	for _, b := range src {
		_ = dst[1]
		dst[0] = byte(b & 0xff)
		dst[1] = byte((b >> 8) & 0xff)
		dst = dst[2:]
	}
}

//go:noinline
func chunkExact(dst []byte, src []uint16) {
	for i, b := range src {
		chunk := dst[2*i : 2*i+2 : 2*i+2]
		chunk[0] = byte(b & 0xff)
		chunk[1] = byte((b >> 8) & 0xff)
	}
}

//go:noinline
func chunkShift(dst []byte, src []uint16) {
	for i, val := range src {
		chunk := dst[2*i : 2*i+2]
		for j := range chunk {
			chunk[j] = byte(val & 0xff)
			val >>= 8
		}
	}
}

//go:noinline
func binaryLE(dst []byte, src []uint16) {
	for i, b := range src {
		binary.LittleEndian.PutUint16(dst[2*i:], b)
	}
}

//go:noinline
func word64(dst []byte, src []uint16) {
	nElem := len(src)
	i := 0
	for ; i+4 <= nElem; i += 4 {
		w := uint64(src[i]) | uint64(src[i+1])<<16 | uint64(src[i+2])<<32 | uint64(src[i+3])<<48
		binary.LittleEndian.PutUint64(dst[2*i:], w)
	}
	for ; i < nElem; i++ {
		binary.LittleEndian.PutUint16(dst[2*i:], src[i])
	}
}

//go:noinline
func library(dst []byte, src []uint16) {
	bytesplit.SplitU16Unsafe(dst, src)
}
