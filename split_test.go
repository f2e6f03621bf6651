// Copyright 2026 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bytesplit_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/go-test/deep"
	fuzz "github.com/google/gofuzz"
	"github.com/grailbio/base/simd"
	"github.com/grailbio/bytesplit"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

// splitU16Slow is the textbook modulo/division formulation.
func splitU16Slow(dst []byte, src []uint16) {
	for i, v := range src {
		dst[2*i] = byte(v % 256)
		dst[2*i+1] = byte((v / 256) % 256)
	}
}

func TestSplitU16Pattern(t *testing.T) {
	src := make([]uint16, bytesplit.ReferenceLen)
	simd.RepeatU16(src, bytesplit.FillPattern)
	dst := make([]byte, 2*bytesplit.ReferenceLen)
	assert.NoError(t, bytesplit.SplitU16(dst, src))
	for i, b := range dst {
		if i%2 == 0 {
			if b != 0xaa {
				t.Fatalf("dst[%d] = %#x, want 0xaa", i, b)
			}
		} else if b != 0xff {
			t.Fatalf("dst[%d] = %#x, want 0xff", i, b)
		}
	}
}

func TestSplitU16Empty(t *testing.T) {
	assert.NoError(t, bytesplit.SplitU16(nil, nil))
	assert.NoError(t, bytesplit.SplitU16([]byte{}, []uint16{}))

	// Zero-length subslices of a live buffer must not be written through.
	arr := []byte{1, 2, 3}
	assert.NoError(t, bytesplit.SplitU16(arr[1:1], []uint16{}))
	expect.EQ(t, arr, []byte{1, 2, 3})
}

func TestSplitU16Boundaries(t *testing.T) {
	for _, c := range []struct {
		val    uint16
		lo, hi byte
	}{
		{0x0000, 0x00, 0x00},
		{0xffff, 0xff, 0xff},
		{0x00ff, 0xff, 0x00},
		{0xff00, 0x00, 0xff},
		{0x0100, 0x00, 0x01},
		{0x1234, 0x34, 0x12},
	} {
		dst := []byte{0x55, 0x55}
		assert.NoError(t, bytesplit.SplitU16(dst, []uint16{c.val}))
		expect.EQ(t, dst, []byte{c.lo, c.hi}, "val %#04x", c.val)
	}
}

func TestSplitU16AllValues(t *testing.T) {
	src := make([]uint16, 1<<16)
	for i := range src {
		src[i] = uint16(i)
	}
	dst1 := make([]byte, 2*len(src))
	dst2 := make([]byte, 2*len(src))
	splitU16Slow(dst1, src)
	assert.NoError(t, bytesplit.SplitU16(dst2, src))
	if diff := deep.Equal(dst1, dst2); diff != nil {
		t.Fatal(diff)
	}
}

func TestSplitU16SizeMismatch(t *testing.T) {
	for _, c := range []struct {
		nSrc, nDst int
	}{
		{5, 9},
		{5, 11},
		{5, 0},
		{0, 1},
		{1, 1},
	} {
		src := make([]uint16, c.nSrc)
		for i := range src {
			src[i] = 0x1234
		}
		dst := make([]byte, c.nDst)
		for i := range dst {
			dst[i] = 0x77
		}
		orig := append([]byte(nil), dst...)
		err := bytesplit.SplitU16(dst, src)
		assert.True(t, err != nil)
		expect.True(t, bytesplit.IsSizeMismatch(err), "nSrc=%d nDst=%d: %v", c.nSrc, c.nDst, err)
		expect.HasSubstr(t, err.Error(), "SplitU16")
		expect.EQ(t, dst, orig, "no partial writes")

		err = bytesplit.SplitU16Parallel(dst, src, 4)
		expect.True(t, bytesplit.IsSizeMismatch(err))
		expect.EQ(t, dst, orig)
	}
	expect.False(t, bytesplit.IsSizeMismatch(nil))
}

func TestSplitU16Deterministic(t *testing.T) {
	src := make([]uint16, 1000)
	for i := range src {
		src[i] = uint16(rand.Uint32())
	}
	dst1 := make([]byte, 2*len(src))
	dst2 := make([]byte, 2*len(src))
	assert.NoError(t, bytesplit.SplitU16(dst1, src))
	assert.NoError(t, bytesplit.SplitU16(dst2, src))
	if !bytes.Equal(dst1, dst2) {
		t.Fatal("SplitU16 is not deterministic.")
	}
}

func TestSplitU16RoundTrip(t *testing.T) {
	fz := fuzz.NewWithSeed(1).NilChance(0).NumElements(0, 2000)
	const nIter = 300
	for iter := 0; iter < nIter; iter++ {
		var src []uint16
		fz.Fuzz(&src)
		srcCopy := append([]uint16(nil), src...)
		dst := make([]byte, 2*len(src))
		assert.NoError(t, bytesplit.SplitU16(dst, src))
		expect.EQ(t, src, srcCopy, "src must not be modified")

		joined := make([]uint16, len(src))
		assert.NoError(t, bytesplit.JoinU16(joined, dst))
		if diff := deep.Equal(joined, src); diff != nil {
			t.Fatalf("iter %d: %v", iter, diff)
		}
		for i, v := range src {
			if combined := uint16(dst[2*i]) | uint16(dst[2*i+1])<<8; combined != v {
				t.Fatalf("iter %d: recombined[%d] = %#x, want %#x", iter, i, combined, v)
			}
		}
	}
}

func TestJoinU16SizeMismatch(t *testing.T) {
	dst := []uint16{7, 7}
	err := bytesplit.JoinU16(dst, []byte{1, 2, 3})
	expect.True(t, bytesplit.IsSizeMismatch(err))
	expect.HasSubstr(t, err.Error(), "JoinU16")
	expect.EQ(t, dst, []uint16{7, 7})
	assert.NoError(t, bytesplit.JoinU16(nil, nil))
}

func TestSplitU16Unsafe(t *testing.T) {
	maxSize := 500
	nIter := 200
	main1Arr := make([]byte, 2*maxSize+1)
	main2Arr := make([]byte, 2*maxSize+1)
	srcArr := make([]uint16, maxSize)
	for iter := 0; iter < nIter; iter++ {
		sliceStart := rand.Intn(maxSize)
		sliceEnd := sliceStart + rand.Intn(maxSize-sliceStart)
		src := srcArr[sliceStart:sliceEnd]
		for i := range src {
			src[i] = uint16(rand.Uint32())
		}
		main1Slice := main1Arr[2*sliceStart : 2*sliceEnd]
		main2Slice := main2Arr[2*sliceStart : 2*sliceEnd]
		sentinel := byte(rand.Intn(256))
		main2Arr[2*sliceEnd] = sentinel
		splitU16Slow(main1Slice, src)
		bytesplit.SplitU16Unsafe(main2Slice, src)
		if !bytes.Equal(main1Slice, main2Slice) {
			t.Fatal("Mismatched SplitU16Unsafe result.")
		}
		if main2Arr[2*sliceEnd] != sentinel {
			t.Fatal("SplitU16Unsafe clobbered an extra byte.")
		}
	}
}

func TestSplitU16UnsafeShortDst(t *testing.T) {
	dst := []byte{9, 9, 9}
	defer func() {
		if recover() == nil {
			t.Fatal("SplitU16Unsafe did not panic on a short dst.")
		}
		expect.EQ(t, dst, []byte{9, 9, 9})
	}()
	bytesplit.SplitU16Unsafe(dst, []uint16{1, 2})
}

func TestSplitU16Parallel(t *testing.T) {
	for _, nElem := range []int{0, 1, 7, 1 << 14, 100003, bytesplit.ReferenceLen} {
		src := make([]uint16, nElem)
		for i := range src {
			src[i] = uint16(rand.Uint32())
		}
		want := make([]byte, 2*nElem)
		splitU16Slow(want, src)
		for _, parallelism := range []int{-1, 0, 1, 3, 8, 64} {
			got := make([]byte, 2*nElem)
			assert.NoError(t, bytesplit.SplitU16Parallel(got, src, parallelism))
			if !bytes.Equal(got, want) {
				t.Fatalf("nElem=%d parallelism=%d: mismatched SplitU16Parallel result", nElem, parallelism)
			}
		}
	}
}
