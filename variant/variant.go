// Copyright 2026 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package variant collects alternative loop formulations of the little-endian
// uint16 split, so that the benchmark driver can compare how each idiom fares
// with the compiler's bounds-check elimination and code generation.
//
// Every variant has the unchecked signature Func and computes exactly what
// bytesplit.SplitU16 computes; they differ only in how the loop is written.
// Variants are marked go:noinline so that a benchmark measures the loop rather
// than whatever the caller's inlined context allows.
package variant

import (
	"fmt"
	"strings"

	"github.com/grailbio/base/errors"
)

// Func writes the low byte of src[i] to dst[2*i] and the high byte to
// dst[2*i+1] for every i.  It does not validate lengths beyond what the
// individual loop formulation implies.
type Func func(dst []byte, src []uint16)

// Variant is a named Func.
type Variant struct {
	// Name identifies the variant on the command line.
	Name string
	// Doc is a one-line description of the loop formulation.
	Doc string
	// Fn is the implementation.
	Fn Func
	// FixedLen is nonzero for variants which convert their arguments to
	// fixed-size array pointers; such variants only accept len(src) ==
	// FixedLen.
	FixedLen int
}

// Supports returns true iff v can be run on nElem-element input.
func (v Variant) Supports(nElem int) bool {
	return v.FixedLen == 0 || v.FixedLen == nElem
}

// String implements fmt.Stringer.
func (v Variant) String() string {
	if v.FixedLen != 0 {
		return fmt.Sprintf("%s[%d]", v.Name, v.FixedLen)
	}
	return v.Name
}

var registry []Variant

func register(v Variant) {
	for _, r := range registry {
		if r.Name == v.Name {
			panic("variant: duplicate registration of " + v.Name)
		}
	}
	registry = append(registry, v)
}

// All returns every variant, in registration order.
func All() []Variant {
	return append([]Variant(nil), registry...)
}

// Names returns the names of all variants, in registration order.
func Names() []string {
	names := make([]string, len(registry))
	for i, v := range registry {
		names[i] = v.Name
	}
	return names
}

// Lookup returns the variant with the given name.
func Lookup(name string) (Variant, bool) {
	for _, v := range registry {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

// Select returns the named variants in the given order.  An empty list
// selects all variants.  Unknown names produce an error of kind
// errors.Invalid.
func Select(names []string) ([]Variant, error) {
	if len(names) == 0 {
		return All(), nil
	}
	selected := make([]Variant, 0, len(names))
	for _, name := range names {
		v, ok := Lookup(strings.TrimSpace(name))
		if !ok {
			return nil, errors.E(errors.Invalid,
				fmt.Sprintf("unknown variant %q; known variants: %s", name, strings.Join(Names(), ", ")))
		}
		selected = append(selected, v)
	}
	return selected, nil
}
