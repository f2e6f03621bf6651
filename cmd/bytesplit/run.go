// Copyright 2026 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/must"
	"github.com/grailbio/base/simd"
	"github.com/grailbio/bytesplit"
	"github.com/grailbio/bytesplit/bench"
	"github.com/grailbio/bytesplit/variant"
	"v.io/x/lib/cmdline"
)

// splitList splits a comma-separated flag value; the empty string yields nil.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func runSmoke(env *cmdline.Env, args []string) error {
	if len(args) != 0 {
		return env.UsageErrorf("smoke: unexpected arguments %v", args)
	}
	if nElemFlag < 1 {
		return env.UsageErrorf("smoke: -n must be positive, got %d", nElemFlag)
	}
	if indexFlag < 0 || indexFlag >= 2*nElemFlag {
		return env.UsageErrorf("smoke: -index must be in [0, %d), got %d", 2*nElemFlag, indexFlag)
	}
	output := make([]byte, 2*nElemFlag)
	input := make([]uint16, nElemFlag)
	simd.RepeatU16(input, bytesplit.FillPattern)
	for _, name := range []string{"unsafe-pointer", "chunk-shift"} {
		v, ok := variant.Lookup(name)
		must.True(ok, "missing variant ", name)
		v.Fn(output, input)
	}
	if err := bytesplit.SplitU16(output, input); err != nil {
		return err
	}
	_, err := fmt.Fprintln(env.Stdout, output[indexFlag])
	return err
}

func runVerify(env *cmdline.Env, args []string) error {
	if len(args) != 0 {
		return env.UsageErrorf("verify: unexpected arguments %v", args)
	}
	if nElemFlag < 0 {
		return env.UsageErrorf("verify: -n must be non-negative, got %d", nElemFlag)
	}
	variants, err := variant.Select(splitList(variantsFlag))
	if err != nil {
		return err
	}
	var nChecked int
	for _, v := range variants {
		if !v.Supports(nElemFlag) {
			log.Printf("verify: skipping %v at %d elements", v, nElemFlag)
			continue
		}
		if err := bench.Verify(v, nElemFlag); err != nil {
			log.Error.Printf("verify: %v", err)
			return err
		}
		nChecked++
		fmt.Fprintf(env.Stdout, "ok\t%s\n", v)
	}
	if nChecked == 0 {
		return errors.E(errors.Invalid, fmt.Sprintf("verify: no selected variant supports %d elements", nElemFlag))
	}
	return nil
}

func parseCPUs(s string) ([]int, error) {
	var cpus []int
	for _, field := range splitList(s) {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil || n < 1 {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("bench: invalid -cpus entry %q", field))
		}
		cpus = append(cpus, n)
	}
	return cpus, nil
}

func runBench(env *cmdline.Env, args []string) error {
	if len(args) != 0 {
		return env.UsageErrorf("bench: unexpected arguments %v", args)
	}
	var write func(*cmdline.Env, bench.HostInfo, []bench.Result) error
	switch formatFlag {
	case "table":
		write = func(env *cmdline.Env, host bench.HostInfo, results []bench.Result) error {
			return bench.WriteTable(env.Stdout, host, results)
		}
	case "json":
		write = func(env *cmdline.Env, host bench.HostInfo, results []bench.Result) error {
			return bench.WriteJSON(env.Stdout, host, results)
		}
	default:
		return env.UsageErrorf("bench: unknown -format %q", formatFlag)
	}
	cpus, err := parseCPUs(cpusFlag)
	if err != nil {
		return err
	}
	variants, err := variant.Select(splitList(variantsFlag))
	if err != nil {
		return err
	}
	opts := bench.DefaultOpts()
	opts.NElem = nElemFlag
	opts.CPUs = cpus
	opts.Seed = seedFlag

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	host := bench.Host()
	log.Printf("bench: %s", host)
	results, err := bench.Run(ctx, variants, opts)
	log.Debug.Printf("bench: sink %d", bench.Sink())
	if werr := write(env, host, results); werr != nil && err == nil {
		err = werr
	}
	return err
}

func runList(env *cmdline.Env, args []string) error {
	if len(args) != 0 {
		return env.UsageErrorf("list: unexpected arguments %v", args)
	}
	for _, v := range variant.All() {
		if _, err := fmt.Fprintf(env.Stdout, "%-22s %s\n", v, v.Doc); err != nil {
			return err
		}
	}
	return nil
}
