// Copyright 2026 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Command bytesplit checks and benchmarks the uint16 little-endian byte split
// variants.
//
//	bytesplit smoke                 print one byte of the reference split
//	bytesplit verify [-variants=..] check every variant on the 0xffaa pattern
//	bytesplit bench [-format=json]  measure variants on 1/half/all CPUs
//	bytesplit list                  list the variants
//
// Global profiling flags (e.g. -cpu-profile) are provided by
// github.com/grailbio/base/pprof.  Setting GOPS in the environment starts a
// gops agent.
package main

import (
	"os"

	"github.com/google/gops/agent"
	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/log"
	"github.com/grailbio/bytesplit"
	"v.io/x/lib/cmdline"
)

var (
	nElemFlag    int
	variantsFlag string
	indexFlag    int
	cpusFlag     string
	seedFlag     int64
	formatFlag   string
)

func newCmdRoot() *cmdline.Command {
	return &cmdline.Command{
		Name:     "bytesplit",
		Short:    "Check and benchmark uint16 little-endian byte split variants",
		LookPath: false,
		Children: []*cmdline.Command{
			newCmdSmoke(),
			newCmdVerify(),
			newCmdBench(),
			newCmdList(),
		},
	}
}

func newCmdSmoke() *cmdline.Command {
	cmd := &cmdline.Command{
		Runner: cmdutil.RunnerFunc(runSmoke),
		Name:   "smoke",
		Short:  "Split the 0xffaa reference pattern and print one output byte",
		Long: `
Smoke allocates the reference buffers, fills the input with 0xffaa, splits it
with the unsafe-pointer and chunk-shift variants and with bytesplit.SplitU16,
and prints output[index] in decimal.  With the defaults it prints 255.
`,
	}
	cmd.Flags.IntVar(&nElemFlag, "n", bytesplit.ReferenceLen, "Number of uint16 input elements.")
	cmd.Flags.IntVar(&indexFlag, "index", 55, "Output byte to print.")
	return cmd
}

func newCmdVerify() *cmdline.Command {
	cmd := &cmdline.Command{
		Runner: cmdutil.RunnerFunc(runVerify),
		Name:   "verify",
		Short:  "Check every variant against the 0xffaa pattern",
	}
	cmd.Flags.IntVar(&nElemFlag, "n", bytesplit.ReferenceLen, "Number of uint16 input elements.")
	cmd.Flags.StringVar(&variantsFlag, "variants", "", "Comma-separated variant names; empty means all.")
	return cmd
}

func newCmdBench() *cmdline.Command {
	cmd := &cmdline.Command{
		Runner: cmdutil.RunnerFunc(runBench),
		Name:   "bench",
		Short:  "Benchmark variants on 1, half, and all CPUs",
	}
	cmd.Flags.IntVar(&nElemFlag, "n", bytesplit.ReferenceLen, "Number of uint16 input elements.")
	cmd.Flags.StringVar(&variantsFlag, "variants", "", "Comma-separated variant names; empty means all.")
	cmd.Flags.StringVar(&cpusFlag, "cpus", "", "Comma-separated goroutine counts; empty means 1, half, and all CPUs.")
	cmd.Flags.Int64Var(&seedFlag, "seed", 1, "Seed for the random input.")
	cmd.Flags.StringVar(&formatFlag, "format", "table", "Output format: table or json.")
	return cmd
}

func newCmdList() *cmdline.Command {
	return &cmdline.Command{
		Runner: cmdutil.RunnerFunc(runList),
		Name:   "list",
		Short:  "List the variants",
	}
}

func main() {
	if _, ok := os.LookupEnv("GOPS"); ok {
		if err := agent.Listen(agent.Options{}); err != nil {
			log.Print(err)
		}
	}
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(newCmdRoot())
}
