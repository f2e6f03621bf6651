// Copyright 2026 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bench

import (
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/sys/cpu"
)

// HostInfo describes the machine a benchmark ran on.  Results are only
// comparable between runs with the same HostInfo.
type HostInfo struct {
	GOOS      string   `json:"goos"`
	GOARCH    string   `json:"goarch"`
	GoVersion string   `json:"go_version"`
	NumCPU    int      `json:"num_cpu"`
	Features  []string `json:"features"`
}

// Host returns the HostInfo for the current process.
func Host() HostInfo {
	h := HostInfo{
		GOOS:      runtime.GOOS,
		GOARCH:    runtime.GOARCH,
		GoVersion: runtime.Version(),
		NumCPU:    runtime.NumCPU(),
	}
	add := func(name string, present bool) {
		if present {
			h.Features = append(h.Features, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		add("sse2", cpu.X86.HasSSE2)
		add("ssse3", cpu.X86.HasSSSE3)
		add("sse4.1", cpu.X86.HasSSE41)
		add("sse4.2", cpu.X86.HasSSE42)
		add("avx", cpu.X86.HasAVX)
		add("avx2", cpu.X86.HasAVX2)
		add("avx512f", cpu.X86.HasAVX512F)
		add("avx512bw", cpu.X86.HasAVX512BW)
	case "arm64":
		add("asimd", cpu.ARM64.HasASIMD)
		add("sve", cpu.ARM64.HasSVE)
	}
	return h
}

// String returns a one-line summary of h.
func (h HostInfo) String() string {
	features := "none"
	if len(h.Features) > 0 {
		features = strings.Join(h.Features, ",")
	}
	return fmt.Sprintf("%s/%s %s, %d cpus, features: %s", h.GOOS, h.GOARCH, h.GoVersion, h.NumCPU, features)
}

// WriteTable writes a human-readable table of results to w.
func WriteTable(w io.Writer, host HostInfo, results []Result) error {
	if _, err := fmt.Fprintf(w, "host: %s\n", host); err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"variant", "cpus", "elements", "iterations", "ns/op", "MB/s"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, r := range results {
		table.Append([]string{
			r.Variant,
			r.Descrip,
			strconv.Itoa(r.NElem),
			strconv.Itoa(r.Iterations),
			strconv.FormatFloat(r.NsPerOp, 'f', 0, 64),
			strconv.FormatFloat(r.MBPerSec, 'f', 1, 64),
		})
	}
	table.Render()
	return nil
}

type jsonReport struct {
	Host    HostInfo `json:"host"`
	Results []Result `json:"results"`
}

// WriteJSON writes host and results to w as a single JSON object followed by
// a newline.
func WriteJSON(w io.Writer, host HostInfo, results []Result) error {
	if results == nil {
		results = []Result{}
	}
	data, err := sonic.Marshal(jsonReport{Host: host, Results: results})
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
