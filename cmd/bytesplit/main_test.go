// Copyright 2026 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/bytesplit/variant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"v.io/x/lib/cmdline"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	env := &cmdline.Env{Stdout: &stdout, Stderr: &stderr}
	err := cmdline.ParseAndRun(newCmdRoot(), env, args)
	return stdout.String(), err
}

func TestSmoke(t *testing.T) {
	out, err := run(t, "smoke")
	require.NoError(t, err)
	assert.Equal(t, "255\n", out)

	out, err = run(t, "smoke", "-index=54")
	require.NoError(t, err)
	assert.Equal(t, "170\n", out)

	out, err = run(t, "smoke", "-n=1", "-index=1")
	require.NoError(t, err)
	assert.Equal(t, "255\n", out)

	_, err = run(t, "smoke", "-n=10", "-index=20")
	assert.Error(t, err)
	_, err = run(t, "smoke", "extra")
	assert.Error(t, err)
}

func TestVerify(t *testing.T) {
	out, err := run(t, "verify", "-variants=library,indexed", "-n=1000")
	require.NoError(t, err)
	assert.Equal(t, "ok\tlibrary\nok\tindexed\n", out)

	out, err = run(t, "verify")
	require.NoError(t, err)
	assert.Equal(t, len(variant.All()), strings.Count(out, "ok\t"))

	_, err = run(t, "verify", "-variants=bogus")
	assert.True(t, errors.Is(errors.Invalid, err), "err=%v", err)

	_, err = run(t, "verify", "-variants=indexed-fixed", "-n=10")
	assert.True(t, errors.Is(errors.Invalid, err), "err=%v", err)
}

func TestBenchFlags(t *testing.T) {
	_, err := run(t, "bench", "-format=xml")
	assert.Error(t, err)

	_, err = run(t, "bench", "-cpus=1,x")
	assert.True(t, errors.Is(errors.Invalid, err), "err=%v", err)

	_, err = run(t, "bench", "-cpus=0")
	assert.True(t, errors.Is(errors.Invalid, err), "err=%v", err)

	_, err = run(t, "bench", "-variants=nope")
	assert.True(t, errors.Is(errors.Invalid, err), "err=%v", err)
}

func TestBenchJSON(t *testing.T) {
	if testing.Short() {
		t.Skip("runs real benchmarks")
	}
	out, err := run(t, "bench", "-variants=library", "-n=64", "-cpus=1", "-format=json")
	require.NoError(t, err)
	var report struct {
		Host struct {
			GOARCH string `json:"goarch"`
		} `json:"host"`
		Results []struct {
			Variant string `json:"variant"`
			NCPU    int    `json:"ncpu"`
			NElem   int    `json:"nelem"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.NotEmpty(t, report.Host.GOARCH)
	require.Len(t, report.Results, 1)
	assert.Equal(t, "library", report.Results[0].Variant)
	assert.Equal(t, 1, report.Results[0].NCPU)
	assert.Equal(t, 64, report.Results[0].NElem)
}

func TestList(t *testing.T) {
	out, err := run(t, "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, len(variant.All()))
	for i, name := range variant.Names() {
		assert.True(t, strings.HasPrefix(lines[i], name), "line %q", lines[i])
	}
	assert.Contains(t, out, "indexed-fixed[320000]")
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a", "b"}, splitList("a,b"))
	cpus, err := parseCPUs(" 1, 4")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4}, cpus)
}
