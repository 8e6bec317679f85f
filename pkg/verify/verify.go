// Copyright (c) 2025, KI7MT.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package verify

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/KI7MT/ki7mt-ai-lab-devel/pkg/errors"
	"github.com/KI7MT/ki7mt-ai-lab-devel/pkg/header"
	"github.com/KI7MT/ki7mt-ai-lab-devel/pkg/host"
	"github.com/KI7MT/ki7mt-ai-lab-devel/pkg/runner"
	"github.com/KI7MT/ki7mt-ai-lab-devel/pkg/systemd"
)

// ErrIncomplete indicates at least one required component is absent.
var ErrIncomplete = errors.New(errors.ErrCodeNotFound,
	"verification incomplete: one or more required components are missing")

// Check describes one expected component. A check passes only when every
// configured probe holds.
type Check struct {
	// Name is the human-facing component name.
	Name string

	// Command is a binary expected on PATH.
	Command string

	// VersionArgs are passed to Command to capture a version string.
	// Defaults to --version when Command is set.
	VersionArgs []string

	// Package is an RPM expected in the package database.
	Package string

	// Unit is a systemd unit expected to be active.
	Unit string

	// Module is a kernel module expected to be loaded.
	Module string

	// Optional checks never fail the aggregate result.
	Optional bool
}

// DefaultChecks returns the component checklist covering everything a
// full provisioning run installs. GPU components and COPR packages are
// optional: hosts without NVIDIA hardware or the KI7MT repository still
// verify clean.
func DefaultChecks() []Check {
	return []Check{
		{Name: "gcc", Command: "gcc"},
		{Name: "make", Command: "make"},
		{Name: "cmake", Command: "cmake"},
		{Name: "git", Command: "git"},
		{Name: "go", Command: "go", VersionArgs: []string{"version"}},
		{Name: "python3", Command: "python3"},
		{Name: "pip3", Command: "pip3"},
		{Name: "clickhouse-client", Command: "clickhouse-client", Package: "clickhouse-client"},
		{Name: "clickhouse-server", Package: "clickhouse-server", Unit: "clickhouse-server.service"},
		{Name: "htop", Command: "htop"},
		{Name: "tmux", Command: "tmux", VersionArgs: []string{"-V"}},
		{Name: "jq", Command: "jq"},
		{Name: "nvidia-driver", Command: "nvidia-smi", Module: "nvidia", Optional: true},
		{Name: "cuda-compiler", Command: "nvcc", Optional: true},
		{Name: "ki7mt-tools", Package: "ki7mt-ailab-tools", Optional: true},
	}
}

// Option is a functional option for configuring a Verifier.
type Option func(*Verifier)

// WithRunner sets the command runner.
func WithRunner(run runner.Runner) Option {
	return func(v *Verifier) {
		v.run = run
	}
}

// WithProbes sets the host state probes.
func WithProbes(probes host.Probes) Option {
	return func(v *Verifier) {
		v.probes = probes
	}
}

// WithUnitChecker sets the systemd unit checker.
func WithUnitChecker(units systemd.UnitChecker) Option {
	return func(v *Verifier) {
		v.units = units
	}
}

// WithChecks replaces the default checklist.
func WithChecks(checks []Check) Option {
	return func(v *Verifier) {
		v.checks = checks
	}
}

// WithVersion sets the tool version recorded in the report header.
func WithVersion(version string) Option {
	return func(v *Verifier) {
		v.version = version
	}
}

// Verifier probes the host for each expected component and aggregates a
// pass/fail report. It never mutates host state and needs no privileges.
type Verifier struct {
	run     runner.Runner
	probes  host.Probes
	units   systemd.UnitChecker
	checks  []Check
	version string
}

// New creates a Verifier with the default checklist and real host probes,
// unless overridden by options.
func New(opts ...Option) *Verifier {
	v := &Verifier{version: "dev"}

	for _, opt := range opts {
		opt(v)
	}

	if v.run == nil {
		v.run = &runner.Exec{}
	}
	if v.probes == nil {
		v.probes = host.NewProbes(v.run)
	}
	if v.units == nil {
		v.units = systemd.NewChecker()
	}
	if v.checks == nil {
		v.checks = DefaultChecks()
	}

	return v
}

// Verify probes every check and returns the aggregate report. Absence of
// a component is reported in the result, never as an error; the only
// error source is context cancellation.
func (v *Verifier) Verify(ctx context.Context) (*Result, error) {
	slog.Info("verifying installed components", "checks", len(v.checks))
	start := time.Now()

	res := &Result{
		Header:     header.New(header.KindVerificationResult, v.version),
		Components: make([]Component, 0, len(v.checks)),
	}

	for _, check := range v.checks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		comp := v.evaluate(ctx, check)
		res.Components = append(res.Components, comp)

		switch comp.Status {
		case StatusPresent:
			res.Summary.Present++
		case StatusMissing:
			res.Summary.Missing++
		case StatusSkipped:
			res.Summary.Skipped++
		}
	}

	res.Summary.Total = len(res.Components)
	res.Summary.Duration = time.Since(start)
	res.Summary.Status = ResultStatusPass
	if res.Failed() {
		res.Summary.Status = ResultStatusFail
	}

	slog.Info("verification complete",
		"status", res.Summary.Status,
		"present", res.Summary.Present,
		"missing", res.Summary.Missing,
		"skipped", res.Summary.Skipped)

	return res, nil
}

func (v *Verifier) evaluate(ctx context.Context, check Check) Component {
	comp := Component{
		Name:     check.Name,
		Required: !check.Optional,
	}

	var absent []string

	if check.Command != "" {
		if _, ok := v.probes.CommandPath(check.Command); ok {
			comp.Version = v.versionOf(ctx, check)
		} else {
			absent = append(absent, check.Command+" not on PATH")
		}
	}

	if check.Package != "" && !v.probes.PackageInstalled(ctx, check.Package) {
		absent = append(absent, check.Package+" not installed")
	}

	if check.Unit != "" && !v.unitActive(ctx, check.Unit) {
		absent = append(absent, check.Unit+" not active")
	}

	if check.Module != "" && !v.probes.ModuleLoaded(check.Module) {
		absent = append(absent, check.Module+" module not loaded")
	}

	if len(absent) == 0 {
		comp.Status = StatusPresent
		return comp
	}

	comp.Detail = strings.Join(absent, "; ")
	if check.Optional {
		comp.Status = StatusSkipped
		slog.Info("optional component absent", "component", check.Name, "detail", comp.Detail)
	} else {
		comp.Status = StatusMissing
		slog.Warn("required component missing", "component", check.Name, "detail", comp.Detail)
	}

	return comp
}

// versionOf captures the first line of the component's version output.
// Best effort: a probe failure just leaves the version empty.
func (v *Verifier) versionOf(ctx context.Context, check Check) string {
	args := check.VersionArgs
	if len(args) == 0 {
		args = []string{"--version"}
	}

	res, err := v.run.Run(ctx, check.Command, args...)
	if err != nil || !res.Success() {
		return ""
	}

	out := res.Stdout
	if out == "" {
		// Some tools (python3 < 3.4 style) print the version to stderr
		out = res.Stderr
	}
	if i := strings.IndexByte(out, '\n'); i >= 0 {
		out = out[:i]
	}
	return strings.TrimSpace(out)
}

// unitActive checks the unit over dbus and falls back to systemctl when
// the system bus is unreachable (e.g. unprivileged runs).
func (v *Verifier) unitActive(ctx context.Context, unit string) bool {
	state, err := v.units.ActiveState(ctx, unit)
	if err == nil {
		return state == systemd.ActiveStateActive
	}

	slog.Debug("systemd dbus unavailable, falling back to systemctl", "unit", unit, "error", err)
	res, err := v.run.Run(ctx, "systemctl", "is-active", "--quiet", unit)
	return err == nil && res.Success()
}
