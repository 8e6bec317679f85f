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

package provision

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/KI7MT/ki7mt-ai-lab-devel/pkg/errors"
	"github.com/KI7MT/ki7mt-ai-lab-devel/pkg/host"
	"github.com/KI7MT/ki7mt-ai-lab-devel/pkg/runner"
	"github.com/KI7MT/ki7mt-ai-lab-devel/pkg/serializer"
	"github.com/KI7MT/ki7mt-ai-lab-devel/pkg/verify"
)

// Step is a named, idempotent unit of provisioning work. Steps check
// current host state first and short-circuit when the target state
// already holds.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// Option is a functional option for configuring an Orchestrator.
type Option func(*Orchestrator)

// WithRunner sets the command runner.
func WithRunner(run runner.Runner) Option {
	return func(o *Orchestrator) {
		o.run = run
	}
}

// WithProbes sets the host state probes.
func WithProbes(probes host.Probes) Option {
	return func(o *Orchestrator) {
		o.probes = probes
	}
}

// WithVerifier sets the component verifier.
func WithVerifier(v *verify.Verifier) Option {
	return func(o *Orchestrator) {
		o.verifier = v
	}
}

// WithSerializer sets the destination for the verification report.
func WithSerializer(s serializer.Serializer) Option {
	return func(o *Orchestrator) {
		o.reporter = s
	}
}

// Orchestrator executes mode-selected provisioning plans against the
// host. It is constructed once per invocation with the detected
// distribution identity and carries no other mutable state besides the
// COPR availability flag set during repository registration.
type Orchestrator struct {
	distro   *host.Distro
	run      runner.Runner
	probes   host.Probes
	verifier *verify.Verifier
	reporter serializer.Serializer

	// set false when the COPR repository cannot be enabled; the KI7MT
	// package step then becomes a warning no-op.
	coprAvailable bool
}

// New creates an Orchestrator for the detected distribution. The distro
// may be nil for modes that do not require detection (tune, verify).
func New(distro *host.Distro, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		distro:        distro,
		coprAvailable: true,
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.run == nil {
		o.run = &runner.Exec{}
	}
	if o.probes == nil {
		o.probes = host.NewProbes(o.run)
	}
	if o.verifier == nil {
		o.verifier = verify.New(verify.WithRunner(o.run), verify.WithProbes(o.probes))
	}
	if o.reporter == nil {
		o.reporter = serializer.NewWriter(serializer.FormatTable, nil)
	}

	return o
}

// Plan returns the ordered step sequence for the given mode. The
// sequence is fixed per mode; steps run top to bottom with no
// continuation past the first fatal failure.
func (o *Orchestrator) Plan(mode Mode) []Step {
	repos := []Step{
		{Name: "repo-epel", Run: o.ensureEPEL},
		{Name: "repo-cuda", Run: o.ensureCUDARepo},
		{Name: "repo-clickhouse", Run: o.ensureClickHouseRepo},
		{Name: "repo-copr", Run: o.ensureCOPR},
		{Name: "refresh-cache", Run: o.refreshCache},
	}

	tune := []Step{
		{Name: "tune-sysctl", Run: o.writeSysctlConfig},
		{Name: "tune-limits", Run: o.writeLimitsConfig},
		{Name: "tune-clickhouse", Run: o.writeClickHouseConfig},
		{Name: "apply-sysctl", Run: o.applySysctl},
	}

	verifyStep := Step{Name: "verify", Run: o.runVerification}

	switch mode {
	case ModeFull:
		steps := append([]Step{}, repos...)
		steps = append(steps,
			Step{Name: "install-build-tools", Run: o.installBuildTools},
			Step{Name: "install-golang", Run: o.installGolang},
			Step{Name: "install-cuda-driver", Run: o.installCUDADriver},
			Step{Name: "install-cuda-toolkit", Run: o.installCUDAToolkit},
			Step{Name: "install-clickhouse", Run: o.installClickHouse},
			Step{Name: "install-python", Run: o.installPython},
			Step{Name: "install-pip-ml", Run: o.installPipML},
			Step{Name: "install-utilities", Run: o.installUtilities},
			Step{Name: "install-ki7mt-apps", Run: o.installKI7MTApps},
		)
		steps = append(steps, tune...)
		return append(steps, verifyStep)

	case ModeMinimal:
		steps := append([]Step{}, repos...)
		steps = append(steps,
			Step{Name: "install-build-tools", Run: o.installBuildTools},
			Step{Name: "install-golang", Run: o.installGolang},
			Step{Name: "install-clickhouse", Run: o.installClickHouse},
			Step{Name: "install-python", Run: o.installPython},
			Step{Name: "install-utilities", Run: o.installUtilities},
			Step{Name: "install-ki7mt-apps", Run: o.installKI7MTApps},
		)
		steps = append(steps, tune...)
		return append(steps, verifyStep)

	case ModeCUDA:
		return []Step{
			{Name: "repo-cuda", Run: o.ensureCUDARepo},
			{Name: "refresh-cache", Run: o.refreshCache},
			{Name: "install-cuda-driver", Run: o.installCUDADriver},
			{Name: "install-cuda-toolkit", Run: o.installCUDAToolkit},
			verifyStep,
		}

	case ModeTune:
		return tune

	case ModeVerify:
		return []Step{verifyStep}

	default:
		return nil
	}
}

// Execute runs the plan for the given mode, aborting on the first step
// failure. Already-completed steps are not rolled back; every step is
// safe to re-run.
func (o *Orchestrator) Execute(ctx context.Context, mode Mode) error {
	plan := o.Plan(mode)
	slog.Info("starting provisioning", "mode", mode, "steps", len(plan))
	start := time.Now()

	for i, step := range plan {
		if err := ctx.Err(); err != nil {
			return err
		}

		slog.Info("step starting", "step", step.Name, "progress", fmt.Sprintf("%d/%d", i+1, len(plan)))
		if err := step.Run(ctx); err != nil {
			slog.Error("step failed", "step", step.Name, "error", err)
			return err
		}
	}

	slog.Info("provisioning complete", "mode", mode, "duration", time.Since(start).Round(time.Millisecond))
	return nil
}

// dnf invokes the package manager and converts a nonzero exit into a
// fatal EXEC_FAILED error, per the global fail-fast policy.
func (o *Orchestrator) dnf(ctx context.Context, args ...string) error {
	res, err := o.run.Run(ctx, "dnf", args...)
	if err != nil {
		return errors.Wrap(errors.ErrCodeExecFailed, "failed to invoke dnf", err)
	}
	if !res.Success() {
		return errors.NewWithContext(errors.ErrCodeExecFailed,
			"dnf "+args[0]+" failed",
			map[string]any{
				"exitCode": res.ExitCode,
				"stderr":   strings.TrimSpace(res.Stderr),
			})
	}
	return nil
}

// runVerification probes installed components, emits the report, and
// fails the run when required components are missing.
func (o *Orchestrator) runVerification(ctx context.Context) error {
	res, err := o.verifier.Verify(ctx)
	if err != nil {
		return err
	}

	if err := o.reporter.Serialize(ctx, res); err != nil {
		return err
	}

	if res.Failed() {
		return verify.ErrIncomplete
	}
	return nil
}
