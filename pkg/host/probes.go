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

package host

import (
	"context"
	"os"
	"strings"

	"github.com/KI7MT/ki7mt-ai-lab-devel/pkg/runner"
)

const defaultModulesPath = "/proc/modules"

// Probes answers idempotency questions about current host state so
// provisioning steps can short-circuit when their target state already
// holds.
type Probes interface {
	// RepositoryExists reports whether a repository definition file is present.
	RepositoryExists(path string) bool

	// PackageInstalled reports whether an RPM package is installed.
	PackageInstalled(ctx context.Context, name string) bool

	// ModuleLoaded reports whether a kernel module is currently loaded.
	ModuleLoaded(name string) bool

	// CommandPath resolves a command on PATH, reporting whether it exists.
	CommandPath(name string) (string, bool)
}

// ProbeOption configures the default Probes implementation.
type ProbeOption func(*hostProbes)

// WithModulesPath overrides the loaded-modules file location.
func WithModulesPath(path string) ProbeOption {
	return func(p *hostProbes) {
		p.modulesPath = path
	}
}

type hostProbes struct {
	run         runner.Runner
	modulesPath string
}

// NewProbes creates the default Probes implementation backed by the host
// filesystem and the given command runner.
func NewProbes(run runner.Runner, opts ...ProbeOption) Probes {
	p := &hostProbes{
		run:         run,
		modulesPath: defaultModulesPath,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *hostProbes) RepositoryExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (p *hostProbes) PackageInstalled(ctx context.Context, name string) bool {
	res, err := p.run.Run(ctx, "rpm", "-q", name)
	return err == nil && res.Success()
}

func (p *hostProbes) ModuleLoaded(name string) bool {
	lines, err := NewParser().GetLines(p.modulesPath)
	if err != nil {
		return false
	}

	for _, line := range lines {
		// Module name is the first field (space-separated)
		fields := strings.Fields(line)
		if len(fields) > 0 && fields[0] == name {
			return true
		}
	}
	return false
}

func (p *hostProbes) CommandPath(name string) (string, bool) {
	path, err := p.run.LookPath(name)
	return path, err == nil
}
