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
	"log/slog"
	"strings"

	"github.com/KI7MT/ki7mt-ai-lab-devel/pkg/errors"
	"github.com/KI7MT/ki7mt-ai-lab-devel/pkg/tuning"
)

// Package groups installed by the full mode, grouped by concern.
var (
	buildToolPackages = []string{
		"gcc", "gcc-c++", "make", "cmake",
		"autoconf", "automake", "libtool",
		"pkgconf-pkg-config", "git",
	}

	golangPackages = []string{"golang"}

	cudaDriverPackages = []string{"nvidia-driver", "nvidia-settings"}

	cudaToolkitPackages = []string{"cuda-toolkit"}

	clickhousePackages = []string{"clickhouse-server", "clickhouse-client"}

	pythonPackages = []string{"python3", "python3-pip", "python3-devel"}

	utilityPackages = []string{
		"htop", "tmux", "wget", "curl", "jq", "tree", "rsync",
	}

	ki7mtPackages = []string{"ki7mt-ailab-tools"}

	pipMLPackages = []string{
		"numpy", "pandas", "scikit-learn", "matplotlib", "jupyterlab",
	}
)

// Overridable in tests.
var cudaProfilePath = "/etc/profile.d/cuda.sh"

// installPackages installs the packages of a group that are not already
// present, batched into a single dnf transaction. A fully installed
// group is a no-op.
func (o *Orchestrator) installPackages(ctx context.Context, group string, pkgs []string) error {
	missing := make([]string, 0, len(pkgs))
	for _, pkg := range pkgs {
		if !o.probes.PackageInstalled(ctx, pkg) {
			missing = append(missing, pkg)
		}
	}

	if len(missing) == 0 {
		slog.Info("package group already installed", "group", group)
		return nil
	}

	slog.Info("installing packages", "group", group, "packages", missing)
	args := append([]string{"install", "-y"}, missing...)
	return o.dnf(ctx, args...)
}

func (o *Orchestrator) installBuildTools(ctx context.Context) error {
	return o.installPackages(ctx, "build-tools", buildToolPackages)
}

func (o *Orchestrator) installGolang(ctx context.Context) error {
	return o.installPackages(ctx, "golang", golangPackages)
}

// installCUDADriver installs the NVIDIA driver unless the kernel module
// is already loaded, which means a working driver is running.
func (o *Orchestrator) installCUDADriver(ctx context.Context) error {
	if o.probes.ModuleLoaded("nvidia") {
		slog.Info("nvidia kernel module already loaded, skipping driver install")
		return nil
	}
	return o.installPackages(ctx, "cuda-driver", cudaDriverPackages)
}

// installCUDAToolkit installs the toolkit and writes the profile fragment
// that puts nvcc and the CUDA libraries on login-shell paths.
func (o *Orchestrator) installCUDAToolkit(ctx context.Context) error {
	if err := o.installPackages(ctx, "cuda-toolkit", cudaToolkitPackages); err != nil {
		return err
	}
	_, err := tuning.WriteFile(cudaProfilePath, tuning.CUDAProfile)
	return err
}

// installClickHouse installs the server and client, then enables and
// starts the server unit.
func (o *Orchestrator) installClickHouse(ctx context.Context) error {
	if err := o.installPackages(ctx, "clickhouse", clickhousePackages); err != nil {
		return err
	}

	res, err := o.run.Run(ctx, "systemctl", "enable", "--now", "clickhouse-server")
	if err != nil {
		return errors.Wrap(errors.ErrCodeExecFailed, "failed to invoke systemctl", err)
	}
	if !res.Success() {
		return errors.NewWithContext(errors.ErrCodeExecFailed,
			"failed to enable clickhouse-server",
			map[string]any{"exitCode": res.ExitCode, "stderr": strings.TrimSpace(res.Stderr)})
	}
	return nil
}

func (o *Orchestrator) installPython(ctx context.Context) error {
	return o.installPackages(ctx, "python", pythonPackages)
}

// installPipML installs the Python ML stack through pip. These live
// outside the RPM database, so idempotency comes from pip itself:
// already-satisfied requirements are a fast no-op.
func (o *Orchestrator) installPipML(ctx context.Context) error {
	slog.Info("installing python ML packages", "packages", pipMLPackages)

	args := append([]string{"install", "--upgrade"}, pipMLPackages...)
	res, err := o.run.Run(ctx, "pip3", args...)
	if err != nil {
		return errors.Wrap(errors.ErrCodeExecFailed, "failed to invoke pip3", err)
	}
	if !res.Success() {
		return errors.NewWithContext(errors.ErrCodeExecFailed,
			"pip3 install failed",
			map[string]any{"exitCode": res.ExitCode, "stderr": strings.TrimSpace(res.Stderr)})
	}
	return nil
}

func (o *Orchestrator) installUtilities(ctx context.Context) error {
	return o.installPackages(ctx, "utilities", utilityPackages)
}

// installKI7MTApps installs the KI7MT lab applications from the COPR.
// Skipped with a warning when the COPR could not be enabled.
func (o *Orchestrator) installKI7MTApps(ctx context.Context) error {
	if !o.coprAvailable {
		slog.Warn("skipping KI7MT packages, COPR repository unavailable")
		return nil
	}
	return o.installPackages(ctx, "ki7mt-apps", ki7mtPackages)
}
