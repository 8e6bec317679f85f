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

	"github.com/KI7MT/ki7mt-ai-lab-devel/pkg/tuning"
)

const (
	epelPackage = "epel-release"

	coprProject = "ki7mt/ai-lab"

	// The newest Fedora chroot often lags a release behind on COPR; this
	// is the known-good fallback.
	coprFallbackChroot = "fedora-40-x86_64"

	cudaRepoURLBase = "https://developer.download.nvidia.com/compute/cuda/repos"
)

// Overridable in tests.
var (
	repoDir = "/etc/yum.repos.d"
)

// cudaRepoSlug is the NVIDIA repository directory for the distribution,
// e.g. "fedora40" or "rhel9". EL derivatives all use the rhel repos.
func (o *Orchestrator) cudaRepoSlug() string {
	if o.distro.ELFamily() {
		return fmt.Sprintf("rhel%d", o.distro.Major)
	}
	return fmt.Sprintf("fedora%d", o.distro.Major)
}

func (o *Orchestrator) cudaRepoPath() string {
	return fmt.Sprintf("%s/cuda-%s.repo", repoDir, o.cudaRepoSlug())
}

// ensureEPEL enables the EPEL repository on EL derivatives. Fedora ships
// the equivalent packages in its main repos.
func (o *Orchestrator) ensureEPEL(ctx context.Context) error {
	if !o.distro.ELFamily() {
		slog.Info("EPEL not needed on this distribution", "distro", o.distro.String())
		return nil
	}
	if o.probes.PackageInstalled(ctx, epelPackage) {
		slog.Info("EPEL repository already enabled")
		return nil
	}
	return o.dnf(ctx, "install", "-y", epelPackage)
}

// ensureCUDARepo registers the NVIDIA CUDA repository from the vendor
// repo file for the detected distribution.
func (o *Orchestrator) ensureCUDARepo(ctx context.Context) error {
	path := o.cudaRepoPath()
	if o.probes.RepositoryExists(path) {
		slog.Info("CUDA repository already registered", "path", path)
		return nil
	}

	slug := o.cudaRepoSlug()
	url := fmt.Sprintf("%s/%s/x86_64/cuda-%s.repo", cudaRepoURLBase, slug, slug)
	return o.dnf(ctx, "config-manager", "--add-repo", url)
}

// ensureClickHouseRepo writes the ClickHouse stable repository definition.
func (o *Orchestrator) ensureClickHouseRepo(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := repoDir + "/clickhouse.repo"
	if o.probes.RepositoryExists(path) {
		slog.Info("ClickHouse repository already registered", "path", path)
		return nil
	}

	_, err := tuning.WriteFile(path, tuning.ClickHouseRepo)
	return err
}

// ensureCOPR enables the KI7MT COPR repository. The COPR may not carry a
// chroot for the newest release yet; in that case the known-good chroot
// is tried, and if the repository is unreachable entirely the KI7MT
// package step is downgraded to a warning no-op rather than failing the
// run.
func (o *Orchestrator) ensureCOPR(ctx context.Context) error {
	if o.coprRepoRegistered() {
		slog.Info("COPR repository already enabled", "project", coprProject)
		return nil
	}

	chroot := o.coprChroot()
	res, err := o.run.Run(ctx, "dnf", "copr", "enable", "-y", coprProject, chroot)
	if err != nil {
		return err
	}
	if res.Success() {
		return nil
	}

	slog.Warn("COPR chroot unavailable, trying fallback",
		"project", coprProject, "chroot", chroot, "fallback", coprFallbackChroot)

	res, err = o.run.Run(ctx, "dnf", "copr", "enable", "-y", coprProject, coprFallbackChroot)
	if err != nil {
		return err
	}
	if !res.Success() {
		slog.Warn("COPR repository unavailable, KI7MT packages will be skipped",
			"project", coprProject, "stderr", strings.TrimSpace(res.Stderr))
		o.coprAvailable = false
	}
	return nil
}

func (o *Orchestrator) coprChroot() string {
	if o.distro.ELFamily() {
		return fmt.Sprintf("epel-%d-x86_64", o.distro.Major)
	}
	return fmt.Sprintf("fedora-%d-x86_64", o.distro.Major)
}

// coprRepoRegistered checks for the repo file dnf copr drops on enable.
func (o *Orchestrator) coprRepoRegistered() bool {
	// dnf copr writes _copr:copr.fedorainfracloud.org:<owner>:<project>.repo
	name := strings.ReplaceAll(coprProject, "/", ":")
	path := fmt.Sprintf("%s/_copr:copr.fedorainfracloud.org:%s.repo", repoDir, name)
	return o.probes.RepositoryExists(path)
}

// refreshCache rebuilds the package metadata cache after repository
// changes.
func (o *Orchestrator) refreshCache(ctx context.Context) error {
	return o.dnf(ctx, "makecache")
}
