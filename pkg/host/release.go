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
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/KI7MT/ki7mt-ai-lab-devel/pkg/errors"
)

var (
	// Per freedesktop.org spec, /usr/lib/os-release is the fallback location.
	releasePathPrimary  = "/etc/os-release"
	releasePathFallback = "/usr/lib/os-release"
)

// Minimum supported major versions per distribution ID.
var supportedDistros = map[string]int{
	"fedora":    39,
	"rhel":      9,
	"rocky":     9,
	"almalinux": 9,
	"centos":    9,
}

// Distro is the host distribution identity, read once at startup and
// immutable for the process lifetime.
type Distro struct {
	ID        string
	VersionID string
	Major     int
}

// String returns the canonical "id major" form, e.g. "fedora 40".
func (d *Distro) String() string {
	return fmt.Sprintf("%s %d", d.ID, d.Major)
}

// Supported reports whether the distribution can be provisioned.
func (d *Distro) Supported() bool {
	min, ok := supportedDistros[d.ID]
	return ok && d.Major >= min
}

// ELFamily reports whether the distribution is Enterprise Linux derived
// (RHEL, Rocky, Alma, CentOS Stream) rather than Fedora.
func (d *Distro) ELFamily() bool {
	return d.ID != "fedora"
}

// Detect reads the distribution identity from the standard os-release file,
// falling back to /usr/lib/os-release if the primary location is absent.
// It fails with ErrCodeUnsupportedOS when the identity cannot be read or
// the distribution is not provisionable.
func Detect() (*Distro, error) {
	root := releasePathPrimary
	if _, err := os.Stat(root); os.IsNotExist(err) {
		root = releasePathFallback
	}
	return detectFrom(root)
}

func detectFrom(path string) (*Distro, error) {
	parser := NewParser(WithVTrimChars(`"'`))

	params, err := parser.GetMap(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupportedOS, "failed to read os release", err)
	}

	d := &Distro{
		ID:        params["ID"],
		VersionID: params["VERSION_ID"],
	}

	if d.ID == "" || d.VersionID == "" {
		return nil, errors.NewWithContext(errors.ErrCodeUnsupportedOS,
			"os release file is missing ID or VERSION_ID", map[string]any{"path": path})
	}

	// "9.4" -> 9
	major, err := strconv.Atoi(strings.SplitN(d.VersionID, ".", 2)[0])
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeUnsupportedOS,
			"failed to parse os major version", err, map[string]any{"versionID": d.VersionID})
	}
	d.Major = major

	if !d.Supported() {
		return nil, errors.NewWithContext(errors.ErrCodeUnsupportedOS,
			fmt.Sprintf("unsupported distribution: %s %s", d.ID, d.VersionID),
			map[string]any{"id": d.ID, "versionID": d.VersionID})
	}

	return d, nil
}
