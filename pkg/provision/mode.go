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

import "fmt"

// Mode selects which provisioning sequence runs. Exactly one mode is
// chosen per invocation; there are no transitions between modes within
// a run.
type Mode string

const (
	// ModeFull installs everything, applies tuning, and verifies.
	ModeFull Mode = "full"

	// ModeMinimal is ModeFull without GPU driver/toolkit and ML packages.
	ModeMinimal Mode = "minimal"

	// ModeCUDA installs only the GPU repository, driver, and toolkit.
	ModeCUDA Mode = "cuda-only"

	// ModeTune writes the tuning files and reloads kernel parameters.
	ModeTune Mode = "tune"

	// ModeVerify probes installed components without changing anything.
	ModeVerify Mode = "verify"
)

// String returns the mode name as used on the command line.
func (m Mode) String() string {
	return string(m)
}

// RequiresRoot reports whether the mode mutates host state and therefore
// needs root privileges.
func (m Mode) RequiresRoot() bool {
	return m != ModeVerify
}

// RequiresDetection reports whether the mode needs the distribution
// identity before running. Tuning writes and verification probes are
// distribution independent.
func (m Mode) RequiresDetection() bool {
	switch m {
	case ModeTune, ModeVerify:
		return false
	default:
		return true
	}
}

// ParseMode converts a mode name into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeFull, ModeMinimal, ModeCUDA, ModeTune, ModeVerify:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown mode: %q", s)
	}
}
