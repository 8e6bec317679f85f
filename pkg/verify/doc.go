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

// Package verify probes the host for every component a provisioning run
// installs and aggregates a pass/fail report.
//
// Each check combines up to four probes: command on PATH (with a version
// capture), RPM installed, systemd unit active, and kernel module loaded.
// Optional components (NVIDIA driver, CUDA compiler, COPR packages) are
// reported but never fail the aggregate result, so verification passes on
// hosts without GPU hardware.
//
// Verification is read-only and requires no privileges.
package verify
