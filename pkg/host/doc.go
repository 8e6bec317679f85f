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

// Package host reads and probes host operating system state.
//
// It provides distribution detection from the standard os-release file,
// the root privilege check required by all mutating modes, and the state
// probes (repository file present, RPM installed, kernel module loaded,
// command on PATH) that make every provisioning step idempotent.
//
// Detection is strict: an unreadable os-release file or an unsupported
// distribution/version is a fatal error, raised before any mutating step
// runs.
package host
