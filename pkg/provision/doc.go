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

// Package provision implements the mode-dispatched provisioning
// orchestrator.
//
// Each mode (full, minimal, cuda-only, tune, verify) maps to a fixed,
// ordered sequence of idempotent steps: repository registration, batched
// package installation, tuning file writes, kernel parameter reload, and
// component verification. Steps probe current host state first and
// short-circuit when nothing needs doing, so any mode is safe to re-run.
//
// Execution is strictly sequential and fail-fast: the first fatal step
// failure aborts the remaining sequence with no rollback. The only
// downgrades from fatal to warning are the optional COPR chroot fallback
// and absent optional components during verification.
package provision
