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

// Package tuning holds the fixed system-tuning file contents (sysctl,
// user limits, ClickHouse server settings, CUDA profile fragment) and the
// idempotent writer that installs them. Writes favor reproducibility over
// preservation: files are replaced wholesale, and re-running a write with
// unchanged content is a no-op.
package tuning
