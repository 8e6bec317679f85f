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

// Package logging provides structured logging for the ai-lab provisioner.
//
// It wraps the standard library slog package with project defaults:
// JSON output to stderr, module/version context on every record, and
// source location tracking for debug logs.
//
// Usage:
//
//	logging.SetDefaultStructuredLogger("ailab", version)
//	slog.Info("repository registered", "name", "clickhouse")
//
// The LOG_LEVEL environment variable controls verbosity when no explicit
// level is given (DEBUG, INFO, WARN, ERROR; default INFO):
//
//	LOG_LEVEL=debug ailab --verify
package logging
