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

package tuning

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/KI7MT/ki7mt-ai-lab-devel/pkg/errors"
)

// WriteFile overwrites path with content, creating parent directories as
// needed. Existing files are replaced wholesale (last write wins), never
// merged with prior customization. A byte-identical existing file is left
// untouched. Reports whether the file changed.
func WriteFile(path, content string) (bool, error) {
	if cur, err := os.ReadFile(path); err == nil && string(cur) == content {
		slog.Info("config file already current", "path", path)
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, errors.WrapWithContext(errors.ErrCodeWriteFailed,
			"failed to create config directory", err, map[string]any{"path": path})
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, errors.WrapWithContext(errors.ErrCodeWriteFailed,
			"failed to write config file", err, map[string]any{"path": path})
	}

	slog.Info("config file written", "path", path, "bytes", len(content))
	return true, nil
}
