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

package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
)

// Result holds the outcome of an executed command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Success reports whether the command exited with status zero.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// Runner executes external commands. Implementations must capture both
// output streams and report the exit status in the Result; a non-nil error
// is reserved for commands that could not be started at all.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (*Result, error)
	LookPath(name string) (string, error)
}

// Exec is the Runner implementation backed by os/exec.
type Exec struct{}

// Run executes the named command and waits for it to finish. A nonzero
// exit status is returned in the Result, not as an error.
func (e *Exec) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("running command", "name", name, "args", args)

	res := &Result{}
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("failed to run %s: %w", name, err)
		}
		res.ExitCode = exitErr.ExitCode()
	}

	res.Stdout = stdout.String()
	res.Stderr = stderr.String()

	return res, nil
}

// LookPath resolves the named command on PATH.
func (e *Exec) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
