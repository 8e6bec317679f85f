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
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Fake is an in-memory Runner for tests. Commands without a canned
// response succeed with empty output, so tests only stub what they
// assert on.
type Fake struct {
	// Responses maps a command line (name and args joined with spaces) to
	// its canned result. A key also matches as a prefix, so "rpm -q" stubs
	// every package query at once.
	Responses map[string]*Result

	// Missing lists command names that LookPath should fail to resolve.
	Missing map[string]bool

	// Calls records every executed command line in order.
	Calls []string
}

// Run records the call and returns the canned result, preferring an exact
// command-line match over a prefix match.
func (f *Fake) Run(_ context.Context, name string, args ...string) (*Result, error) {
	line := strings.Join(append([]string{name}, args...), " ")
	f.Calls = append(f.Calls, line)

	if res, ok := f.Responses[line]; ok {
		return res, nil
	}
	for key, res := range f.Responses {
		if strings.HasPrefix(line, key) {
			return res, nil
		}
	}

	return &Result{}, nil
}

// LookPath resolves every command to /usr/bin unless listed in Missing.
func (f *Fake) LookPath(name string) (string, error) {
	if f.Missing[name] {
		return "", fmt.Errorf("%s: %w", name, exec.ErrNotFound)
	}
	return "/usr/bin/" + name, nil
}

// CalledMatching returns the number of recorded calls starting with prefix.
func (f *Fake) CalledMatching(prefix string) int {
	n := 0
	for _, call := range f.Calls {
		if strings.HasPrefix(call, prefix) {
			n++
		}
	}
	return n
}
