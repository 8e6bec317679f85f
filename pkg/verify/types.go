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

package verify

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/KI7MT/ki7mt-ai-lab-devel/pkg/header"
)

// Status represents the outcome of probing a single component.
type Status string

const (
	// StatusPresent indicates the component was found in the expected state.
	StatusPresent Status = "present"

	// StatusMissing indicates a required component was not found.
	StatusMissing Status = "missing"

	// StatusSkipped indicates an optional component was not found; this
	// never affects the aggregate result.
	StatusSkipped Status = "skipped"
)

// ResultStatus represents the aggregate verification outcome.
type ResultStatus string

const (
	// ResultStatusPass indicates all required components are present.
	ResultStatusPass ResultStatus = "pass"

	// ResultStatusFail indicates at least one required component is missing.
	ResultStatusFail ResultStatus = "fail"
)

// Component is the probed state of a single expected component.
type Component struct {
	// Name is the human-facing component name, e.g. "go" or "clickhouse-server".
	Name string `json:"name" yaml:"name"`

	// Required is false for components whose absence is informational only
	// (GPU driver, GPU compiler, COPR packages).
	Required bool `json:"required" yaml:"required"`

	// Status is the probe outcome.
	Status Status `json:"status" yaml:"status"`

	// Version is the first line of the component's version output, when available.
	Version string `json:"version,omitempty" yaml:"version,omitempty"`

	// Detail explains a missing or skipped status.
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Summary contains aggregate verification statistics.
type Summary struct {
	Present  int           `json:"present" yaml:"present"`
	Missing  int           `json:"missing" yaml:"missing"`
	Skipped  int           `json:"skipped" yaml:"skipped"`
	Total    int           `json:"total" yaml:"total"`
	Status   ResultStatus  `json:"status" yaml:"status"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Result is the complete verification report.
type Result struct {
	header.Header `json:",inline" yaml:",inline"`

	Components []Component `json:"components" yaml:"components"`
	Summary    Summary     `json:"summary" yaml:"summary"`
}

// Failed reports whether any required component is missing.
func (r *Result) Failed() bool {
	return r.Summary.Missing > 0
}

var (
	statusColors = map[Status]*color.Color{
		StatusPresent: color.New(color.FgGreen),
		StatusMissing: color.New(color.FgRed),
		StatusSkipped: color.New(color.FgYellow),
	}

	resultColors = map[ResultStatus]*color.Color{
		ResultStatusPass: color.New(color.FgGreen, color.Bold),
		ResultStatusFail: color.New(color.FgRed, color.Bold),
	}
)

// MarshalTable renders the per-component status table followed by the
// aggregate summary line. It implements serializer.TableMarshaler.
func (r *Result) MarshalTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "COMPONENT\tREQUIRED\tSTATUS\tVERSION")
	for _, c := range r.Components {
		status := string(c.Status)
		if cc, ok := statusColors[c.Status]; ok {
			status = cc.Sprint(status)
		}

		detail := c.Version
		if detail == "" {
			detail = c.Detail
		}

		fmt.Fprintf(tw, "%s\t%v\t%s\t%s\n", c.Name, c.Required, status, detail)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	overall := string(r.Summary.Status)
	if cc, ok := resultColors[r.Summary.Status]; ok {
		overall = cc.Sprint(overall)
	}

	_, err := fmt.Fprintf(w, "\n%s: %d present, %d missing, %d skipped (%d checks in %s)\n",
		overall, r.Summary.Present, r.Summary.Missing, r.Summary.Skipped,
		r.Summary.Total, r.Summary.Duration.Round(time.Millisecond))
	return err
}
