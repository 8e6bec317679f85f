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

import (
	"context"
	"strings"

	"github.com/KI7MT/ki7mt-ai-lab-devel/pkg/errors"
	"github.com/KI7MT/ki7mt-ai-lab-devel/pkg/tuning"
)

// Overridable in tests.
var (
	sysctlConfPath     = "/etc/sysctl.d/99-ai-lab.conf"
	limitsConfPath     = "/etc/security/limits.d/99-ai-lab.conf"
	clickhouseConfPath = "/etc/clickhouse-server/config.d/ai-lab.xml"
)

func (o *Orchestrator) writeSysctlConfig(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := tuning.WriteFile(sysctlConfPath, tuning.SysctlConf)
	return err
}

func (o *Orchestrator) writeLimitsConfig(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := tuning.WriteFile(limitsConfPath, tuning.LimitsConf)
	return err
}

func (o *Orchestrator) writeClickHouseConfig(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := tuning.WriteFile(clickhouseConfPath, tuning.ClickHouseConf)
	return err
}

// applySysctl re-reads all kernel parameter files so the tuning profile
// takes effect without a reboot.
func (o *Orchestrator) applySysctl(ctx context.Context) error {
	res, err := o.run.Run(ctx, "sysctl", "--system")
	if err != nil {
		return errors.Wrap(errors.ErrCodeExecFailed, "failed to invoke sysctl", err)
	}
	if !res.Success() {
		return errors.NewWithContext(errors.ErrCodeExecFailed,
			"sysctl --system failed",
			map[string]any{"exitCode": res.ExitCode, "stderr": strings.TrimSpace(res.Stderr)})
	}
	return nil
}
