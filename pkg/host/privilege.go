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

package host

import (
	"os"

	"github.com/KI7MT/ki7mt-ai-lab-devel/pkg/errors"
)

// euid is overridable in tests.
var euid = os.Geteuid

// RequireRoot verifies the process runs with root privileges. Every
// mutating mode calls this before touching the host.
func RequireRoot() error {
	if euid() != 0 {
		return errors.New(errors.ErrCodePrivilegeRequired,
			"this operation modifies system state and must be run as root")
	}
	return nil
}
