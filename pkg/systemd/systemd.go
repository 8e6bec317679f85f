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

package systemd

import (
	"context"
	"fmt"

	"github.com/coreos/go-systemd/v22/dbus"
)

// ActiveStateActive is the systemd ActiveState value for running units.
const ActiveStateActive = "active"

// UnitChecker reports systemd unit state.
type UnitChecker interface {
	// ActiveState returns the unit's ActiveState property
	// (active, inactive, failed, activating, deactivating).
	ActiveState(ctx context.Context, unit string) (string, error)
}

type dbusChecker struct{}

// NewChecker creates a UnitChecker backed by the systemd dbus API.
func NewChecker() UnitChecker {
	return &dbusChecker{}
}

func (c *dbusChecker) ActiveState(ctx context.Context, unit string) (string, error) {
	conn, err := dbus.NewSystemdConnectionContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to connect to systemd: %w", err)
	}
	defer conn.Close()

	prop, err := conn.GetUnitPropertyContext(ctx, unit, "ActiveState")
	if err != nil {
		return "", fmt.Errorf("failed to get unit property for %s: %w", unit, err)
	}

	state, ok := prop.Value.Value().(string)
	if !ok {
		return "", fmt.Errorf("unexpected ActiveState value type for %s", unit)
	}

	return state, nil
}
