// Package cli implements the command-line interface for the KI7MT AI lab provisioner.
//
// # Overview
//
// The ailab CLI provisions a Fedora or Enterprise Linux host for AI development:
// it registers the required package repositories, installs toolchains, writes
// system tuning files, and verifies the result. Every operation is idempotent,
// so any mode can be re-run safely to converge the host.
//
// # Modes
//
// The five mode flags are mutually exclusive; with no mode flag the full
// provisioning run is performed.
//
//	--full       Register all repos, install all package groups, apply
//	             tuning, and verify (default)
//	--minimal    Full minus the NVIDIA driver, CUDA toolkit, and Python
//	             ML packages
//	--cuda-only  Register only the NVIDIA CUDA repo and install the
//	             driver and toolkit
//	--tune       Write sysctl, ulimit, and ClickHouse tuning files and
//	             reload kernel parameters; install nothing
//	--verify     Probe installed components and report; change nothing
//
// # Global Flags
//
//	--log-level    Log verbosity: debug, info, warn, error (default: info)
//	--output, -o   Verification report file path (default: stdout)
//	--format, -f   Verification report format: json, yaml, table (default: table)
//
// # Privileges
//
// All modes except --verify require root, since they write under /etc and
// drive the package manager. Verification never needs privileges.
//
// # Exit Codes
//
//	0  Success
//	1  Any failure: invalid arguments, unsupported distribution, a failed
//	   provisioning step, or required components found missing by --verify
//
// # Environment Variables
//
//	LOG_LEVEL  Set logging verbosity (debug, info, warn, error)
//
// # Architecture
//
// The CLI uses the urfave/cli/v3 framework and delegates to specialized
// packages:
//   - pkg/provision - Step planning and execution per mode
//   - pkg/verify - Component verification and reporting
//   - pkg/tuning - Tuning file content and idempotent writes
//   - pkg/host - Distribution detection and host state probes
//   - pkg/serializer - Report output formatting
//   - pkg/logging - Structured logging
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/KI7MT/ki7mt-ai-lab-devel/pkg/cli.version=1.0.0'"
package cli
