/*
Copyright © 2025 KI7MT
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/KI7MT/ki7mt-ai-lab-devel/pkg/host"
	"github.com/KI7MT/ki7mt-ai-lab-devel/pkg/logging"
	"github.com/KI7MT/ki7mt-ai-lab-devel/pkg/provision"
	"github.com/KI7MT/ki7mt-ai-lab-devel/pkg/runner"
	"github.com/KI7MT/ki7mt-ai-lab-devel/pkg/serializer"
	"github.com/KI7MT/ki7mt-ai-lab-devel/pkg/verify"
)

const name = "ailab"

var (
	// overridden during build with ldflags
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// modeFlags maps CLI flags to provisioning modes, in precedence-free
// declaration order. The flags are mutually exclusive.
var modeFlags = []struct {
	flag string
	mode provision.Mode
}{
	{flag: "full", mode: provision.ModeFull},
	{flag: "minimal", mode: provision.ModeMinimal},
	{flag: "cuda-only", mode: provision.ModeCUDA},
	{flag: "tune", mode: provision.ModeTune},
	{flag: "verify", mode: provision.ModeVerify},
}

// New builds the root command.
func New() *cli.Command {
	return &cli.Command{
		Name:                  name,
		EnableShellCompletion: true,
		Usage:                 "Provision a Fedora/EL AI development lab host",
		Description: fmt.Sprintf(`ailab - KI7MT AI lab host provisioner

Version: %s
Commit:  %s
Built:   %s

Registers package repositories (EPEL, NVIDIA CUDA, ClickHouse, the KI7MT
COPR), installs toolchains (build tools, Go, CUDA, ClickHouse, Python/ML,
utilities), writes system tuning files (sysctl, ulimits, ClickHouse
server settings), and verifies the result.

Every step is idempotent: re-running any mode is safe and converges the
host to the same state.

# Examples

Full provisioning (default):
  sudo ailab

Everything except GPU and ML packages:
  sudo ailab --minimal

Only the CUDA stack:
  sudo ailab --cuda-only

Re-apply tuning files after an upgrade:
  sudo ailab --tune

Check what is installed, no root needed:
  ailab --verify --format table`, version, commit, date),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "full",
				Usage: "install everything, apply tuning, verify (default)",
			},
			&cli.BoolFlag{
				Name:  "minimal",
				Usage: "install without GPU driver/toolkit and ML packages",
			},
			&cli.BoolFlag{
				Name:  "cuda-only",
				Usage: "install only the CUDA repository, driver, and toolkit",
			},
			&cli.BoolFlag{
				Name:  "tune",
				Usage: "write tuning files and reload kernel parameters only",
			},
			&cli.BoolFlag{
				Name:  "verify",
				Usage: "probe installed components without changing anything",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write the verification report to a file instead of stdout",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   fmt.Sprintf("verification report format, one of: %v", serializer.SupportedFormats()),
				Value:   string(serializer.FormatTable),
			},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))

	mode, err := selectMode(cmd)
	if err != nil {
		return err
	}

	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return fmt.Errorf("unknown output format: %q (supported: %v)", outFormat, serializer.SupportedFormats())
	}

	slog.Info("starting", "name", name, "version", version, "mode", mode)

	// Detection precedes the privilege check so an unsupported distro is
	// reported even when run as root.
	var distro *host.Distro
	if mode.RequiresDetection() {
		distro, err = host.Detect()
		if err != nil {
			return err
		}
		slog.Info("detected distribution", "distro", distro.String())
	}

	if mode.RequiresRoot() {
		if err := host.RequireRoot(); err != nil {
			return err
		}
	}

	run := &runner.Exec{}
	probes := host.NewProbes(run)

	reporter := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
	defer reporter.Close()

	orch := provision.New(distro,
		provision.WithRunner(run),
		provision.WithProbes(probes),
		provision.WithVerifier(verify.New(
			verify.WithRunner(run),
			verify.WithProbes(probes),
			verify.WithVersion(version),
		)),
		provision.WithSerializer(reporter),
	)

	return orch.Execute(ctx, mode)
}

// selectMode resolves the mutually exclusive mode flags, defaulting to
// full provisioning when none is given.
func selectMode(cmd *cli.Command) (provision.Mode, error) {
	selected := make([]provision.Mode, 0, 1)
	for _, mf := range modeFlags {
		if cmd.Bool(mf.flag) {
			selected = append(selected, mf.mode)
		}
	}

	switch len(selected) {
	case 0:
		return provision.ModeFull, nil
	case 1:
		return selected[0], nil
	default:
		return "", fmt.Errorf("mode flags are mutually exclusive, got %v", selected)
	}
}

// Execute runs the root command. It is called by main and exits the
// process nonzero on any fatal step failure, including a verification
// run that finds required components missing.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM; the next blocking command sees the
	// cancellation and the run aborts like any other step failure.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	if err := New().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
