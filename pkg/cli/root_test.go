package cli

import (
	"context"
	"testing"

	urfave "github.com/urfave/cli/v3"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KI7MT/ki7mt-ai-lab-devel/pkg/provision"
)

// parseMode runs the root command with the action replaced so the test
// can observe the mode resolution without provisioning anything.
func parseMode(t *testing.T, args ...string) (provision.Mode, error) {
	t.Helper()

	var mode provision.Mode
	var modeErr error

	cmd := New()
	cmd.Action = func(_ context.Context, c *urfave.Command) error {
		mode, modeErr = selectMode(c)
		return nil
	}

	require.NoError(t, cmd.Run(context.Background(), append([]string{name}, args...)))
	return mode, modeErr
}

func TestSelectMode(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    provision.Mode
		wantErr bool
	}{
		{name: "default is full", want: provision.ModeFull},
		{name: "full", args: []string{"--full"}, want: provision.ModeFull},
		{name: "minimal", args: []string{"--minimal"}, want: provision.ModeMinimal},
		{name: "cuda only", args: []string{"--cuda-only"}, want: provision.ModeCUDA},
		{name: "tune", args: []string{"--tune"}, want: provision.ModeTune},
		{name: "verify", args: []string{"--verify"}, want: provision.ModeVerify},
		{name: "two modes rejected", args: []string{"--tune", "--verify"}, wantErr: true},
		{name: "three modes rejected", args: []string{"--full", "--minimal", "--cuda-only"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMode(t, tt.args...)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnknownFlagFails(t *testing.T) {
	cmd := New()
	cmd.Action = func(_ context.Context, _ *urfave.Command) error { return nil }
	require.Error(t, cmd.Run(context.Background(), []string{name, "--bogus"}))
}
