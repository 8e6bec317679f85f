package runner

import (
	"context"
	"errors"
	"os/exec"
	"testing"
)

func TestExecRun(t *testing.T) {
	tests := []struct {
		name     string
		cmd      string
		args     []string
		wantCode int
		wantOut  string
	}{
		{name: "success", cmd: "true", wantCode: 0},
		{name: "failure", cmd: "false", wantCode: 1},
		{name: "exit status propagated", cmd: "sh", args: []string{"-c", "exit 3"}, wantCode: 3},
		{name: "stdout captured", cmd: "sh", args: []string{"-c", "printf hello"}, wantCode: 0, wantOut: "hello"},
	}

	e := &Exec{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := e.Run(context.TODO(), tt.cmd, tt.args...)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if res.ExitCode != tt.wantCode {
				t.Errorf("ExitCode = %d, want %d", res.ExitCode, tt.wantCode)
			}
			if tt.wantOut != "" && res.Stdout != tt.wantOut {
				t.Errorf("Stdout = %q, want %q", res.Stdout, tt.wantOut)
			}
			if (res.ExitCode == 0) != res.Success() {
				t.Errorf("Success() inconsistent with ExitCode %d", res.ExitCode)
			}
		})
	}
}

func TestExecRunStartFailure(t *testing.T) {
	e := &Exec{}
	res, err := e.Run(context.TODO(), "definitely-not-a-command-on-any-host")
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if res != nil {
		t.Errorf("expected nil result on start failure, got %+v", res)
	}
}

func TestExecLookPath(t *testing.T) {
	e := &Exec{}
	if _, err := e.LookPath("sh"); err != nil {
		t.Errorf("LookPath(sh) error = %v", err)
	}
	if _, err := e.LookPath("definitely-not-a-command-on-any-host"); err == nil {
		t.Error("expected error for unknown command")
	}
}

func TestFakeRun(t *testing.T) {
	f := &Fake{
		Responses: map[string]*Result{
			"rpm -q gcc": {ExitCode: 0},
			"rpm -q":     {ExitCode: 1},
			"go version": {Stdout: "go version go1.25.0 linux/amd64\n"},
		},
	}

	// Exact match wins over prefix
	res, _ := f.Run(context.TODO(), "rpm", "-q", "gcc")
	if res.ExitCode != 0 {
		t.Errorf("expected exact match to succeed, got exit %d", res.ExitCode)
	}

	res, _ = f.Run(context.TODO(), "rpm", "-q", "clickhouse-server")
	if res.ExitCode != 1 {
		t.Errorf("expected prefix match exit 1, got %d", res.ExitCode)
	}

	res, _ = f.Run(context.TODO(), "go", "version")
	if res.Stdout == "" {
		t.Error("expected canned stdout")
	}

	// Unstubbed commands succeed
	res, _ = f.Run(context.TODO(), "sysctl", "--system")
	if !res.Success() {
		t.Error("expected unstubbed command to succeed")
	}

	if got := f.CalledMatching("rpm -q"); got != 2 {
		t.Errorf("CalledMatching(rpm -q) = %d, want 2", got)
	}
	if len(f.Calls) != 4 {
		t.Errorf("expected 4 recorded calls, got %d", len(f.Calls))
	}
}

func TestFakeLookPath(t *testing.T) {
	f := &Fake{Missing: map[string]bool{"nvcc": true}}

	if _, err := f.LookPath("gcc"); err != nil {
		t.Errorf("LookPath(gcc) error = %v", err)
	}

	_, err := f.LookPath("nvcc")
	if !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("expected exec.ErrNotFound, got %v", err)
	}
}
