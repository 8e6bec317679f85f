package tuning

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sysctl.d", "99-ai-lab.conf")

	changed, err := WriteFile(path, SysctlConf)
	if err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if !changed {
		t.Error("first write should report changed")
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != SysctlConf {
		t.Error("written content differs from template")
	}

	// Second write with identical content is a no-op
	changed, err = WriteFile(path, SysctlConf)
	if err != nil {
		t.Fatalf("WriteFile() second call error = %v", err)
	}
	if changed {
		t.Error("identical rewrite should not report changed")
	}

	// Content remains byte-identical after the second write
	again, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(again) != string(got) {
		t.Error("rewrite must yield byte-identical content")
	}
}

func TestWriteFileOverwritesCustomization(t *testing.T) {
	path := filepath.Join(t.TempDir(), "limits.conf")
	if err := os.WriteFile(path, []byte("manually edited\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	changed, err := WriteFile(path, LimitsConf)
	if err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if !changed {
		t.Error("overwrite of customized file should report changed")
	}

	got, _ := os.ReadFile(path)
	if string(got) != LimitsConf {
		t.Error("prior customization should not survive a tuning write")
	}
}

func TestWriteFileUnwritablePath(t *testing.T) {
	dir := t.TempDir()
	// A file where a parent directory is expected
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := WriteFile(filepath.Join(blocker, "child.conf"), "x"); err == nil {
		t.Error("expected error writing under a regular file")
	}
}

func TestTemplatesAreFixed(t *testing.T) {
	// ~20 sysctl keys, all key = value lines
	var keys int
	for _, line := range strings.Split(strings.TrimSpace(SysctlConf), "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.Contains(line, " = ") {
			t.Errorf("malformed sysctl line: %q", line)
		}
		keys++
	}
	if keys != 21 {
		t.Errorf("sysctl template has %d keys, want 21", keys)
	}

	// 6 limit directives
	var directives int
	for _, line := range strings.Split(strings.TrimSpace(LimitsConf), "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		directives++
	}
	if directives != 6 {
		t.Errorf("limits template has %d directives, want 6", directives)
	}

	if !strings.Contains(ClickHouseConf, "<max_server_memory_usage_to_ram_ratio>") {
		t.Error("clickhouse template missing memory ratio setting")
	}
	if !strings.Contains(CUDAProfile, "LD_LIBRARY_PATH") {
		t.Error("cuda profile missing library path export")
	}
}
