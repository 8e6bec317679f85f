package host

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	kerrors "github.com/KI7MT/ki7mt-ai-lab-devel/pkg/errors"
)

func writeRelease(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "os-release")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDetectFrom(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantID    string
		wantMajor int
		wantErr   bool
	}{
		{
			name: "fedora supported",
			content: `NAME="Fedora Linux"
ID=fedora
VERSION_ID=40
PRETTY_NAME="Fedora Linux 40 (Workstation Edition)"
`,
			wantID:    "fedora",
			wantMajor: 40,
		},
		{
			name: "rocky point release major parsed",
			content: `ID="rocky"
VERSION_ID="9.4"
NAME="Rocky Linux"
`,
			wantID:    "rocky",
			wantMajor: 9,
		},
		{
			name: "almalinux supported",
			content: `ID="almalinux"
VERSION_ID="9.3"
`,
			wantID:    "almalinux",
			wantMajor: 9,
		},
		{
			name: "el7 unsupported",
			content: `ID="centos"
VERSION_ID="7"
`,
			wantErr: true,
		},
		{
			name: "old fedora unsupported",
			content: `ID=fedora
VERSION_ID=38
`,
			wantErr: true,
		},
		{
			name: "debian unsupported",
			content: `ID=debian
VERSION_ID="12"
`,
			wantErr: true,
		},
		{
			name:    "missing identity fields",
			content: "PRETTY_NAME=\"Something\"\n",
			wantErr: true,
		},
		{
			name: "unparseable version",
			content: `ID=fedora
VERSION_ID=rawhide
`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := detectFrom(writeRelease(t, tt.content))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				var serr *kerrors.StructuredError
				if !errors.As(err, &serr) {
					t.Fatalf("expected StructuredError, got %T", err)
				}
				if serr.Code != kerrors.ErrCodeUnsupportedOS {
					t.Errorf("expected code %s, got %s", kerrors.ErrCodeUnsupportedOS, serr.Code)
				}
				return
			}
			if err != nil {
				t.Fatalf("detectFrom() error = %v", err)
			}
			if d.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", d.ID, tt.wantID)
			}
			if d.Major != tt.wantMajor {
				t.Errorf("Major = %d, want %d", d.Major, tt.wantMajor)
			}
			if !d.Supported() {
				t.Error("expected detected distro to be supported")
			}
		})
	}
}

func TestDetectFromMissingFile(t *testing.T) {
	_, err := detectFrom(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDistroELFamily(t *testing.T) {
	if (&Distro{ID: "fedora"}).ELFamily() {
		t.Error("fedora should not be EL family")
	}
	if !(&Distro{ID: "rocky"}).ELFamily() {
		t.Error("rocky should be EL family")
	}
}

func TestDistroString(t *testing.T) {
	d := &Distro{ID: "fedora", VersionID: "40", Major: 40}
	if got := d.String(); got != "fedora 40" {
		t.Errorf("String() = %q, want %q", got, "fedora 40")
	}
}
