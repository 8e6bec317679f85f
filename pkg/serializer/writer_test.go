package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type sample struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

type tableSample struct {
	sample
}

func (t *tableSample) MarshalTable(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s\t%d\n", t.Name, t.Count)
	return err
}

func TestFormatIsUnknown(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatYAML, FormatTable} {
		if f.IsUnknown() {
			t.Errorf("%s should be known", f)
		}
	}
	if !Format("xml").IsUnknown() {
		t.Error("xml should be unknown")
	}
	if len(SupportedFormats()) != 3 {
		t.Errorf("expected 3 supported formats, got %d", len(SupportedFormats()))
	}
}

func TestSerializeJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatJSON, &buf)

	if err := w.Serialize(context.TODO(), &sample{Name: "gcc", Count: 2}); err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	var got sample
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if got.Name != "gcc" || got.Count != 2 {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestSerializeYAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatYAML, &buf)

	if err := w.Serialize(context.TODO(), &sample{Name: "go", Count: 1}); err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	var got sample
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if got.Name != "go" {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestSerializeTable(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatTable, &buf)

	if err := w.Serialize(context.TODO(), &tableSample{sample{Name: "make", Count: 4}}); err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if !strings.Contains(buf.String(), "make") {
		t.Errorf("table output missing row: %q", buf.String())
	}

	// Values without table support are rejected
	if err := w.Serialize(context.TODO(), &sample{}); err == nil {
		t.Error("expected error for non-TableMarshaler value")
	}
}

func TestNewWriterDefaults(t *testing.T) {
	w := NewWriter(Format("bogus"), &bytes.Buffer{})
	if w.format != FormatJSON {
		t.Errorf("unknown format should default to JSON, got %s", w.format)
	}
}

func TestNewFileWriterOrStdout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	w := NewFileWriterOrStdout(FormatJSON, path)

	if err := w.Serialize(context.TODO(), &sample{Name: "jq"}); err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "jq") {
		t.Error("file output missing serialized data")
	}

	// Empty path falls back to stdout and Close is a no-op
	ws := NewFileWriterOrStdout(FormatJSON, "")
	if err := ws.Close(); err != nil {
		t.Errorf("Close() on stdout writer error = %v", err)
	}
}
