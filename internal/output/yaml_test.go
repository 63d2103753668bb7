package output

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestYAMLFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	f := NewYAMLFormatter(nil)

	if err := f.Format(&buf, map[string]interface{}{"version": "dev"}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if strings.TrimSpace(buf.String()) != "version: dev" {
		t.Errorf("unexpected YAML: %q", buf.String())
	}
}

func TestYAMLFormatter_FormatPlan(t *testing.T) {
	var buf bytes.Buffer
	if err := NewYAMLFormatter(nil).FormatPlan(&buf, samplePlan()); err != nil {
		t.Fatalf("FormatPlan() error = %v", err)
	}

	var got struct {
		N        int `yaml:"n"`
		Workers  int `yaml:"workers"`
		Ranges   []map[string]int
		Leftover map[string]int
	}
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, buf.String())
	}

	if got.N != 10 || got.Workers != 3 || len(got.Ranges) != 3 {
		t.Errorf("unexpected plan: %+v", got)
	}
	if got.Leftover["from"] != 9 || got.Leftover["len"] != 1 {
		t.Errorf("unexpected leftover: %v", got.Leftover)
	}
}

func TestYAMLFormatter_FormatResults(t *testing.T) {
	var buf bytes.Buffer
	if err := NewYAMLFormatter(nil).FormatResults(&buf, sampleResults()); err != nil {
		t.Fatalf("FormatResults() error = %v", err)
	}

	var got []map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 results, got %d", len(got))
	}
	if got[2]["status"] != "failed" {
		t.Errorf("unexpected result: %v", got[2])
	}
}

func TestYAMLFormatter_FormatMeasurements(t *testing.T) {
	var buf bytes.Buffer
	if err := NewYAMLFormatter(nil).FormatMeasurements(&buf, sampleMeasurements()); err != nil {
		t.Fatalf("FormatMeasurements() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"backend: managed", "avg: 3ms", "verified: true", "verified: false", "run 1: verification failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
