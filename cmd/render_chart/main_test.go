package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func subjectFile(name string) string {
	return filepath.Join("..", "..", "internal", "provider", "testdata", name)
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
		check   func(t *testing.T, o *options)
	}{
		{
			name: "defaults",
			args: []string{"-subject", "john.yaml"},
			check: func(t *testing.T, o *options) {
				if o.chartType != "Natal" || o.theme != "classic" || o.variants != "full" {
					t.Errorf("unexpected defaults: %+v", o)
				}
			},
		},
		{
			name: "dual chart",
			args: []string{"-type", "Synastry", "-subject", "john.yaml", "-second", "yoko.yaml", "-png", "-png-size", "300"},
			check: func(t *testing.T, o *options) {
				if o.second != "yoko.yaml" || !o.png || o.pngSize != 300 {
					t.Errorf("unexpected options: %+v", o)
				}
			},
		},
		{
			name:    "missing subject",
			args:    []string{"-type", "Natal"},
			wantErr: true,
		},
		{
			name:    "png size above the maximum",
			args:    []string{"-subject", "john.yaml", "-png", "-png-size", "4096"},
			wantErr: true,
		},
		{
			name:    "png size zero",
			args:    []string{"-subject", "john.yaml", "-png-size", "0"},
			wantErr: true,
		},
		{
			name:    "unknown flag",
			args:    []string{"-subject", "john.yaml", "-colour", "red"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			o, err := parseFlags(tt.args, &stderr)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseFlags() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, o)
			}
		})
	}
}

func TestRun(t *testing.T) {
	tmpDir := t.TempDir()
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), []string{
		"-type", "Transit",
		"-subject", subjectFile("john.yaml"),
		"-second", subjectFile("yoko.yaml"),
		"-aspects", subjectFile("aspects.yaml"),
		"-out", tmpDir,
		"-variants", "full,wheel_only",
		"-png",
		"-png-size", "128",
	}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run() error = %v\nstderr: %s", err, stderr.String())
	}

	for _, name := range []string{
		"John - Transit Chart.svg",
		"John - Transit Chart - Wheel Only.svg",
		"John - Transit Chart - Wheel Only.png",
	} {
		if _, err := os.Stat(filepath.Join(tmpDir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}

	out := stdout.String()
	if strings.Count(out, "SVG Generated Correctly in:") != 2 {
		t.Errorf("expected two generation messages, got:\n%s", out)
	}
	if !strings.Contains(out, "PNG preview:") {
		t.Errorf("expected the PNG preview path, got:\n%s", out)
	}
}

func TestRunErrors(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing subject file", args: []string{"-subject", filepath.Join(tmpDir, "nobody.yaml"), "-out", tmpDir}},
		{name: "unknown chart type", args: []string{"-type", "Solar", "-subject", subjectFile("john.yaml"), "-out", tmpDir}},
		{name: "synastry without partner", args: []string{"-type", "Synastry", "-subject", subjectFile("john.yaml"), "-out", tmpDir}},
		{name: "unknown variant", args: []string{"-subject", subjectFile("john.yaml"), "-out", tmpDir, "-variants", "poster"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if err := run(context.Background(), tt.args, &stdout, &stderr); err == nil {
				t.Error("run() expected error, got nil")
			}
		})
	}
}
