package provider

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ankek/terraform-provider-astrochart/internal/model"
	"github.com/ankek/terraform-provider-astrochart/internal/validation"
	"github.com/mitchellh/go-homedir"
)

// recordingLoader serves canned subjects and records the paths it was asked for
type recordingLoader struct {
	subjects map[string]model.ChartSubject
	aspects  []model.Aspect
	err      error
	calls    []string
}

func (l *recordingLoader) LoadSubject(ctx context.Context, path string) (model.ChartSubject, error) {
	l.calls = append(l.calls, "subject:"+filepath.Base(path))
	if l.err != nil {
		return nil, l.err
	}
	return l.subjects[filepath.Base(path)], nil
}

func (l *recordingLoader) LoadAspects(ctx context.Context, path string) ([]model.Aspect, error) {
	l.calls = append(l.calls, "aspects:"+filepath.Base(path))
	if l.err != nil {
		return nil, l.err
	}
	return l.aspects, nil
}

func TestLoadInputs(t *testing.T) {
	john := &model.Subject{Name: "John"}
	yoko := &model.Subject{Name: "Yoko"}
	composite := &model.CompositeSubject{Subject: model.Subject{Name: "Composite"}}

	newLoader := func() *recordingLoader {
		return &recordingLoader{
			subjects: map[string]model.ChartSubject{
				"john.yaml":      john,
				"yoko.yaml":      yoko,
				"composite.yaml": composite,
			},
			aspects: []model.Aspect{{P1Name: "Sun", P2Name: "Moon", Kind: "trine"}},
		}
	}

	tests := []struct {
		name        string
		cfg         ChartConfig
		wantCalls   []string
		wantSecond  bool
		wantAspects int
		wantErr     string
	}{
		{
			name:      "subject only",
			cfg:       ChartConfig{SubjectPath: johnPath},
			wantCalls: []string{"subject:john.yaml"},
		},
		{
			name:        "subject, second subject and aspects",
			cfg:         ChartConfig{SubjectPath: johnPath, SecondSubjectPath: yokoPath, AspectsPath: aspectsPath},
			wantCalls:   []string{"subject:john.yaml", "subject:yoko.yaml", "aspects:aspects.yaml"},
			wantSecond:  true,
			wantAspects: 1,
		},
		{
			name:    "composite second subject",
			cfg:     ChartConfig{SubjectPath: johnPath, SecondSubjectPath: compositePath},
			wantErr: "must be a single subject",
		},
		{
			name:    "missing subject path",
			cfg:     ChartConfig{},
			wantErr: "subject_path must be provided",
		},
		{
			name:    "missing aspects file",
			cfg:     ChartConfig{SubjectPath: johnPath, AspectsPath: filepath.Join("testdata", "none.yaml")},
			wantErr: "invalid aspects path",
		},
		{
			name:    "traversal in second subject path",
			cfg:     ChartConfig{SubjectPath: johnPath, SecondSubjectPath: "../provider/testdata/yoko.yaml"},
			wantErr: "invalid second subject path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := newLoader()
			inputs, err := LoadInputs(context.Background(), loader, validation.Validator{}, tt.cfg)

			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("LoadInputs() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadInputs() unexpected error = %v", err)
			}

			if strings.Join(loader.calls, ",") != strings.Join(tt.wantCalls, ",") {
				t.Errorf("loader calls = %v, want %v", loader.calls, tt.wantCalls)
			}
			if inputs.First.Base().Name != "John" {
				t.Errorf("first subject = %q, want John", inputs.First.Base().Name)
			}
			if (inputs.Second != nil) != tt.wantSecond {
				t.Errorf("second subject present = %v, want %v", inputs.Second != nil, tt.wantSecond)
			}
			if len(inputs.Aspects) != tt.wantAspects {
				t.Errorf("aspects = %d, want %d", len(inputs.Aspects), tt.wantAspects)
			}
		})
	}
}

func TestLoadInputs_LoaderError(t *testing.T) {
	loader := &recordingLoader{err: errors.New("disk on fire")}

	_, err := LoadInputs(context.Background(), loader, validation.Validator{}, ChartConfig{SubjectPath: johnPath})
	if err == nil || !strings.Contains(err.Error(), "disk on fire") {
		t.Errorf("LoadInputs() error = %v, want the loader error", err)
	}
}

func TestLoadInputs_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loader := &recordingLoader{}
	if _, err := LoadInputs(ctx, loader, validation.Validator{}, ChartConfig{SubjectPath: johnPath}); !errors.Is(err, context.Canceled) {
		t.Errorf("LoadInputs() error = %v, want context.Canceled", err)
	}
	if len(loader.calls) != 0 {
		t.Errorf("loader called after cancellation: %v", loader.calls)
	}
}

func TestResolveOutputDirectory(t *testing.T) {
	home, err := homedir.Dir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		name string
		dir  string
		want string
	}{
		{name: "empty uses home", dir: "", want: home},
		{name: "tilde expands", dir: "~/charts", want: filepath.Join(home, "charts")},
		{name: "absolute kept", dir: "/tmp/charts", want: "/tmp/charts"},
		{name: "relative kept", dir: "charts", want: "charts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveOutputDirectory(tt.dir)
			if err != nil {
				t.Fatalf("ResolveOutputDirectory() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveOutputDirectory(%q) = %q, want %q", tt.dir, got, tt.want)
			}
		})
	}
}
