package provider

import (
	"context"
	"fmt"

	"github.com/ankek/terraform-provider-astrochart/internal/interfaces"
	"github.com/ankek/terraform-provider-astrochart/internal/model"
	"github.com/mitchellh/go-homedir"
)

// ChartInputs are the subjects and aspects a chart is built from
type ChartInputs struct {
	First   model.ChartSubject
	Second  *model.Subject
	Aspects []model.Aspect
}

// LoadInputs validates and loads the subject, second subject and aspect files named by cfg.
// The second subject and the aspects are optional.
func LoadInputs(ctx context.Context, loader interfaces.SubjectLoader, validator interfaces.PathValidator, cfg ChartConfig) (*ChartInputs, error) {
	// Check context before proceeding
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if cfg.SubjectPath == "" {
		return nil, fmt.Errorf("subject_path must be provided")
	}
	if err := validator.ValidateInputPath(cfg.SubjectPath, false); err != nil {
		return nil, fmt.Errorf("invalid subject path: %w", err)
	}

	first, err := loader.LoadSubject(ctx, cfg.SubjectPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load subject: %w", err)
	}
	inputs := &ChartInputs{First: first}

	if cfg.SecondSubjectPath != "" {
		if err := validator.ValidateInputPath(cfg.SecondSubjectPath, false); err != nil {
			return nil, fmt.Errorf("invalid second subject path: %w", err)
		}
		second, err := loader.LoadSubject(ctx, cfg.SecondSubjectPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load second subject: %w", err)
		}
		plain, ok := second.(*model.Subject)
		if !ok {
			return nil, fmt.Errorf("second subject %s must be a single subject, got %T", cfg.SecondSubjectPath, second)
		}
		inputs.Second = plain
	}

	if cfg.AspectsPath != "" {
		if err := validator.ValidateInputPath(cfg.AspectsPath, false); err != nil {
			return nil, fmt.Errorf("invalid aspects path: %w", err)
		}
		aspects, err := loader.LoadAspects(ctx, cfg.AspectsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load aspects: %w", err)
		}
		inputs.Aspects = aspects
	}

	return inputs, nil
}

// ResolveOutputDirectory expands a leading ~ and falls back to the home directory
func ResolveOutputDirectory(dir string) (string, error) {
	if dir == "" {
		home, err := homedir.Dir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		return home, nil
	}
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return "", fmt.Errorf("failed to expand output directory: %w", err)
	}
	return expanded, nil
}
