package model

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileLoader reads subjects and aspect lists from JSON or YAML files
type FileLoader struct{}

// LoadSubject reads a subject file. Files carrying first_subject and second_subject
// are decoded as composite subjects.
func (FileLoader) LoadSubject(ctx context.Context, path string) (ChartSubject, error) {
	return LoadSubjectFile(ctx, path)
}

// LoadAspects reads an aspect list file
func (FileLoader) LoadAspects(ctx context.Context, path string) ([]Aspect, error) {
	return LoadAspectsFile(ctx, path)
}

// LoadSubjectFile reads and validates a subject file.
// It respects the provided context for cancellation.
func LoadSubjectFile(ctx context.Context, path string) (ChartSubject, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read subject file: %w", err)
	}

	return ParseSubject(data)
}

// ParseSubject decodes a subject document. JSON is accepted as a subset of YAML.
func ParseSubject(data []byte) (ChartSubject, error) {
	var probe struct {
		FirstSubject  *yaml.Node `yaml:"first_subject"`
		SecondSubject *yaml.Node `yaml:"second_subject"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse subject: %w", err)
	}

	if probe.FirstSubject != nil || probe.SecondSubject != nil {
		var composite CompositeSubject
		if err := yaml.Unmarshal(data, &composite); err != nil {
			return nil, fmt.Errorf("failed to parse composite subject: %w", err)
		}
		if err := composite.Validate(); err != nil {
			return nil, fmt.Errorf("invalid composite subject: %w", err)
		}
		return &composite, nil
	}

	var subject Subject
	if err := yaml.Unmarshal(data, &subject); err != nil {
		return nil, fmt.Errorf("failed to parse subject: %w", err)
	}
	if err := subject.Validate(); err != nil {
		return nil, fmt.Errorf("invalid subject: %w", err)
	}
	return &subject, nil
}

// LoadAspectsFile reads an aspect list. The document is either a list of aspects
// or an object with an "aspects" key.
func LoadAspectsFile(ctx context.Context, path string) ([]Aspect, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read aspects file: %w", err)
	}

	return ParseAspects(data)
}

// ParseAspects decodes an aspect list document
func ParseAspects(data []byte) ([]Aspect, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse aspects: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	var aspects []Aspect
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&aspects); err != nil {
			return nil, fmt.Errorf("failed to decode aspects: %w", err)
		}
	case yaml.MappingNode:
		var wrapped struct {
			Aspects []Aspect `yaml:"aspects"`
		}
		if err := root.Decode(&wrapped); err != nil {
			return nil, fmt.Errorf("failed to decode aspects: %w", err)
		}
		aspects = wrapped.Aspects
	default:
		return nil, fmt.Errorf("aspects document must be a list or an object with an aspects key")
	}

	return aspects, nil
}
