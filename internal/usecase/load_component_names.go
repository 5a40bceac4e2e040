package usecase

import (
	"context"
	"fmt"
	"sort"
)

// LoadComponentNamesOutput contains the component names of a trace.
type LoadComponentNamesOutput struct {
	Names []string // Sorted and de-duplicated
}

// LoadComponentNames is the use case for listing trace locations.
type LoadComponentNames struct {
	source componentNameSource
}

type componentNameSource interface {
	ComponentNames(ctx context.Context) ([]string, error)
}

// NewLoadComponentNames creates a new LoadComponentNames use case.
func NewLoadComponentNames(source componentNameSource) *LoadComponentNames {
	return &LoadComponentNames{source: source}
}

// Execute returns the non-empty component names in sorted order.
func (uc *LoadComponentNames) Execute(ctx context.Context) (*LoadComponentNamesOutput, error) {
	names, err := uc.source.ComponentNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("load component names: %w", err)
	}

	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	sort.Strings(out)
	return &LoadComponentNamesOutput{Names: out}, nil
}
