// Package registry holds the ordered, categorized set of color pairs an
// audit runs over. Registries come from the caller (a JSON file, a remote
// URL, or an exported swatch page); the engine never embeds color values.
package registry

import (
	"fmt"

	"github.com/evplan/contrast-audit/pkg/wcag"
)

// TestCase is a single foreground/background pair to audit. Identity is
// (Category, Name); immutable once constructed.
type TestCase struct {
	Name       string
	Category   string
	Foreground wcag.ColorSample
	Background wcag.ColorSample
}

// Registry is an ordered collection of test cases grouped by category.
type Registry struct {
	cases []TestCase
}

// New validates the supplied cases and builds a registry. Validation is
// fail-fast: out-of-range channels and duplicate (category, name) pairs
// abort construction rather than being patched up.
func New(cases []TestCase) (*Registry, error) {
	seen := make(map[string]struct{}, len(cases))
	for i, tc := range cases {
		if tc.Name == "" {
			return nil, fmt.Errorf("test case %d: empty name", i)
		}
		if err := tc.Foreground.Validate(); err != nil {
			return nil, fmt.Errorf("test case %q (%s): foreground: %w", tc.Name, tc.Category, err)
		}
		if err := tc.Background.Validate(); err != nil {
			return nil, fmt.Errorf("test case %q (%s): background: %w", tc.Name, tc.Category, err)
		}
		key := tc.Category + "\x00" + tc.Name
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("duplicate test case %q in category %q", tc.Name, tc.Category)
		}
		seen[key] = struct{}{}
	}
	out := make([]TestCase, len(cases))
	copy(out, cases)
	return &Registry{cases: out}, nil
}

// Cases returns the test cases in registration order.
func (r *Registry) Cases() []TestCase {
	out := make([]TestCase, len(r.cases))
	copy(out, r.cases)
	return out
}

// Len returns the number of registered test cases.
func (r *Registry) Len() int {
	return len(r.cases)
}

// Categories returns category names in first-appearance order.
func (r *Registry) Categories() []string {
	var order []string
	seen := make(map[string]struct{})
	for _, tc := range r.cases {
		if _, ok := seen[tc.Category]; !ok {
			seen[tc.Category] = struct{}{}
			order = append(order, tc.Category)
		}
	}
	return order
}
