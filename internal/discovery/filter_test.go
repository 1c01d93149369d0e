package discovery

import (
	"testing"
)

func TestFilter_FilterByName(t *testing.T) {
	filter := NewFilter()

	tests := []struct {
		name     string
		tests    []string
		pattern  string
		expected int // Expected number of matches
	}{
		{
			name:     "empty pattern returns all",
			tests:    []string{"user.test.ts", "payment.node.test.ts", "order.browser.spec.ts"},
			pattern:  "",
			expected: 3,
		},
		{
			name:     "wildcard pattern matches suffix",
			tests:    []string{"user.test.ts", "payment.node.test.ts", "order.browser.spec.ts"},
			pattern:  "*.node.test.ts",
			expected: 1,
		},
		{
			name:     "wildcard pattern matches substring",
			tests:    []string{"user.test.ts", "payment.test.ts", "order.test.ts", "paymentService.node.test.ts"},
			pattern:  "*payment*",
			expected: 2,
		},
		{
			name:     "simple contains match",
			tests:    []string{"user.test.ts", "payment.test.ts", "order.test.ts"},
			pattern:  "payment",
			expected: 1,
		},
		{
			name:     "no matches",
			tests:    []string{"user.test.ts", "payment.test.ts"},
			pattern:  "*nonexistent*",
			expected: 0,
		},
		{
			name:     "full path with wildcard",
			tests:    []string{"/path/to/user.test.ts", "/path/to/payment.test.ts"},
			pattern:  "user*",
			expected: 1,
		},
		{
			name:     "parts must appear in order",
			tests:    []string{"button.browser.test.ts", "browser.button.test.ts"},
			pattern:  "*button*browser*",
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := filter.FilterByName(tt.tests, tt.pattern)
			if len(result) != tt.expected {
				t.Errorf("expected %d matches, got %d", tt.expected, len(result))
			}
		})
	}
}

func TestFilter_FilterByName_EdgeCases(t *testing.T) {
	filter := NewFilter()

	t.Run("empty test list", func(t *testing.T) {
		result := filter.FilterByName([]string{}, "*.test.ts")
		if len(result) != 0 {
			t.Errorf("expected empty result, got %d items", len(result))
		}
	})

	t.Run("double star matches any base name", func(t *testing.T) {
		result := filter.FilterByName([]string{"a.test.ts"}, "**")
		if len(result) != 1 {
			t.Errorf("expected 1 item, got %d items", len(result))
		}
	})
}
