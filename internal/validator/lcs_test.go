package validator

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLongestIncreasing(t *testing.T) {
	tests := []struct {
		name     string
		seq      []int
		expected []int
	}{
		{name: "empty", seq: nil, expected: nil},
		{name: "sorted", seq: []int{0, 1, 2, 3}, expected: []int{0, 1, 2, 3}},
		{name: "swap keeps later element", seq: []int{1, 0}, expected: []int{1}},
		{name: "one moved to front", seq: []int{1, 2, 3, 0}, expected: []int{0, 1, 2}},
		{name: "gaps", seq: []int{0, 4, 2, 5}, expected: []int{0, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.expected, longestIncreasing(tt.seq)); diff != "" {
				t.Errorf("unexpected subsequence (-expected +actual):\n%s", diff)
			}
		})
	}
}
