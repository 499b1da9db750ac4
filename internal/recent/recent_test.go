// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recent

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord(t *testing.T) {
	tests := []struct {
		name   string
		record []string
		want   []string
	}{
		{"single", []string{"git"}, []string{"git"}},
		{"most recent first", []string{"git", "node"}, []string{"node", "git"}},
		{"duplicate moves to front", []string{"git", "git", "node"}, []string{"node", "git"}},
		{"reorders existing", []string{"a", "b", "c", "a"}, []string{"a", "c", "b"}},
		{"ignores blank", []string{"", "   ", "\t\n"}, []string{}},
		{"trims before storing", []string{"  react  ", "react"}, []string{"react"}},
		{
			"truncates to capacity",
			[]string{"1", "2", "3", "4", "5", "6", "7"},
			[]string{"7", "6", "5", "4", "3"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker(5)
			for _, r := range tt.record {
				tr.Record(r)
			}
			assert.Equal(t, tt.want, tr.List())
		})
	}
}

func TestRecordNeverExceedsCapacityOrDuplicates(t *testing.T) {
	tr := NewTracker(5)
	for i := 0; i < 100; i++ {
		tr.Record(fmt.Sprintf("q%d", i%8))

		list := tr.List()
		assert.LessOrEqual(t, len(list), 5)
		seen := map[string]bool{}
		for _, e := range list {
			assert.False(t, seen[e], "duplicate %q in %v", e, list)
			seen[e] = true
		}
	}
}

func TestClear(t *testing.T) {
	tr := NewTracker(5)
	tr.Record("git")
	tr.Record("node")
	tr.Clear()

	assert.Equal(t, 0, tr.Len())
	assert.Empty(t, tr.List())

	tr.Record("go")
	assert.Equal(t, []string{"go"}, tr.List())
}

func TestListIsACopy(t *testing.T) {
	tr := NewTracker(5)
	tr.Record("git")
	list := tr.List()
	list[0] = "mutated"
	assert.Equal(t, []string{"git"}, tr.List())
}
