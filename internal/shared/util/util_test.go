package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePatternPath(t *testing.T) {
	tests := map[string]string{
		"":                 "",
		".":                "",
		"./tests/test_a.py": "tests/test_a.py",
		`tests\unit\x.py`:  "tests/unit/x.py",
		" tests//a/../b ":  "tests/b",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizePatternPath(in), "input %q", in)
	}
}

func TestSortedStringKeys(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SortedStringKeys(map[string]int{"c": 1, "a": 2, "b": 3}))
	assert.Empty(t, SortedStringKeys(map[string]bool{}))
}

func TestWriteFileWithDirs(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "dir", "report.json")
	require.NoError(t, WriteFileWithDirs(target, []byte("{}"), 0o644))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}
