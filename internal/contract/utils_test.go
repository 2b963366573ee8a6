package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetColorLabel(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		label string
	}{
		{"low", 1.5, LowValue},
		{"moderate", 0.5, ModerateValue},
		{"high", -0.5, HighValue},
		{"critical", -1.5, CriticalValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetColorLabel(tt.value)
			// Should contain the plain label
			assert.Contains(t, result, tt.label)
		})
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "test_output.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestShouldIgnore(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		excludes   []string
		wantIgnore bool
	}{
		{
			name:       "empty excludes",
			path:       "jsoup/src/main/Jsoup",
			excludes:   []string{},
			wantIgnore: false,
		},
		{
			name:       "prefix match",
			path:       "jsoup/src/test/ParserTest",
			excludes:   []string{"jsoup/src/test/"},
			wantIgnore: true,
		},
		{
			name:       "glob match class name",
			path:       "jsoup/src/test/ParserTest",
			excludes:   []string{"*Test"},
			wantIgnore: true,
		},
		{
			name:       "substring match",
			path:       "jsoup/src/generated/Lexer",
			excludes:   []string{"generated"},
			wantIgnore: true,
		},
		{
			name:       "no match",
			path:       "jsoup/src/main/Jsoup",
			excludes:   []string{"test/", "*Test", "generated"},
			wantIgnore: false,
		},
		{
			name:       "blank patterns skipped",
			path:       "jsoup/src/main/Jsoup",
			excludes:   []string{"", "  "},
			wantIgnore: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantIgnore, ShouldIgnore(tt.path, tt.excludes))
		})
	}
}

func TestFilterPaths(t *testing.T) {
	assert.True(t, FilterPaths("jsoup/src/main/A", "", nil))
	assert.True(t, FilterPaths("jsoup/src/main/A", "jsoup/src/main", nil))
	assert.False(t, FilterPaths("jsoup/src/test/B", "jsoup/src/main", nil))
	assert.False(t, FilterPaths("jsoup/src/main/ATest", "jsoup/src/main", []string{"*Test"}))
}

func TestGetDBFilePaths(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	cachePath := GetCacheDBFilePath()
	assert.Contains(t, cachePath, ".codequal_cache.db")
	assert.True(t, strings.HasPrefix(cachePath, homeDir), "path %s should start with home dir %s", cachePath, homeDir)

	analysisPath := GetAnalysisDBFilePath()
	assert.Contains(t, analysisPath, ".codequal_analysis.db")
	assert.NotEqual(t, cachePath, analysisPath)
}

func TestTruncatePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		maxWidth int
		expected string
	}{
		{"short path untouched", "a/b", 10, "a/b"},
		{"long path truncated", "jsoup/src/main/Jsoup", 10, "...n/Jsoup"},
		{"tiny width untouched", "jsoup/src/main/Jsoup", 3, "jsoup/src/main/Jsoup"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncatePath(tt.path, tt.maxWidth))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, v, s)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, v, s)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}
