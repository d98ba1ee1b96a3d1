package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadJSON(t *testing.T) {
	t.Run("loads valid JSON file", func(t *testing.T) {
		jsonFile := filepath.Join(t.TempDir(), "test.json")
		require.NoError(t, os.WriteFile(jsonFile, []byte(`{"name": "test", "value": 42}`), 0600))

		var result struct {
			Name  string `json:"name"`
			Value int    `json:"value"`
		}
		require.NoError(t, LoadJSON(jsonFile, &result))
		assert.Equal(t, "test", result.Name)
		assert.Equal(t, 42, result.Value)
	})

	t.Run("missing file", func(t *testing.T) {
		var result map[string]any
		err := LoadJSON("/nonexistent/path/file.json", &result)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open")
	})

	t.Run("malformed JSON", func(t *testing.T) {
		jsonFile := filepath.Join(t.TempDir(), "invalid.json")
		require.NoError(t, os.WriteFile(jsonFile, []byte("{invalid json}"), 0600))

		var result map[string]any
		err := LoadJSON(jsonFile, &result)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode")
	})
}
