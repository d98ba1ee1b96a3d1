package utils

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadJSON reads the file at path and decodes its JSON contents into target.
func LoadJSON(path string, target any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(target); err != nil {
		return fmt.Errorf("failed to decode JSON from %s: %w", path, err)
	}
	return nil
}
