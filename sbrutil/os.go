package sbrutil

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// WriteBytes writes the given bytes to the given file in the given directory.
// If the directory does not exist, it is created.
// If the file already exists, it is overwritten.
func WriteBytes(directory, fileName string, bz []byte) error {
	if err := os.MkdirAll(directory, os.ModePerm); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(directory, fileName), bz, 0o644)
}

// WriteJSON writes the indented JSON encoding of v to the given file in the given directory.
func WriteJSON(directory, fileName string, v any) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	return WriteBytes(directory, fileName, bz)
}
