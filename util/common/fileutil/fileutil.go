package fileutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/juspay/airborne-cli/util/common/errors"
)

// validatePath rejects empty paths and characters that are not portable
// across the platforms a React Native project is built on.
func validatePath(path string) error {
	if path == "" {
		return errors.NewValidationError("path", "path cannot be empty")
	}
	if strings.ContainsAny(path, "<>|?*") {
		return errors.NewValidationError("path", "path contains invalid characters")
	}
	return nil
}

// ResetDir removes a directory if it exists and creates a fresh empty one.
func ResetDir(path string) error {
	if err := validatePath(path); err != nil {
		return err
	}
	if err := os.RemoveAll(path); err != nil {
		return errors.NewFileError(path, "remove", err)
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return errors.NewFileError(path, "create", err)
	}
	return nil
}

// ReadFile reads the entire file and returns its contents.
func ReadFile(path string) ([]byte, error) {
	if err := validatePath(path); err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.NewFileError(path, "stat", err)
	}
	if info.IsDir() {
		return nil, errors.NewValidationError("path", "path is a directory, expected a file")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewFileError(path, "read", err)
	}
	return data, nil
}

// WriteFile writes data to path, creating parent directories as needed.
func WriteFile(path string, data []byte) error {
	if err := validatePath(path); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewFileError(path, "create_dir", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.NewFileError(path, "write", err)
	}
	return nil
}

// ReadJSON decodes the JSON document at path into v.
func ReadJSON(path string, v any) error {
	data, err := ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.NewFileError(path, "parse", err)
	}
	return nil
}

// WriteJSON writes v to path as two-space indented JSON with a trailing
// newline.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.NewFileError(path, "encode", err)
	}
	return WriteFile(path, append(data, '\n'))
}

// Exists checks if a file or directory exists
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir checks if the path is a directory
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsFile checks if the path is a regular file
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// HasExtension reports whether fileName ends with one of exts, ignoring case.
func HasExtension(fileName string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))
	for _, e := range exts {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}
