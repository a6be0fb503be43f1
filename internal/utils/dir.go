package utils

import (
	"fmt"
	"os"
)

// IsFile tests whether given path exists and is a file
func IsFile(filePath string) bool {
	file, err := os.Stat(filePath)
	if err != nil {
		return false
	}

	return !file.IsDir()
}

// IsDirectory tests whether given path exists and is a directory
func IsDirectory(dirPath string) bool {
	dir, err := os.Stat(dirPath)
	if err != nil {
		return false
	}

	return dir.IsDir()
}

// CheckIO validates the -in / -out pair every command takes: the input must
// be an existing file, the output an existing directory.
func CheckIO(input, output string) error {
	if !IsFile(input) {
		return fmt.Errorf("input %s does not exist or is no file", input)
	}
	if !IsDirectory(output) {
		return fmt.Errorf("output directory %s doesn't exist", output)
	}
	return nil
}
