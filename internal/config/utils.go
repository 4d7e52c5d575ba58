package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/Paintersrp/nt/internal/constants"
)

func GetConfigPath(homeDir string) string {
	return filepath.Join(homeDir, constants.ConfigDir, constants.ConfigFile)
}

// expandHome resolves a leading ~ against the user's home directory.
func expandHome(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", nil
	}

	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", p, err)
	}
	return filepath.Clean(expanded), nil
}
