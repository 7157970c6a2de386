// Package configpaths resolves where img2ascii looks for configuration
// files.
package configpaths

import (
	"os"
	"path/filepath"
	"strings"
)

// AppName names the per-user configuration directory and the base name of
// configuration files.
const AppName = "img2ascii"

// EnvConfig overrides the configuration file path.
const EnvConfig = "IMG2ASCII_CONFIG"

// DefaultConfigDir returns the per-user configuration directory.
func DefaultConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppName), nil
}

// ConfigCandidatePaths returns the configuration files to try, split by
// loader, highest priority first. A user supplied path only goes to the
// loader matching its extension (.yaml/.yml, .toml, anything else JSON) and
// suppresses the default locations.
func ConfigCandidatePaths(userCfg string) (jsonPaths, yamlPaths, tomlPaths []string) {
	if userCfg != "" {
		switch strings.ToLower(filepath.Ext(userCfg)) {
		case ".yaml", ".yml":
			return nil, []string{userCfg}, nil
		case ".toml":
			return nil, nil, []string{userCfg}
		default:
			return []string{userCfg}, nil, nil
		}
	}

	// ./img2ascii.* first, then <user config dir>/img2ascii/config.*
	var bases []string
	if wd, err := os.Getwd(); err == nil {
		bases = append(bases, filepath.Join(wd, AppName))
	}
	if dir, err := DefaultConfigDir(); err == nil {
		bases = append(bases, filepath.Join(dir, "config"))
	}

	for _, base := range bases {
		jsonPaths = append(jsonPaths, base+".json")
		yamlPaths = append(yamlPaths, base+".yaml", base+".yml")
		tomlPaths = append(tomlPaths, base+".toml")
	}
	return jsonPaths, yamlPaths, tomlPaths
}

// FindUserConfig extracts --config from raw arguments, falling back to
// the EnvConfig variable. It runs before flag parsing because the loaders
// must be known before kong parses.
func FindUserConfig(args []string) string {
	for i, a := range args {
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv(EnvConfig)
}
