package configpaths

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// EnvFiles lists the dotenv files LoadEnv reads, highest priority first.
var EnvFiles = []string{".env.local", ".env"}

// LoadEnv loads the EnvFiles found in dir into the process environment so
// env-backed flags can be set from them. Variables that are already set
// are never overridden, which also makes .env.local win over .env. It
// returns the files that were loaded.
func LoadEnv(dir string) ([]string, error) {
	var loaded []string
	for _, name := range EnvFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return loaded, fmt.Errorf("load %s: %w", path, err)
		}
		loaded = append(loaded, path)
	}
	return loaded, nil
}
