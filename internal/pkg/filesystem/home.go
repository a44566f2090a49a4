package filesystem

import (
	"os"
	"path/filepath"
)

// UserHomeDir returns the current user's home directory.
// If the home directory cannot be determined, it returns "." as a fallback.
func UserHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// DataDir resolves the smartai data directory. SMARTAI_HOME wins when set;
// the default is ~/.smartai.
func DataDir() string {
	if custom := os.Getenv("SMARTAI_HOME"); custom != "" {
		return custom
	}
	return filepath.Join(UserHomeDir(), ".smartai")
}
