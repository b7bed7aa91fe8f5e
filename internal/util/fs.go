package util

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// repoURLPatterns matches the GitHub repository URL forms we accept.
var repoURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`github\.com/([^/]+)/([^/]+?)(?:\.git)?/?$`),
	regexp.MustCompile(`github\.com:([^/]+)/([^/]+?)\.git$`),
}

// ParseRepoURL extracts owner and repository name from a GitHub URL.
// Accepts https URLs with or without .git, SSH clone URLs, and bare
// owner/repo pairs. Returns ("", "") when the input doesn't parse.
func ParseRepoURL(url string) (owner, name string) {
	url = strings.TrimSpace(url)

	for _, pattern := range repoURLPatterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return m[1], m[2]
		}
	}

	// Bare owner/repo shorthand
	parts := strings.Split(url, "/")
	if len(parts) == 2 && parts[0] != "" && parts[1] != "" &&
		!strings.Contains(url, ":") && !strings.Contains(parts[0], ".") {
		return parts[0], strings.TrimSuffix(parts[1], ".git")
	}

	return "", ""
}

// Truncate shortens text to at most max characters, appending an ellipsis
// when anything was cut.
func Truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	if max <= 3 {
		return text[:max]
	}
	return text[:max-3] + "..."
}

// FileExtension returns the lowercased extension without the leading dot,
// or "" when the name has none.
func FileExtension(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// ExpandPath expands ~ to the user's home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}

// EnsureDir creates a directory if it doesn't exist
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
