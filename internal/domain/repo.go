package domain

// Repository holds the metadata shown in the report overview.
type Repository struct {
	Name        string
	FullName    string
	Description string
	Owner       string
	Stars       int
	Forks       int
	OpenIssues  int
	Language    string
	CreatedAt   string
	UpdatedAt   string
	License     string
	Topics      []string
	URL         string
}

// Commit is one entry of a repository's commit history.
type Commit struct {
	SHA          string
	Author       string
	Email        string
	Date         string
	Message      string
	URL          string
	FilesChanged int
}

// RemoteFile describes a repository file eligible for analysis.
type RemoteFile struct {
	Name      string
	Path      string
	SHA       string
	Size      int
	URL       string
	Extension string
}

// MaxFileSize is the largest file fetched for analysis, in bytes.
const MaxFileSize = 500000

// SupportedExtensions lists the file extensions offered for analysis.
var SupportedExtensions = []string{"py", "js", "ts", "java", "go", "cpp", "c", "cs", "php", "rb"}
