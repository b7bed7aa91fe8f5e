// Package github is a minimal REST v3 client covering the endpoints the
// analysis pipeline needs: repository metadata, commit history, and the
// contents tree.
package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/repolens/repolens/internal/domain"
)

const defaultBaseURL = "https://api.github.com"

// perPage is the page size used for commit listing.
const perPage = 100

// Client talks to the GitHub API for a single repository.
type Client struct {
	baseURL    string
	owner      string
	repo       string
	token      string
	logger     *log.Logger
	httpClient *http.Client
}

// NewClient creates a client for owner/repo. An empty token is allowed
// but subject to unauthenticated rate limits.
func NewClient(baseURL, owner, repo, token string, logger *log.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		owner:   owner,
		repo:    repo,
		token:   token,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Authenticated reports whether the client carries an API token.
func (c *Client) Authenticated() bool {
	return c.token != ""
}

type repoResponse struct {
	Name            string `json:"name"`
	FullName        string `json:"full_name"`
	Description     string `json:"description"`
	Stars           int    `json:"stargazers_count"`
	Forks           int    `json:"forks_count"`
	OpenIssues      int    `json:"open_issues_count"`
	Language        string `json:"language"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
	HTMLURL         string `json:"html_url"`
	Owner           struct {
		Login string `json:"login"`
	} `json:"owner"`
	License *struct {
		Name string `json:"name"`
	} `json:"license"`
}

// Repository fetches the repository metadata shown in the report
// overview, including topics.
func (c *Client) Repository(ctx context.Context) (domain.Repository, error) {
	var data repoResponse
	if err := c.get(ctx, c.repoURL(""), &data); err != nil {
		return domain.Repository{}, err
	}

	repo := domain.Repository{
		Name:        data.Name,
		FullName:    data.FullName,
		Description: data.Description,
		Owner:       data.Owner.Login,
		Stars:       data.Stars,
		Forks:       data.Forks,
		OpenIssues:  data.OpenIssues,
		Language:    data.Language,
		CreatedAt:   formatDate(data.CreatedAt),
		UpdatedAt:   formatDate(data.UpdatedAt),
		License:     "Not specified",
		URL:         data.HTMLURL,
	}
	if repo.Description == "" {
		repo.Description = "No description provided"
	}
	if repo.Language == "" {
		repo.Language = "Not specified"
	}
	if data.License != nil && data.License.Name != "" {
		repo.License = data.License.Name
	}

	// Topics come from a separate endpoint; failure here is not fatal.
	var topics struct {
		Names []string `json:"names"`
	}
	if err := c.get(ctx, c.repoURL("/topics"), &topics); err == nil {
		repo.Topics = topics.Names
	}

	return repo, nil
}

type commitResponse struct {
	SHA    string `json:"sha"`
	URL    string `json:"url"`
	HTML   string `json:"html_url"`
	Commit struct {
		Message string `json:"message"`
		Author  struct {
			Name  string `json:"name"`
			Email string `json:"email"`
			Date  string `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

// Commits returns up to limit commits, newest first, paging through the
// commits endpoint. The page size is fixed across requests so page
// windows never overlap; the count is trimmed at limit instead.
// FilesChanged is left at zero; EnrichCommit fills it for the commits a
// report actually shows.
func (c *Client) Commits(ctx context.Context, limit int) ([]domain.Commit, error) {
	size := perPage
	if limit < size {
		size = limit
	}

	var commits []domain.Commit
	for page := 1; len(commits) < limit; page++ {
		u := c.repoURL("/commits") + fmt.Sprintf("?per_page=%d&page=%d", size, page)

		var pageData []commitResponse
		if err := c.get(ctx, u, &pageData); err != nil {
			return nil, err
		}
		if len(pageData) == 0 {
			break
		}

		for _, item := range pageData {
			commits = append(commits, domain.Commit{
				SHA:     item.SHA,
				Author:  item.Commit.Author.Name,
				Email:   item.Commit.Author.Email,
				Date:    formatDate(item.Commit.Author.Date),
				Message: item.Commit.Message,
				URL:     item.HTML,
			})
			if len(commits) >= limit {
				return commits, nil
			}
		}

		// A short page means the history is exhausted.
		if len(pageData) < size {
			break
		}
	}

	return commits, nil
}

// EnrichCommit fetches a commit's detail to fill in the changed-file
// count. Called only for commits surfaced in the report table, since it
// costs one request per commit.
func (c *Client) EnrichCommit(ctx context.Context, commit *domain.Commit) error {
	var detail struct {
		Files []struct {
			Filename string `json:"filename"`
		} `json:"files"`
	}
	if err := c.get(ctx, c.repoURL("/commits/"+commit.SHA), &detail); err != nil {
		return err
	}
	commit.FilesChanged = len(detail.Files)
	return nil
}

type contentEntry struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	SHA      string `json:"sha"`
	Size     int    `json:"size"`
	Type     string `json:"type"`
	HTMLURL  string `json:"html_url"`
	Encoding string `json:"encoding"`
	Content  string `json:"content"`
}

// Files walks the repository contents tree breadth-first and returns up
// to maxFiles files whose extension is in extensions. Oversized files are
// skipped. Directories that fail to list are skipped rather than aborting
// the walk.
func (c *Client) Files(ctx context.Context, maxFiles int, extensions []string) ([]domain.RemoteFile, error) {
	wanted := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		wanted[strings.ToLower(ext)] = true
	}

	var files []domain.RemoteFile
	queue := []string{""}

	for len(queue) > 0 && len(files) < maxFiles {
		dir := queue[0]
		queue = queue[1:]

		entries, err := c.listContents(ctx, dir)
		if err != nil {
			c.logger.Printf("Warning: listing %q failed: %v", dir, err)
			continue
		}

		for _, entry := range entries {
			switch entry.Type {
			case "dir":
				queue = append(queue, entry.Path)
			case "file":
				ext := extensionOf(entry.Name)
				if len(wanted) > 0 && !wanted[ext] {
					continue
				}
				if entry.Size > domain.MaxFileSize {
					continue
				}
				files = append(files, domain.RemoteFile{
					Name:      entry.Name,
					Path:      entry.Path,
					SHA:       entry.SHA,
					Size:      entry.Size,
					URL:       entry.HTMLURL,
					Extension: ext,
				})
				if len(files) >= maxFiles {
					return files, nil
				}
			}
		}
	}

	return files, nil
}

// FileContent fetches and decodes a file's content. Content that does
// not decode as UTF-8 text comes back as a placeholder string so the
// analyzer never sees raw binary.
func (c *Client) FileContent(ctx context.Context, path string) (string, error) {
	var entry contentEntry
	if err := c.get(ctx, c.repoURL("/contents/"+escapePath(path)), &entry); err != nil {
		return "", err
	}

	if entry.Encoding != "base64" {
		return fmt.Sprintf("[Unsupported encoding: %s]", entry.Encoding), nil
	}

	raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(entry.Content, "\n", ""))
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", path, err)
	}
	if !utf8.Valid(raw) {
		return fmt.Sprintf("[Binary file: %s]", path), nil
	}

	return string(raw), nil
}

func (c *Client) listContents(ctx context.Context, dir string) ([]contentEntry, error) {
	u := c.repoURL("/contents")
	if dir != "" {
		u += "/" + escapePath(dir)
	}

	body, status, err := c.do(ctx, u)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("listing contents of %q: status %d", dir, status)
	}

	// The endpoint returns an object for single files, an array for
	// directories.
	if strings.HasPrefix(strings.TrimSpace(body), "{") {
		var single contentEntry
		if err := json.Unmarshal([]byte(body), &single); err != nil {
			return nil, err
		}
		return []contentEntry{single}, nil
	}

	var entries []contentEntry
	if err := json.Unmarshal([]byte(body), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) repoURL(suffix string) string {
	return fmt.Sprintf("%s/repos/%s/%s%s", c.baseURL, c.owner, c.repo, suffix)
}

func (c *Client) get(ctx context.Context, u string, out any) error {
	body, status, err := c.do(ctx, u)
	if err != nil {
		return err
	}
	if err := c.checkStatus(status); err != nil {
		return err
	}
	return json.Unmarshal([]byte(body), out)
}

func (c *Client) do(ctx context.Context, u string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("connecting to GitHub API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0" {
		return "", resp.StatusCode, fmt.Errorf("GitHub API rate limit exceeded; try again later or provide a token")
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, err
	}
	return string(payload), resp.StatusCode, nil
}

func (c *Client) checkStatus(status int) error {
	switch {
	case status == http.StatusNotFound:
		return fmt.Errorf("repository %s/%s not found", c.owner, c.repo)
	case status == http.StatusForbidden:
		return fmt.Errorf("access forbidden: a valid GitHub token may be required")
	case status != http.StatusOK:
		return fmt.Errorf("GitHub API error: status %d", status)
	}
	return nil
}

func extensionOf(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}

func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

// formatDate converts an ISO timestamp to YYYY-MM-DD for display,
// returning the input unchanged when it doesn't parse.
func formatDate(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Format("2006-01-02")
}
