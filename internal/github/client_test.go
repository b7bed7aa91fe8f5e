package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens/repolens/internal/domain"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "octocat", "hello-world", "", testLogger())
}

func TestRepository(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/hello-world", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"name": "hello-world",
			"full_name": "octocat/hello-world",
			"description": "My first repository",
			"stargazers_count": 80,
			"forks_count": 9,
			"open_issues_count": 2,
			"language": "Python",
			"created_at": "2011-01-26T19:01:12Z",
			"updated_at": "2023-06-15T10:00:00Z",
			"html_url": "https://github.com/octocat/hello-world",
			"owner": {"login": "octocat"},
			"license": {"name": "MIT License"}
		}`)
	})
	mux.HandleFunc("/repos/octocat/hello-world/topics", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"names": ["demo", "tutorial"]}`)
	})

	client := newTestClient(t, mux)
	repo, err := client.Repository(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "hello-world", repo.Name)
	assert.Equal(t, "octocat/hello-world", repo.FullName)
	assert.Equal(t, "octocat", repo.Owner)
	assert.Equal(t, 80, repo.Stars)
	assert.Equal(t, 9, repo.Forks)
	assert.Equal(t, "Python", repo.Language)
	assert.Equal(t, "2011-01-26", repo.CreatedAt)
	assert.Equal(t, "2023-06-15", repo.UpdatedAt)
	assert.Equal(t, "MIT License", repo.License)
	assert.Equal(t, []string{"demo", "tutorial"}, repo.Topics)
}

func TestRepositoryDefaultsForMissingFields(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/hello-world", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name": "hello-world", "owner": {"login": "octocat"}}`)
	})
	mux.HandleFunc("/repos/octocat/hello-world/topics", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	})

	client := newTestClient(t, mux)
	repo, err := client.Repository(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "No description provided", repo.Description)
	assert.Equal(t, "Not specified", repo.Language)
	assert.Equal(t, "Not specified", repo.License)
	assert.Empty(t, repo.Topics)
}

func TestRepositoryNotFound(t *testing.T) {
	client := newTestClient(t, http.NotFoundHandler())

	_, err := client.Repository(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRateLimitError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := client.Repository(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
}

func TestCommitsPagination(t *testing.T) {
	commit := func(sha string) map[string]any {
		return map[string]any{
			"sha":      sha,
			"html_url": "https://github.com/octocat/hello-world/commit/" + sha,
			"commit": map[string]any{
				"message": "msg " + sha,
				"author": map[string]any{
					"name":  "Octo Cat",
					"email": "octo@example.com",
					"date":  "2023-06-01T12:00:00Z",
				},
			},
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/hello-world/commits", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "1":
			json.NewEncoder(w).Encode([]any{commit("aaa"), commit("bbb")})
		default:
			json.NewEncoder(w).Encode([]any{})
		}
	})

	client := newTestClient(t, mux)
	commits, err := client.Commits(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.Equal(t, "aaa", commits[0].SHA)
	assert.Equal(t, "Octo Cat", commits[0].Author)
	assert.Equal(t, "2023-06-01", commits[0].Date)
	assert.Equal(t, "msg bbb", commits[1].Message)
}

func TestCommitsRespectsLimit(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/hello-world/commits", func(w http.ResponseWriter, r *http.Request) {
		var page []any
		for i := 0; i < 3; i++ {
			page = append(page, map[string]any{"sha": fmt.Sprintf("sha%d", i)})
		}
		json.NewEncoder(w).Encode(page)
	})

	client := newTestClient(t, mux)
	commits, err := client.Commits(context.Background(), 3)

	require.NoError(t, err)
	assert.Len(t, commits, 3)
}

func TestCommitsMultiPageNoDuplicates(t *testing.T) {
	// The server windows a 150-commit history by per_page and page the
	// way the real API does, so overlapping page windows would surface
	// as duplicate SHAs.
	const total = 150
	history := make([]map[string]any, total)
	for i := range history {
		history[i] = map[string]any{"sha": fmt.Sprintf("sha%03d", i)}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/hello-world/commits", func(w http.ResponseWriter, r *http.Request) {
		perPage, err := strconv.Atoi(r.URL.Query().Get("per_page"))
		require.NoError(t, err)
		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		require.NoError(t, err)

		start := (page - 1) * perPage
		end := start + perPage
		if start > total {
			start = total
		}
		if end > total {
			end = total
		}
		json.NewEncoder(w).Encode(history[start:end])
	})

	client := newTestClient(t, mux)
	commits, err := client.Commits(context.Background(), total)

	require.NoError(t, err)
	require.Len(t, commits, total)

	seen := make(map[string]bool)
	for _, c := range commits {
		assert.False(t, seen[c.SHA], "duplicate commit %s", c.SHA)
		seen[c.SHA] = true
	}
	assert.Equal(t, "sha000", commits[0].SHA)
	assert.Equal(t, "sha149", commits[total-1].SHA)
}

func TestEnrichCommit(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/hello-world/commits/abc", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"files": [{"filename": "a.py"}, {"filename": "b.py"}]}`)
	})

	client := newTestClient(t, mux)
	commit := domain.Commit{SHA: "abc"}

	require.NoError(t, client.EnrichCommit(context.Background(), &commit))
	assert.Equal(t, 2, commit.FilesChanged)
}

func TestFilesWalksTree(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/hello-world/contents", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"name": "main.py", "path": "main.py", "sha": "s1", "size": 120, "type": "file"},
			{"name": "README.md", "path": "README.md", "sha": "s2", "size": 50, "type": "file"},
			{"name": "big.py", "path": "big.py", "sha": "s3", "size": 600000, "type": "file"},
			{"name": "src", "path": "src", "type": "dir"}
		]`)
	})
	mux.HandleFunc("/repos/octocat/hello-world/contents/src", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"name": "app.js", "path": "src/app.js", "sha": "s4", "size": 80, "type": "file"}
		]`)
	})

	client := newTestClient(t, mux)
	files, err := client.Files(context.Background(), 10, []string{"py", "js"})

	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "main.py", files[0].Path)
	assert.Equal(t, "py", files[0].Extension)
	assert.Equal(t, "src/app.js", files[1].Path)
	assert.Equal(t, "js", files[1].Extension)
}

func TestFilesStopsAtMax(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/hello-world/contents", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"name": "a.py", "path": "a.py", "size": 10, "type": "file"},
			{"name": "b.py", "path": "b.py", "size": 10, "type": "file"},
			{"name": "c.py", "path": "c.py", "size": 10, "type": "file"}
		]`)
	})

	client := newTestClient(t, mux)
	files, err := client.Files(context.Background(), 2, []string{"py"})

	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestFileContent(t *testing.T) {
	source := "print('hello')\n"
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/hello-world/contents/main.py", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"encoding": "base64",
			"content":  base64.StdEncoding.EncodeToString([]byte(source)),
		})
	})

	client := newTestClient(t, mux)
	content, err := client.FileContent(context.Background(), "main.py")

	require.NoError(t, err)
	assert.Equal(t, source, content)
}

func TestFileContentBinaryPlaceholder(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/hello-world/contents/logo.png", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"encoding": "base64",
			"content":  base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe, 0x00, 0x01}),
		})
	})

	client := newTestClient(t, mux)
	content, err := client.FileContent(context.Background(), "logo.png")

	require.NoError(t, err)
	assert.Equal(t, "[Binary file: logo.png]", content)
}

func TestFileContentUnsupportedEncoding(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/hello-world/contents/weird", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"encoding": "none", "content": ""}`)
	})

	client := newTestClient(t, mux)
	content, err := client.FileContent(context.Background(), "weird")

	require.NoError(t, err)
	assert.Equal(t, "[Unsupported encoding: none]", content)
}
