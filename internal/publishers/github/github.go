package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"proxytray/internal/factory"
	"proxytray/internal/logger"
	"proxytray/internal/publishers"
	"proxytray/internal/subscription"
)

// Publisher commits the subscription payload to a file in a GitHub repository
// through the contents API.
type Publisher struct{}

type fileRequest struct {
	Message string `json:"message"`
	Content string `json:"content"` // base64 of the payload
	Sha     string `json:"sha,omitempty"`
	Branch  string `json:"branch,omitempty"`
}

type fileResponse struct {
	Sha string `json:"sha"`
}

type target struct {
	client  *http.Client
	apiURL  string
	token   string
	branch  string
	retries int
}

func (p *Publisher) Publish(cfgs []factory.Configuration, params map[string]interface{}) error {
	payload, err := publishers.GenerateSubscriptionPayload(cfgs, params)
	if err != nil {
		return err
	}

	token, _ := params["token"].(string)
	owner, _ := params["owner"].(string)
	repo, _ := params["repo"].(string)
	path, _ := params["path"].(string)
	branch, _ := params["branch"].(string)
	msg, _ := params["message"].(string)
	proxyURL, _ := params["_proxy_url"].(string)

	if token == "" || owner == "" || repo == "" || path == "" {
		return fmt.Errorf("github publisher requires token, owner, repo, and path")
	}
	if msg == "" {
		msg = "Update proxy subscription [proxytray]"
	}

	apiBase, _ := params["api_url"].(string)
	if apiBase == "" {
		apiBase = "https://api.github.com"
	}

	timeout := 30 * time.Second
	if t, ok := params["_timeout"].(time.Duration); ok && t > 0 {
		timeout = t
	}
	retries, _ := params["retries"].(int)

	client, err := subscription.NewClient(timeout, proxyURL)
	if err != nil {
		return err
	}

	t := &target{
		client:  client,
		apiURL:  fmt.Sprintf("%s/repos/%s/%s/contents/%s", strings.TrimRight(apiBase, "/"), owner, repo, strings.TrimPrefix(path, "/")),
		token:   token,
		branch:  branch,
		retries: retries,
	}

	ctx := context.Background()
	sha, err := t.currentSha(ctx)
	if err != nil {
		return err
	}

	body, _ := json.Marshal(fileRequest{
		Message: msg,
		Content: base64.StdEncoding.EncodeToString([]byte(payload)),
		Sha:     sha,
		Branch:  branch,
	})
	resp, err := t.do(ctx, http.MethodPut, body, func(code int) bool { return code >= 200 && code < 300 })
	if err != nil {
		return fmt.Errorf("github upload failed: %w", err)
	}
	resp.Body.Close()
	return nil
}

// currentSha returns the blob sha of the existing file, or "" when it does not exist yet.
func (t *target) currentSha(ctx context.Context) (string, error) {
	resp, err := t.do(ctx, http.MethodGet, nil, func(code int) bool {
		return code == http.StatusOK || code == http.StatusNotFound
	})
	if err != nil {
		return "", fmt.Errorf("github fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		logger.Log.Debugf("GitHub: file not found, creating new...")
		return "", nil
	}

	var existing fileResponse
	if err := json.NewDecoder(resp.Body).Decode(&existing); err != nil {
		return "", fmt.Errorf("failed to parse github response: %w", err)
	}
	logger.Log.Debugf("GitHub: file exists (SHA: %s), updating...", existing.Sha)
	return existing.Sha, nil
}

// do sends the request up to retries+1 times until accept approves the status code.
func (t *target) do(ctx context.Context, method string, body []byte, accept func(int) bool) (*http.Response, error) {
	var lastErr error
	for i := 0; i <= t.retries; i++ {
		if i > 0 {
			time.Sleep(time.Second)
		}

		req, err := http.NewRequestWithContext(ctx, method, t.apiURL, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+t.token)
		req.Header.Set("Accept", "application/vnd.github.v3+json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if method == http.MethodGet && t.branch != "" {
			q := req.URL.Query()
			q.Set("ref", t.branch)
			req.URL.RawQuery = q.Encode()
		}

		logger.Log.Debugf("GitHub: %s %s (attempt %d/%d)", method, t.apiURL, i+1, t.retries+1)
		resp, err := t.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		if accept(resp.StatusCode) {
			return resp, nil
		}
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		lastErr = fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil, lastErr
}

func init() {
	publishers.Register("github", func() publishers.Publisher { return &Publisher{} })
}
