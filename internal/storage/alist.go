package storage

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const alistTimeout = 30 * time.Second

// Alist talks to an Alist or OpenList server. The raw token goes in the
// Authorization header; Alist does not use a Bearer prefix.
type Alist struct {
	http  *resty.Client
	base  string
	token string
	root  string
}

func NewAlist(baseURL, token, root string) *Alist {
	return &Alist{
		http:  resty.New().SetTimeout(alistTimeout),
		base:  strings.TrimRight(baseURL, "/"),
		token: token,
		root:  cleanRoot(root),
	}
}

func (a *Alist) Name() string { return "alist" }

func (a *Alist) RootPath() string { return a.root }

func (a *Alist) List(ctx context.Context, dir string) ([]FileEntry, error) {
	var res struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Data    struct {
			Content []struct {
				Name  string `json:"name"`
				IsDir bool   `json:"is_dir"`
				Size  int64  `json:"size"`
			} `json:"content"`
		} `json:"data"`
	}

	resp, err := a.http.R().
		SetContext(ctx).
		SetHeader("Authorization", a.token).
		SetBody(map[string]interface{}{
			"path":     dir,
			"password": "",
			"page":     1,
			"per_page": 0,
			"refresh":  false,
		}).
		SetResult(&res).
		Post(a.base + "/api/fs/list")
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	if err := alistError(resp.StatusCode(), res.Code, res.Message); err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	out := make([]FileEntry, 0, len(res.Data.Content))
	for _, f := range res.Data.Content {
		out = append(out, FileEntry{Name: f.Name, IsDir: f.IsDir, Size: f.Size})
	}
	return out, nil
}

func (a *Alist) Rename(ctx context.Context, dir, oldName, newName string) error {
	var res struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}

	resp, err := a.http.R().
		SetContext(ctx).
		SetHeader("Authorization", a.token).
		SetBody(map[string]string{
			"path": path.Join(dir, oldName),
			"name": newName,
		}).
		SetResult(&res).
		Post(a.base + "/api/fs/rename")
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	if err := alistError(resp.StatusCode(), res.Code, res.Message); err != nil {
		return fmt.Errorf("rename %s: %w", oldName, err)
	}
	return nil
}

// TestConnection lists the configured root, which exercises both the URL
// and the token in one call.
func (a *Alist) TestConnection(ctx context.Context) error {
	_, err := a.List(ctx, a.root)
	return err
}

// alistError classifies a response. Alist reports most failures as HTTP 200
// with the real code in the body, but a reverse proxy in front of it can
// answer with bare HTTP statuses, so both layers are checked.
func alistError(status, code int, msg string) error {
	if status < 400 && code == 200 {
		return nil
	}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden || code == 401 || code == 403:
		return fmt.Errorf("%w: %s", ErrAuth, msg)
	case status == http.StatusTooManyRequests || code == 429:
		return fmt.Errorf("%w: %s", ErrRateLimited, msg)
	// Alist wraps missing files in an app-level 500, so the message check
	// has to run before the transport check.
	case strings.Contains(strings.ToLower(msg), "not found"):
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case status >= 500:
		return fmt.Errorf("%w: alist returned HTTP %d: %s", ErrConnection, status, msg)
	default:
		return fmt.Errorf("alist error %d: %s", pick(code, status), msg)
	}
}

func pick(code, status int) int {
	if code != 0 {
		return code
	}
	return status
}

// Login exchanges a username and password for an API token via
// /api/auth/login. Used by the login command so users do not have to fish
// the token out of the Alist admin page.
func Login(ctx context.Context, baseURL, username, password string) (string, error) {
	var res struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Data    struct {
			Token string `json:"token"`
		} `json:"data"`
	}

	client := resty.New().SetTimeout(alistTimeout)
	resp, err := client.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"username": username,
			"password": password,
		}).
		SetResult(&res).
		Post(strings.TrimRight(baseURL, "/") + "/api/auth/login")
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %v", ErrConnection, err)
	}
	if err := alistError(resp.StatusCode(), res.Code, res.Message); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if res.Data.Token == "" {
		return "", fmt.Errorf("login: server returned no token")
	}
	return res.Data.Token, nil
}
