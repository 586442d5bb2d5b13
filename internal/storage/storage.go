// Package storage abstracts the filesystems a rename run can target: a local
// directory tree, an Alist/OpenList server, or a Baidu Netdisk account. All
// backends speak slash-separated paths; the local backend converts at the OS
// boundary.
//
// Errors carry their retry class. Callers decide policy with errors.Is
// against the sentinels below rather than inspecting provider codes.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zygboom-max/tv-rename-tool/internal/config"
)

// Error classes returned by backend operations
var (
	// ErrAuth is returned when credentials are missing, expired, or rejected.
	// Not retryable; an in-flight run stops on it.
	ErrAuth = errors.New("authentication rejected")

	// ErrConnection is returned for transport failures: unreachable host,
	// timeout, or a 5xx from the provider. Retryable.
	ErrConnection = errors.New("connection failed")

	// ErrRateLimited is returned when the provider throttles us. Retryable.
	ErrRateLimited = errors.New("rate limited")

	// ErrNotFound is returned when the target path no longer exists.
	ErrNotFound = errors.New("file not found")
)

// IsTransient reports whether err is worth retrying with backoff.
func IsTransient(err error) bool {
	return errors.Is(err, ErrConnection) || errors.Is(err, ErrRateLimited)
}

// FileEntry is one directory listing row.
type FileEntry struct {
	Name  string
	IsDir bool
	Size  int64
}

// Backend is the capability surface a rename run needs from a storage
// provider. Implementations must not retry internally; retry policy lives
// with the caller.
type Backend interface {
	// Name returns a short provider label for logs and prompts.
	Name() string

	// List returns the immediate children of dir. Order is provider-defined.
	List(ctx context.Context, dir string) ([]FileEntry, error)

	// Rename gives the file dir/oldName the new name newName, staying in
	// the same directory. Returns ErrNotFound if the file vanished.
	Rename(ctx context.Context, dir, oldName, newName string) error

	// TestConnection verifies the backend is reachable and credentials
	// work, without changing anything.
	TestConnection(ctx context.Context) error

	// RootPath returns the configured starting directory.
	RootPath() string
}

type Kind int

const (
	KindLocal Kind = iota
	KindAlist
	KindBaidu
)

func (k Kind) String() string {
	switch k {
	case KindLocal:
		return "local"
	case KindAlist:
		return "alist"
	case KindBaidu:
		return "baidu"
	default:
		return "unknown"
	}
}

// ParseKind maps a storage_type config value to a Kind. Unknown values are
// a configuration error, not a silent default.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "local":
		return KindLocal, nil
	case "alist", "openlist":
		return KindAlist, nil
	case "baidu":
		return KindBaidu, nil
	default:
		return 0, fmt.Errorf("unknown storage type %q (want local, alist, or baidu)", s)
	}
}

// New builds the backend selected by cfg.StorageType, validating that the
// section it needs is filled in.
func New(cfg *config.Config) (Backend, error) {
	kind, err := ParseKind(cfg.StorageType)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindLocal:
		if cfg.Local.RootPath == "" {
			return nil, fmt.Errorf("local storage selected but local.root_path is not set")
		}
		return NewLocal(cfg.Local.RootPath), nil

	case KindAlist:
		if cfg.Alist.BaseURL == "" {
			return nil, fmt.Errorf("alist storage selected but alist.base_url is not set")
		}
		if cfg.Alist.Token == "" {
			return nil, fmt.Errorf("alist storage selected but alist.token is not set, run 'tvrename login' first")
		}
		return NewAlist(cfg.Alist.BaseURL, cfg.Alist.Token, cfg.Alist.RootPath), nil

	case KindBaidu:
		if cfg.Baidu.AccessToken == "" {
			return nil, fmt.Errorf("baidu storage selected but baidu.access_token is not set")
		}
		return NewBaidu(cfg.Baidu.AccessToken, cfg.Baidu.RootPath), nil

	default:
		return nil, fmt.Errorf("unhandled storage kind %v", kind)
	}
}

// cleanRoot normalizes a configured remote root to an absolute slash path.
func cleanRoot(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	p = strings.ReplaceAll(p, `\`, "/")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	return p
}
