package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/zygboom-max/tv-rename-tool/internal/config"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input   string
		want    Kind
		wantErr bool
	}{
		{"local", KindLocal, false},
		{"alist", KindAlist, false},
		{"ALIST", KindAlist, false},
		{"openlist", KindAlist, false},
		{"baidu", KindBaidu, false},
		{" baidu ", KindBaidu, false},
		{"dropbox", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseKind(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{
			name:    "local without root",
			mutate:  func(c *config.Config) { c.StorageType = "local" },
			wantErr: true,
		},
		{
			name: "local with root",
			mutate: func(c *config.Config) {
				c.StorageType = "local"
				c.Local.RootPath = "/media/tv"
			},
			wantErr: false,
		},
		{
			name: "alist without token",
			mutate: func(c *config.Config) {
				c.StorageType = "alist"
				c.Alist.Token = ""
			},
			wantErr: true,
		},
		{
			name: "alist complete",
			mutate: func(c *config.Config) {
				c.StorageType = "alist"
				c.Alist.Token = "tok"
			},
			wantErr: false,
		},
		{
			name:    "baidu without token",
			mutate:  func(c *config.Config) { c.StorageType = "baidu" },
			wantErr: true,
		},
		{
			name:    "unknown backend",
			mutate:  func(c *config.Config) { c.StorageType = "gdrive" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.mutate(cfg)
			_, err := New(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsTransient(t *testing.T) {
	if !IsTransient(ErrConnection) {
		t.Error("ErrConnection should be transient")
	}
	if !IsTransient(ErrRateLimited) {
		t.Error("ErrRateLimited should be transient")
	}
	if !IsTransient(fmt.Errorf("list /tv: %w", ErrConnection)) {
		t.Error("wrapped ErrConnection should be transient")
	}
	if IsTransient(ErrAuth) {
		t.Error("ErrAuth must not be transient")
	}
	if IsTransient(ErrNotFound) {
		t.Error("ErrNotFound must not be transient")
	}
	if IsTransient(errors.New("boom")) {
		t.Error("plain errors must not be transient")
	}
}

func TestCleanRoot(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "/"},
		{"/", "/"},
		{"/media/tv", "/media/tv"},
		{"media/tv", "/media/tv"},
		{"/media/tv/", "/media/tv"},
		{`\media\tv`, "/media/tv"},
		{"  /media/tv  ", "/media/tv"},
	}

	for _, tt := range tests {
		if got := cleanRoot(tt.input); got != tt.want {
			t.Errorf("cleanRoot(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
