package storage

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAlistList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Path != "/api/fs/list" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		var req struct {
			Path    string `json:"path"`
			Page    int    `json:"page"`
			PerPage int    `json:"per_page"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if req.Path != "/media/tv" {
			t.Errorf("expected path /media/tv, got %s", req.Path)
		}
		if req.Page != 1 || req.PerPage != 0 {
			t.Errorf("expected page=1 per_page=0, got %d %d", req.Page, req.PerPage)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":200,"message":"success","data":{"content":[
			{"name":"EP01.mkv","is_dir":false,"size":1024},
			{"name":"Extras","is_dir":true,"size":0}
		]}}`))
	}))
	defer server.Close()

	a := NewAlist(server.URL, "test-token", "/media/tv")
	entries, err := a.List(context.Background(), "/media/tv")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "EP01.mkv" || entries[0].IsDir || entries[0].Size != 1024 {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Name != "Extras" || !entries[1].IsDir {
		t.Errorf("unexpected second entry: %+v", entries[1])
	}
}

func TestAlistListAuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":401,"message":"token is invalidated","data":null}`))
	}))
	defer server.Close()

	a := NewAlist(server.URL, "stale", "/")
	_, err := a.List(context.Background(), "/")
	if !errors.Is(err, ErrAuth) {
		t.Errorf("expected ErrAuth, got %v", err)
	}
}

func TestAlistListRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	a := NewAlist(server.URL, "tok", "/")
	_, err := a.List(context.Background(), "/")
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("expected ErrRateLimited, got %v", err)
	}
}

func TestAlistConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	a := NewAlist(server.URL, "tok", "/")
	_, err := a.List(context.Background(), "/")
	if !errors.Is(err, ErrConnection) {
		t.Errorf("expected ErrConnection, got %v", err)
	}
}

func TestAlistRename(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/fs/rename" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		var req struct {
			Path string `json:"path"`
			Name string `json:"name"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if req.Path != "/media/tv/old.mkv" {
			t.Errorf("expected path /media/tv/old.mkv, got %s", req.Path)
		}
		if req.Name != "S01E01.mkv" {
			t.Errorf("expected name S01E01.mkv, got %s", req.Name)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":200,"message":"success","data":null}`))
	}))
	defer server.Close()

	a := NewAlist(server.URL, "tok", "/media/tv")
	if err := a.Rename(context.Background(), "/media/tv", "old.mkv", "S01E01.mkv"); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
}

func TestAlistRenameNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":500,"message":"failed get src object: object not found","data":null}`))
	}))
	defer server.Close()

	a := NewAlist(server.URL, "tok", "/")
	err := a.Rename(context.Background(), "/", "gone.mkv", "S01E01.mkv")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAlistTestConnection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Path string `json:"path"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if req.Path != "/media/tv" {
			t.Errorf("expected root path /media/tv, got %s", req.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":200,"message":"success","data":{"content":[]}}`))
	}))
	defer server.Close()

	a := NewAlist(server.URL, "tok", "/media/tv")
	if err := a.TestConnection(context.Background()); err != nil {
		t.Errorf("TestConnection failed: %v", err)
	}
}

func TestAlistLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if req.Username != "admin" || req.Password != "hunter2" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"code":400,"message":"username or password is incorrect","data":null}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":200,"message":"success","data":{"token":"alist-abcdef"}}`))
	}))
	defer server.Close()

	token, err := Login(context.Background(), server.URL, "admin", "hunter2")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token != "alist-abcdef" {
		t.Errorf("expected token alist-abcdef, got %s", token)
	}

	if _, err := Login(context.Background(), server.URL, "admin", "wrong"); err == nil {
		t.Error("expected error for bad credentials")
	}
}
