package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

const baiduAPIBase = "https://pan.baidu.com/rest/2.0/xpan"

const baiduTimeout = 30 * time.Second

// Baidu talks to Baidu Netdisk through the xpan REST API. Auth is a
// pre-obtained OAuth access token passed as a query parameter on every call.
type Baidu struct {
	http  *resty.Client
	base  string
	token string
	root  string
}

func NewBaidu(accessToken, root string) *Baidu {
	return &Baidu{
		http:  resty.New().SetTimeout(baiduTimeout),
		base:  baiduAPIBase,
		token: accessToken,
		root:  cleanRoot(root),
	}
}

func (b *Baidu) Name() string { return "baidu" }

func (b *Baidu) RootPath() string { return b.root }

func (b *Baidu) List(ctx context.Context, dir string) ([]FileEntry, error) {
	var res struct {
		Errno  int    `json:"errno"`
		Errmsg string `json:"errmsg"`
		List   []struct {
			ServerFilename string `json:"server_filename"`
			IsDir          int    `json:"isdir"`
			Size           int64  `json:"size"`
		} `json:"list"`
	}

	resp, err := b.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"method":       "list",
			"dir":          dir,
			"access_token": b.token,
			"order":        "name",
			"limit":        "1000",
		}).
		SetResult(&res).
		Get(b.base + "/file")
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	if err := baiduError(resp.StatusCode(), res.Errno, res.Errmsg); err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	out := make([]FileEntry, 0, len(res.List))
	for _, f := range res.List {
		out = append(out, FileEntry{Name: f.ServerFilename, IsDir: f.IsDir == 1, Size: f.Size})
	}
	return out, nil
}

// Rename is a single-file move to the same directory. The filemanager
// endpoint takes JSON-encoded arrays inside form fields, one old path in
// filelist paired with one entry in newname.
func (b *Baidu) Rename(ctx context.Context, dir, oldName, newName string) error {
	oldPath := path.Join(dir, oldName)
	filelist, _ := json.Marshal([]string{oldPath})
	newnames, _ := json.Marshal([]string{newName})

	var res struct {
		Errno  int    `json:"errno"`
		Errmsg string `json:"errmsg"`
	}

	resp, err := b.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"method":       "move",
			"access_token": b.token,
			"async":        "0",
		}).
		SetFormData(map[string]string{
			"filelist": string(filelist),
			"to":       dir,
			"newname":  string(newnames),
		}).
		SetResult(&res).
		Post(b.base + "/filemanager")
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	if err := baiduError(resp.StatusCode(), res.Errno, res.Errmsg); err != nil {
		return fmt.Errorf("rename %s: %w", oldName, err)
	}
	return nil
}

func (b *Baidu) TestConnection(ctx context.Context) error {
	_, err := b.List(ctx, b.root)
	return err
}

// baiduError classifies a response. Baidu reports application errors as
// errno values inside an HTTP 200 body, so the HTTP status only matters for
// proxy and throttling failures.
func baiduError(status, errno int, errmsg string) error {
	if status < 400 && errno == 0 {
		return nil
	}
	if errmsg == "" {
		errmsg = "errno " + strconv.Itoa(errno)
	}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden || errno == -6 || errno == 111:
		return fmt.Errorf("%w: %s", ErrAuth, errmsg)
	case status == http.StatusTooManyRequests || errno == 31034:
		return fmt.Errorf("%w: %s", ErrRateLimited, errmsg)
	case status >= 500:
		return fmt.Errorf("%w: baidu returned HTTP %d", ErrConnection, status)
	case errno == -9 || errno == 31066:
		return fmt.Errorf("%w: %s", ErrNotFound, errmsg)
	default:
		return fmt.Errorf("baidu error %d: %s", errno, errmsg)
	}
}
