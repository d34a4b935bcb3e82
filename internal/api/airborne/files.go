package airborne

import (
	"context"
	"io"
	"net/http"

	cerrors "github.com/juspay/airborne-cli/util/common/errors"
)

// DefaultTag is the placeholder the tooling uses for untagged files. The
// server rejects it as an explicit tag.
const DefaultTag = "__default__"

func validateTag(tag string) error {
	if tag == DefaultTag {
		return cerrors.NewValidationError("tag", "'"+DefaultTag+"' is reserved")
	}
	return nil
}

// CreateFileInput registers a file hosted at an external URL.
type CreateFileInput struct {
	Tenant   `json:"-"`
	FilePath string         `json:"file_path"`
	URL      string         `json:"url"`
	Tag      string         `json:"tag,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// CreateFile creates a file record pointing at in.URL.
func (c *Client) CreateFile(ctx context.Context, in CreateFileInput) (*File, error) {
	if in.FilePath == "" {
		return nil, cerrors.NewValidationError("file_path", "is required")
	}
	if in.URL == "" {
		return nil, cerrors.NewValidationError("url", "is required")
	}
	if err := validateTag(in.Tag); err != nil {
		return nil, err
	}
	r := newRequest(http.MethodPost, "/api/file", scopeApplication, in.Tenant)
	r.body = in
	var out File
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListFilesInput pages and searches files.
type ListFilesInput struct {
	Tenant
	Page    int
	PerPage int
	Search  string
}

// ListFiles lists the application's files.
func (c *Client) ListFiles(ctx context.Context, in ListFilesInput) (*FileList, error) {
	r := newRequest(http.MethodGet, "/api/file/list", scopeApplication, in.Tenant)
	if in.Page > 0 {
		if err := r.setQuery("page", in.Page); err != nil {
			return nil, err
		}
	}
	if in.PerPage > 0 {
		if err := r.setQuery("per_page", in.PerPage); err != nil {
			return nil, err
		}
	}
	if in.Search != "" {
		if err := r.setQuery("search", in.Search); err != nil {
			return nil, err
		}
	}
	var out FileList
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadFileInput streams a file body to the server.
type UploadFileInput struct {
	Tenant
	FilePath string
	Tag      string
	// Checksum is the base64 encoded sha256 of the body, sent as x-checksum.
	Checksum string
	Body     io.Reader
	Size     int64
}

// UploadFile uploads a file body. The body is streamed once and not retried.
func (c *Client) UploadFile(ctx context.Context, in UploadFileInput) (*File, error) {
	if in.FilePath == "" {
		return nil, cerrors.NewValidationError("file_path", "is required")
	}
	if in.Checksum == "" {
		return nil, cerrors.NewValidationError("checksum", "is required")
	}
	if in.Body == nil {
		return nil, cerrors.NewValidationError("body", "is required")
	}
	if err := validateTag(in.Tag); err != nil {
		return nil, err
	}
	r := newRequest(http.MethodPost, "/api/file/upload", scopeApplication, in.Tenant)
	if err := r.setQuery("file_path", in.FilePath); err != nil {
		return nil, err
	}
	if in.Tag != "" {
		if err := r.setQuery("tag", in.Tag); err != nil {
			return nil, err
		}
	}
	r.header.Set(HeaderChecksum, in.Checksum)
	r.raw = in.Body
	r.rawSize = in.Size
	var out File
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
