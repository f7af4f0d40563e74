package repository

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"

	apperrors "github.com/johnquangdev/meetmate/errors"
	"github.com/johnquangdev/meetmate/internal/infrastructure/gateway"
	"github.com/johnquangdev/meetmate/pkg/validator"
)

// API is the part of the gateway client the repositories rely on
type API interface {
	Get(ctx context.Context, path string, query url.Values, out interface{}, opts ...gateway.RequestOption) error
	Post(ctx context.Context, path string, body, out interface{}, opts ...gateway.RequestOption) error
	Put(ctx context.Context, path string, body, out interface{}, opts ...gateway.RequestOption) error
	Patch(ctx context.Context, path string, body, out interface{}, opts ...gateway.RequestOption) error
	Delete(ctx context.Context, path string, out interface{}, opts ...gateway.RequestOption) error
	Upload(ctx context.Context, path string, fields map[string]string, file gateway.File, out interface{}, opts ...gateway.RequestOption) error
}

var _ API = (*gateway.Client)(nil)

// validate rejects a request payload before it reaches the network
func validate(req interface{}) error {
	if err := validator.Default().Validate(req); err != nil {
		return apperrors.ErrValidation(err)
	}
	return nil
}

func requireID(resource, id string) error {
	if id == "" {
		return apperrors.ErrMissingID(resource)
	}
	return nil
}

// path formats an endpoint, escaping every id segment
func path(format string, ids ...string) string {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = url.PathEscape(id)
	}
	return fmt.Sprintf(format, args...)
}

func paging(q url.Values, skip, limit int) {
	if skip > 0 {
		q.Set("skip", strconv.Itoa(skip))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
}

func fileFor(name string, content io.Reader) gateway.File {
	return gateway.File{Field: "file", Name: name, Content: content}
}
