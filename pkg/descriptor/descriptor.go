// Package descriptor builds the request descriptors (URL plus headers) used to
// talk to the leave backend. Every function here degrades to a safe default
// when optional context such as a backend URL or a stored credential is missing.
package descriptor

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/noah-isme/sma-leave-gateway/pkg/credentials"
)

const (
	pendingPath  = "/admin/pending"
	requestsPath = "/admin/requests"
	apiSuffix    = "/leave"

	// ContentTypeJSON is attached to every descriptor.
	ContentTypeJSON = "application/json"

	// RoutePending and RouteRequests name the backend list endpoints.
	RoutePending  = "pending"
	RouteRequests = "requests"
)

// TokenSlots is the ordered list of credential slots scanned for a bearer token.
// The order mixes generic, role-specific and legacy names and must stay as is.
var TokenSlots = []string{
	"token",
	"authToken",
	"admin_token",
	"teacher_token",
	"token_admin",
	"CMS_token",
	"token_student",
}

// BackendSources carries the candidate backend base URLs in priority order.
type BackendSources struct {
	Env     string
	Runtime string
	Meta    string
}

// RequestDescriptor is an immutable (method, URL, headers) triple.
type RequestDescriptor struct {
	method  string
	url     string
	headers http.Header
	slot    string
	route   string
}

// Method returns the HTTP method.
func (d RequestDescriptor) Method() string { return d.method }

// URL returns the fully built request URL.
func (d RequestDescriptor) URL() string { return d.url }

// Headers returns a copy of the header set.
func (d RequestDescriptor) Headers() http.Header {
	if d.headers == nil {
		return http.Header{}
	}
	return d.headers.Clone()
}

// Authenticated reports whether the descriptor carries a bearer token.
func (d RequestDescriptor) Authenticated() bool {
	return d.headers.Get("Authorization") != ""
}

// TokenSlot names the credential slot the bearer token came from, if any.
func (d RequestDescriptor) TokenSlot() string { return d.slot }

// Route names the list endpoint the descriptor targets, RoutePending or
// RouteRequests. Empty for descriptors not built by BuildListDescriptor.
func (d RequestDescriptor) Route() string { return d.route }

// NewRequest turns the descriptor into an *http.Request bound to ctx.
func (d RequestDescriptor) NewRequest(ctx context.Context) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, d.method, d.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header = d.Headers()
	return req, nil
}

// BuildListURL returns the admin list endpoint for the given filters. Pending
// requests go to the legacy endpoint, which only understands role filtering.
// Trailing slashes on base are dropped so the path is never joined with "//".
func BuildListURL(base string, role RoleFilter, status StatusFilter) string {
	base = strings.TrimRight(base, "/")

	if status == StatusPending {
		target := base + pendingPath
		if role != RoleAll {
			target += "?role=" + url.QueryEscape(string(role))
		}
		return target
	}

	params := make([]string, 0, 2)
	if role != RoleAll {
		params = append(params, "role="+url.QueryEscape(string(role)))
	}
	if status != StatusAll {
		params = append(params, "status="+url.QueryEscape(string(status)))
	}

	target := base + requestsPath
	if len(params) > 0 {
		target += "?" + strings.Join(params, "&")
	}
	return target
}

// ResolveBackendBase picks the first configured source and strips one trailing slash.
func ResolveBackendBase(sources BackendSources) string {
	for _, candidate := range []string{sources.Env, sources.Runtime, sources.Meta} {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			return strings.TrimSuffix(trimmed, "/")
		}
	}
	return ""
}

// ResolveAPIBase returns the leave API root for a backend base.
func ResolveAPIBase(backendBase string) string {
	backendBase = strings.TrimRight(backendBase, "/")
	if backendBase == "" {
		return apiSuffix
	}
	return backendBase + apiSuffix
}

// ResolveAuthToken returns the first non-empty token found in TokenSlots order.
func ResolveAuthToken(ctx context.Context, store credentials.Store) (string, bool) {
	token, _, ok := resolveToken(ctx, store)
	return token, ok
}

// ResolveAuthTokenSlot is ResolveAuthToken that also reports which slot matched.
func ResolveAuthTokenSlot(ctx context.Context, store credentials.Store) (token, slot string, ok bool) {
	return resolveToken(ctx, store)
}

func resolveToken(ctx context.Context, store credentials.Store) (string, string, bool) {
	if store == nil {
		return "", "", false
	}
	for _, slot := range TokenSlots {
		value, err := store.Get(ctx, slot)
		if err != nil {
			continue
		}
		if value != "" {
			return value, slot, true
		}
	}
	return "", "", false
}

// BuildAuthHeaders returns the JSON content type plus a bearer token when one is stored.
func BuildAuthHeaders(ctx context.Context, store credentials.Store) http.Header {
	token, _, ok := resolveToken(ctx, store)
	return authHeaders(token, ok)
}

func authHeaders(token string, ok bool) http.Header {
	headers := http.Header{}
	headers.Set("Content-Type", ContentTypeJSON)
	if ok {
		headers.Set("Authorization", "Bearer "+token)
	}
	return headers
}

// BuildListDescriptor combines BuildListURL and BuildAuthHeaders into a GET descriptor.
func BuildListDescriptor(ctx context.Context, base string, role RoleFilter, status StatusFilter, store credentials.Store) RequestDescriptor {
	token, slot, ok := resolveToken(ctx, store)
	route := RouteRequests
	if status == StatusPending {
		route = RoutePending
	}
	return RequestDescriptor{
		method:  http.MethodGet,
		url:     BuildListURL(base, role, status),
		headers: authHeaders(token, ok),
		slot:    slot,
		route:   route,
	}
}
