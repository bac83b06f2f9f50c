package gateway

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"medibook/pkg/config"
	apperrors "medibook/pkg/errors"
	pkghttp "medibook/pkg/http"
)

// NewServiceProxy builds a reverse proxy to target that rewrites the
// public route prefix to the backend's own prefix. All request headers,
// Authorization included, pass through unchanged.
func NewServiceProxy(target, fromPrefix, toPrefix string, cfg *config.Config) (http.Handler, error) {
	targetURL, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy target %q: %w", target, err)
	}

	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(targetURL)
			pr.Out.URL.Path = rewritePath(pr.In.URL.Path, fromPrefix, toPrefix)
			pr.Out.URL.RawPath = ""
			pr.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			cfg.Log.Error("Proxy request failed",
				"target", target,
				"path", r.URL.Path,
				"error", err,
			)
			_ = pkghttp.WriteError(w, apperrors.Unavailable(targetURL.Host))
		},
	}
	return proxy, nil
}

func rewritePath(path, fromPrefix, toPrefix string) string {
	rest := strings.TrimPrefix(path, fromPrefix)
	if rest == "" {
		return toPrefix
	}
	if !strings.HasPrefix(rest, "/") {
		rest = "/" + rest
	}
	return toPrefix + rest
}
