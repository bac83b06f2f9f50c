package gateway

import (
	"context"
	"net/http"

	"medibook/pkg/client"
	"medibook/pkg/config"
)

// FailoverRouter fronts the authentication path. Every request probes
// the primary's health endpoint; a live primary gets the request, a
// dead one diverts it to the backup handler. Probing per request keeps
// the router stateless, so a recovered primary is used immediately.
type FailoverRouter struct {
	primary      *client.HttpClient
	primaryProxy http.Handler
	backupProxy  http.Handler
	cfg          *config.Config
}

func NewFailoverRouter(primary *client.HttpClient, primaryProxy, backupProxy http.Handler, cfg *config.Config) *FailoverRouter {
	return &FailoverRouter{
		primary:      primary,
		primaryProxy: primaryProxy,
		backupProxy:  backupProxy,
		cfg:          cfg,
	}
}

func (f *FailoverRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	probeCtx, cancel := context.WithTimeout(r.Context(), f.cfg.ProbeTimeout)
	defer cancel()

	if f.primary.ProbeHealth(probeCtx) {
		f.primaryProxy.ServeHTTP(w, r)
		return
	}

	f.cfg.Log.Warn("Primary auth service down, using backup",
		"primary", f.primary.BaseURL,
		"path", r.URL.Path,
	)
	f.backupProxy.ServeHTTP(w, r)
}
