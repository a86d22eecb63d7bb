// Package site serves the landing page and the generated leaderboard files.
package site

import (
	"context"
	"errors"
	"net/http"
)

// Error constants
var (
	ErrServe = errors.New("site serve failed")
)

// DataPrefix is the URL prefix of the generated JSON files.
const DataPrefix = "/data/"

// Register attaches the landing page to mux and, when dataDir is set, the
// files written by the last build under DataPrefix.
func Register(_ context.Context, mux *http.ServeMux, dataDir string) {
	if mux == nil {
		panic("mux is nil")
	}

	root := NewRootHandler()
	mux.HandleFunc("GET /{$}", root.HandleRoot)

	if dataDir != "" {
		data := http.StripPrefix(DataPrefix, http.FileServer(http.Dir(dataDir)))
		mux.Handle("GET "+DataPrefix, data)
	}
}

// RootHandler handles root path requests
type RootHandler struct {
	files http.Handler
}

// NewRootHandler creates a new root handler
func NewRootHandler() *RootHandler {
	return &RootHandler{files: http.FileServer(FS())}
}

// HandleRoot handles GET / requests and serves the embedded landing page
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	h.files.ServeHTTP(w, r)
}
