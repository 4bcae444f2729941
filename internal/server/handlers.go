package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wallfeed/pkg/buildinfo"
	"github.com/matzehuels/wallfeed/pkg/provider"
	"github.com/matzehuels/wallfeed/pkg/session"
	"github.com/matzehuels/wallfeed/pkg/wallpaper"
)

// WallpapersResponse is the body of /api/wallpapers and /api/history.
// CurrentAPI is null until a provider has been selected.
type WallpapersResponse struct {
	Success    bool               `json:"success"`
	Wallpapers []wallpaper.Record `json:"wallpapers"`
	CurrentAPI *wallpaper.Type    `json:"currentApi"`
}

// ProvidersResponse is the body of /api/providers.
type ProvidersResponse struct {
	Success      bool                  `json:"success"`
	Providers    []provider.Descriptor `json:"providers"`
	Session      session.Snapshot      `json:"session"`
	DefaultCount int                   `json:"defaultCount"`
	MaxCount     int                   `json:"maxCount"`
}

// HealthResponse is the body of /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
}

func (s *Server) handleWallpapers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	count := queryInt(q.Get("count"))

	res := s.runner.ResolveAndFetch(r.Context(), count, q.Get("type"))
	writeJSON(w, r, http.StatusOK, WallpapersResponse{
		Success:    true,
		Wallpapers: res.Wallpapers,
		CurrentAPI: currentAPI(res.Provider),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r.URL.Query().Get("limit"))
	writeJSON(w, r, http.StatusOK, WallpapersResponse{
		Success:    true,
		Wallpapers: s.runner.History(limit),
		CurrentAPI: currentAPI(s.runner.Current()),
	})
}

func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	def, maxCount := s.runner.Limits()
	writeJSON(w, r, http.StatusOK, ProvidersResponse{
		Success:      true,
		Providers:    s.runner.Registry().Descriptors(),
		Session:      s.runner.Snapshot(),
		DefaultCount: def,
		MaxCount:     maxCount,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: buildinfo.Version,
		Commit:  buildinfo.Commit,
	})
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte("Not Found"))
}

// queryInt parses v, returning 0 for anything that is not an integer so the
// runner applies its default.
func queryInt(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func currentAPI(t wallpaper.Type) *wallpaper.Type {
	if t == "" {
		return nil
	}
	return &t
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.FromContext(r.Context()).Warn("encode response", "err", err)
	}
}
