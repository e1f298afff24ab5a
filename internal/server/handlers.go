package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rshade/tripexplorer/internal/catalog"
	"github.com/rshade/tripexplorer/internal/cli/pagination"
	"github.com/rshade/tripexplorer/internal/engine"
	"github.com/rshade/tripexplorer/pkg/version"
)

// errorResponse is the body of every non-2xx API response.
type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type healthResponse struct {
	Status   string     `json:"status"`
	Version  string     `json:"version"`
	Trips    int        `json:"trips"`
	LoadedAt *time.Time `json:"loaded_at,omitempty"`
}

type reloadResponse struct {
	Trips    int       `json:"trips"`
	LoadedAt time.Time `json:"loaded_at"`
	Warnings []string  `json:"warnings,omitempty"`
}

func (s *Server) abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, errorResponse{Error: msg, RequestID: GetRequestID(c)})
}

// snapshot returns the current catalog, loading it on first use.
func (s *Server) snapshot(c *gin.Context) (*catalog.Snapshot, bool) {
	if snap := s.store.Current(); snap != nil {
		return snap, true
	}
	snap, err := s.store.Load(c.Request.Context())
	if err != nil {
		s.logger.Error().Ctx(c.Request.Context()).Err(err).Str("component", "server").Msg("catalog load failed")
		s.abort(c, http.StatusBadGateway, loadErrorMessage(err))
		return nil, false
	}
	return snap, true
}

func (s *Server) handleHealth(c *gin.Context) {
	resp := healthResponse{Status: "ok", Version: version.GetVersion()}
	if snap := s.store.Current(); snap != nil {
		resp.Trips = snap.Catalog.Len()
		loadedAt := snap.LoadedAt
		resp.LoadedAt = &loadedAt
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleListTrips(c *gin.Context) {
	params, err := pagination.FromValues(c.Request.URL.Query(), *pagination.NewParams(s.pageSize))
	if err != nil {
		s.abort(c, http.StatusBadRequest, err.Error())
		return
	}
	q, err := params.ToQuery()
	if err != nil {
		s.abort(c, http.StatusBadRequest, err.Error())
		return
	}

	snap, ok := s.snapshot(c)
	if !ok {
		return
	}

	res := engine.Compute(snap.Catalog.Trips(), q)
	c.JSON(http.StatusOK, engine.NewResultsDocument(q, res))
}

func (s *Server) handleGetTrip(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}

	trip, err := snap.Catalog.Get(catalog.TripID(c.Param("id")))
	if errors.Is(err, catalog.ErrTripNotFound) {
		s.abort(c, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		s.abort(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (s *Server) handleDocument(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, snap.Catalog.Document())
}

func (s *Server) handleReload(c *gin.Context) {
	snap, err := s.store.Reload(c.Request.Context())
	if err != nil {
		s.logger.Error().Ctx(c.Request.Context()).Err(err).Str("component", "server").Msg("catalog reload failed")
		s.abort(c, http.StatusBadGateway, loadErrorMessage(err))
		return
	}
	s.logger.Info().Ctx(c.Request.Context()).
		Str("component", "server").
		Int("trips", snap.Catalog.Len()).
		Msg("catalog reloaded")
	c.JSON(http.StatusOK, reloadResponse{
		Trips:    snap.Catalog.Len(),
		LoadedAt: snap.LoadedAt,
		Warnings: snap.Catalog.Warnings(),
	})
}

// loadErrorMessage renders a load failure as "Failed to load trips: ...".
func loadErrorMessage(err error) string {
	var le *catalog.LoadError
	if errors.As(err, &le) {
		return "Failed to load trips: " + le.Err.Error()
	}
	return "Failed to load trips: " + err.Error()
}
