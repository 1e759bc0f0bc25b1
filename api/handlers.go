package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xyaoaf/flight-route-map/airports"
	"github.com/xyaoaf/flight-route-map/config"
	"github.com/xyaoaf/flight-route-map/flightlog"
	"github.com/xyaoaf/flight-route-map/pkg/buildinfo"
	"github.com/xyaoaf/flight-route-map/pkg/geo"
	"github.com/xyaoaf/flight-route-map/pkg/logger"
	"github.com/xyaoaf/flight-route-map/render"
	"github.com/xyaoaf/flight-route-map/routes"
	"github.com/xyaoaf/flight-route-map/stats"
)

// maxUploadBytes caps an uploaded flight log.
const maxUploadBytes = 8 << 20

// StatsResponse is the body of the stats endpoints.
type StatsResponse struct {
	Stats       stats.Stats           `json:"stats"`
	Milestones  stats.Milestones      `json:"milestones"`
	Formatted   stats.Formatted       `json:"formatted"`
	TopAirports []stats.RankedAirport `json:"top_airports"`
	RouteLog    []stats.LogRow        `json:"route_log"`
}

// DistanceResponse is the body of GET /api/v1/distance.
type DistanceResponse struct {
	From      airports.Airport `json:"from"`
	To        airports.Airport `json:"to"`
	Km        float64          `json:"km"`
	Formatted string           `json:"formatted"`
}

func getVersion() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, buildinfo.Info())
	}
}

func listAirports(tables *airports.Holder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"airports": tables.Table().Search(c.Query("q"))})
	}
}

func getAirport(tables *airports.Holder) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := strings.ToUpper(strings.TrimSpace(c.Param("code")))
		a, ok := tables.Table().Lookup(code)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown airport %q", code)})
			return
		}
		c.JSON(http.StatusOK, a)
	}
}

func getDistance(tables *airports.Holder) gin.HandlerFunc {
	return func(c *gin.Context) {
		from := strings.ToUpper(strings.TrimSpace(c.Query("from")))
		to := strings.ToUpper(strings.TrimSpace(c.Query("to")))
		if from == "" || to == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "both from and to are required"})
			return
		}

		table := tables.Table()
		a, ok := table.Lookup(from)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown airport %q", from)})
			return
		}
		b, ok := table.Lookup(to)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown airport %q", to)})
			return
		}

		km := geo.DistanceBetween(a.Coordinates(), b.Coordinates())
		c.JSON(http.StatusOK, DistanceResponse{From: a, To: b, Km: km, Formatted: stats.FormatKm(km)})
	}
}

func postMap(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		opts, err := mapOptions(c, d)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		rs, _, ok := uploadedRoutes(c, d)
		if !ok {
			return
		}
		renderMap(c, rs, d.Tables.Table(), opts)
	}
}

func postStats(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		rs, _, ok := uploadedRoutes(c, d)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, buildStats(rs, d.Tables.Table(), d.Config.MapConfig.TopAirports))
	}
}

func getDefaultMap(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		opts, err := mapOptions(c, d)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		snap, err := d.Refresher.Snapshot(c.Request.Context())
		if err != nil {
			logger.WithContext(c.Request.Context()).Error(err, "Default flight log unavailable")
			c.JSON(http.StatusBadGateway, gin.H{"error": "default flight log unavailable"})
			return
		}
		// The snapshot is rendered with the configured defaults; anything else
		// is rebuilt from its routes.
		if c.Query("scale") == "" && c.Query("n") == "" {
			writeMap(c, snap.Map)
			return
		}
		renderMap(c, snap.Routes, d.Tables.Table(), opts)
	}
}

func getDefaultStats(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := d.Refresher.Snapshot(c.Request.Context())
		if err != nil {
			logger.WithContext(c.Request.Context()).Error(err, "Default flight log unavailable")
			c.JSON(http.StatusBadGateway, gin.H{"error": "default flight log unavailable"})
			return
		}
		c.JSON(http.StatusOK, buildStats(snap.Routes, d.Tables.Table(), d.Config.MapConfig.TopAirports))
	}
}

func buildStats(rs []routes.Route, table *airports.Table, top int) StatsResponse {
	s := stats.Compute(rs, table)
	return StatsResponse{
		Stats:       s,
		Milestones:  stats.MilestonesFor(s.TotalKm),
		Formatted:   stats.Format(s),
		TopAirports: s.TopAirports(table, top),
		RouteLog:    stats.RouteLog(rs, table),
	}
}

func renderMap(c *gin.Context, rs []routes.Route, table *airports.Table, opts render.Options) {
	m, err := render.Build(c.Request.Context(), rs, table, opts)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "map rendering was interrupted"})
		return
	}
	writeMap(c, m)
}

func writeMap(c *gin.Context, m *render.Map) {
	if strings.EqualFold(c.Query("format"), "geojson") {
		c.Header("Content-Type", "application/geo+json")
		c.JSON(http.StatusOK, m.FeatureCollection())
		return
	}
	c.JSON(http.StatusOK, m)
}

// MapDefaults returns the render options configured by cfg. The default
// flight log snapshot and every per-request map start from these.
func MapDefaults(cfg config.MapConfig, obs render.ArcObserver) render.Options {
	return render.Options{
		ArcPoints:  render.ExplicitArcPoints(cfg.ArcPoints),
		ScaleWidth: cfg.ScaleWidth,
		Workers:    cfg.Workers,
		Observer:   obs,
	}
}

// mapOptions reads the scale and n query parameters over the configured
// defaults. n=0 draws straight endpoint-to-endpoint segments.
func mapOptions(c *gin.Context, d *Deps) (render.Options, error) {
	opts := MapDefaults(d.Config.MapConfig, d.Metrics)
	if v := c.Query("scale"); v != "" {
		scale, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("scale must be a boolean, got %q", v)
		}
		opts.ScaleWidth = scale
	}
	if v := c.Query("n"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > config.MaxArcPoints {
			return opts, fmt.Errorf("n must be an integer between 0 and %d, got %q", config.MaxArcPoints, v)
		}
		opts.ArcPoints = render.ExplicitArcPoints(n)
	}
	return opts, nil
}

// uploadedRoutes reads a flight log from a multipart "file" field or the raw
// request body and parses it through the route cache. On failure it has
// already written the response.
func uploadedRoutes(c *gin.Context, d *Deps) ([]routes.Route, []byte, bool) {
	body, err := readUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, nil, false
	}
	rs, err := flightlog.Parse(c.Request.Context(), d.Routes, body)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, routes.ErrMissingColumn) || errors.Is(err, routes.ErrMalformedCSV) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return nil, nil, false
	}
	return rs, body, true
}

func readUpload(c *gin.Context) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("multipart upload needs a \"file\" field: %w", err)
		}
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open uploaded file: %w", err)
		}
		defer f.Close()
		return io.ReadAll(f)
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("flight log exceeds %d bytes", maxUploadBytes)
		}
		return nil, fmt.Errorf("read request body: %w", err)
	}
	return body, nil
}
