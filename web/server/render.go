package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

const (
	defaultScene   = "default"
	maxImageSize   = 2000
	maxSamples     = 10000
	maxRenderDepth = 1000
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene           string
	Width           int
	Height          int
	SamplesPerPixel int
	MaxDepth        int
	Seed            uint64
	Deterministic   bool // False when the client asks for a random seed
	Format          output.Format
}

// parseRenderRequest parses and validates the query parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene"), Deterministic: true}
	if req.Scene == "" {
		req.Scene = defaultScene
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 400, 1, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 225, 1, maxImageSize); err != nil {
		return nil, err
	}
	if req.SamplesPerPixel, err = parseIntParam(values, "spp", 10, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "depth", 50, 0, maxRenderDepth); err != nil {
		return nil, err
	}
	if values.Get("seed") == "random" {
		req.Deterministic = false
	} else if req.Seed, err = parseSeedParam(values, "seed", renderer.DefaultSeed); err != nil {
		return nil, err
	}

	req.Format = output.FormatPNG
	if f := values.Get("format"); f != "" {
		if req.Format, err = output.ParseFormat(f); err != nil {
			return nil, err
		}
	}

	return req, nil
}

// handleRender renders a scene and returns the encoded image
func (s *Server) handleRender(c echo.Context) error {
	req, err := parseRenderRequest(c.QueryParams())
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err)
	}

	sc, err := scene.Resolve(req.Scene, s.cfg.ScenesDir, req.Seed)
	if err != nil {
		if errors.Is(err, scene.ErrUnknownScene) || errors.Is(err, scene.ErrInvalidScene) {
			return jsonError(c, http.StatusBadRequest, err)
		}
		return jsonError(c, http.StatusInternalServerError, err)
	}

	renderID := fmt.Sprintf("render-%d", s.renderID.Add(1))
	opts := renderer.DefaultOptions()
	opts.Width = req.Width
	opts.Height = req.Height
	opts.SamplesPerPixel = req.SamplesPerPixel
	opts.MaxDepth = req.MaxDepth
	opts.Deterministic = req.Deterministic
	opts.Seed = req.Seed
	opts.NumWorkers = s.cfg.NumWorkers
	opts.Background = sc.Background
	opts.Logger = NewWebLogger(renderID, s.console, s.logger)

	fb, stats, err := renderer.Render(sc, sc.CameraFor(req.Width, req.Height), opts)
	if err != nil {
		if errors.Is(err, renderer.ErrInvalidCamera) || errors.Is(err, renderer.ErrInvalidOptions) {
			return jsonError(c, http.StatusBadRequest, err)
		}
		return jsonError(c, http.StatusInternalServerError, err)
	}

	var buf bytes.Buffer
	if err := output.Encode(&buf, fb, req.Format); err != nil {
		return jsonError(c, http.StatusInternalServerError, err)
	}

	header := c.Response().Header()
	header.Set("X-Render-Id", renderID)
	header.Set("X-Render-Seed", strconv.FormatUint(stats.Seed, 10))
	header.Set("X-Render-Time-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	return c.Blob(http.StatusOK, req.Format.ContentType(), buf.Bytes())
}
