package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"
	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/singleflight"

	"github.com/lixenwraith/evo-terrain/pcg"
	"github.com/lixenwraith/evo-terrain/preset"
	"github.com/lixenwraith/evo-terrain/quantize"
	"github.com/lixenwraith/evo-terrain/render"
)

const (
	ViewHeight = "height"
	ViewTiles  = "tiles"
)

var (
	ErrTooLarge    = errors.New("requested map is too large")
	ErrUnknownView = errors.New("unknown view")
)

// TerrainRequest is a full setup, or a preset name with an optional seed override
// When Preset is set the inline setup fields are ignored
type TerrainRequest struct {
	preset.Setup
	Preset string `json:"preset,omitempty"`
	Seed   *int64 `json:"seed,omitempty"`
	View   string `json:"view,omitempty"`
}

// Terrain is a generated map with both representations kept for later views
type Terrain struct {
	Key       string                    `json:"key"`
	Name      string                    `json:"name,omitempty"`
	Width     int                       `json:"width"`
	Height    int                       `json:"height"`
	Seed      int64                     `json:"seed"`
	View      string                    `json:"view"`
	Range     pcg.NormalizingValues     `json:"range"`
	Histogram map[quantize.TileType]int `json:"histogram"`
	Heights   [][]float64               `json:"heights,omitempty"`
	Tiles     [][]quantize.TileType     `json:"tiles,omitempty"`
	Elapsed   string                    `json:"elapsed"`
	Cached    bool                      `json:"cached"`
}

// project returns a shallow copy carrying only the grid for view
func (t *Terrain) project(view string, cached bool) Terrain {
	out := *t
	out.View = view
	out.Cached = cached
	if view == ViewTiles {
		out.Heights = nil
	} else {
		out.Tiles = nil
	}
	return out
}

// unseeded requests get unique keys so they are retrievable but never shared
var nonce atomic.Uint64

func normalizeView(v string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", ViewHeight:
		return ViewHeight, nil
	case ViewTiles:
		return ViewTiles, nil
	}
	return "", fmt.Errorf("%q: %w", v, ErrUnknownView)
}

// resolve turns a request into the setup to generate
func (s *Server) resolve(req TerrainRequest) (preset.Setup, error) {
	setup := req.Setup
	if req.Preset != "" {
		loaded, err := s.presets.Load(req.Preset)
		if err != nil {
			return preset.Setup{}, err
		}
		setup = loaded
	}
	if req.Seed != nil {
		setup.NoiseConfig.Seed = *req.Seed
	}
	if err := setup.Validate(); err != nil {
		return preset.Setup{}, err
	}
	// Per side first; the product of two huge sides can wrap
	if setup.Width > s.maxCells || setup.Height > s.maxCells/setup.Width {
		return preset.Setup{}, fmt.Errorf("%dx%d over %d cells: %w", setup.Width, setup.Height, s.maxCells, ErrTooLarge)
	}
	return setup, nil
}

// cacheKey hashes the canonical JSON form of setup
func cacheKey(setup preset.Setup) (string, error) {
	canonical, err := json.Marshal(setup)
	if err != nil {
		return "", err
	}
	if setup.NoiseConfig.Seed == 0 {
		canonical = fmt.Appendf(canonical, "#%d", nonce.Add(1))
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(canonical)), nil
}

func (s *Server) generate(ctx context.Context, key string, setup preset.Setup) (*Terrain, error) {
	gen := setup.Generator()
	heights, err := gen.GenerateNoiseArrayContext(ctx)
	if err != nil {
		return nil, err
	}
	tiles := setup.Quantizer().Quantize(heights)

	t := &Terrain{
		Key:       key,
		Name:      setup.Name,
		Width:     setup.Width,
		Height:    setup.Height,
		Seed:      setup.NoiseConfig.Seed,
		Range:     gen.Range(),
		Histogram: quantize.Histogram(tiles),
		Heights:   heights,
		Tiles:     tiles,
		Elapsed:   gen.Elapsed().String(),
	}
	s.registry.ObserveGeneration(setup.Width, setup.Height, gen.Elapsed(), gen.Range())
	s.cache.Set(key, t, ttlcache.DefaultTTL)
	return t, nil
}

func (s *Server) handleGenerate(ctx *gin.Context) {
	tick := time.Now()
	rsp := gin.H{"success": false, "reason": "not specified"}

	var req TerrainRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		rsp["reason"] = err.Error()
		ctx.JSON(http.StatusBadRequest, rsp)
		return
	}
	view, err := normalizeView(req.View)
	if err != nil {
		rsp["reason"] = err.Error()
		ctx.JSON(http.StatusBadRequest, rsp)
		return
	}
	setup, err := s.resolve(req)
	if err != nil {
		rsp["reason"] = err.Error()
		if errors.Is(err, preset.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, rsp)
		} else {
			ctx.JSON(http.StatusBadRequest, rsp)
		}
		return
	}
	key, err := cacheKey(setup)
	if err != nil {
		rsp["reason"] = err.Error()
		ctx.JSON(http.StatusInternalServerError, rsp)
		return
	}

	if setup.NoiseConfig.Seed != 0 {
		if item := s.cache.Get(key); item != nil {
			s.registry.ObserveCache(true)
			rsp["success"] = true
			rsp["reason"] = "success"
			rsp["data"] = item.Value().project(view, true)
			rsp["elapse"] = time.Since(tick).String()
			ctx.JSON(http.StatusOK, rsp)
			return
		}
		s.registry.ObserveCache(false)
	}

	// Shared call is detached from the caller; gin's context must not escape into it
	reqCtx := ctx.Request.Context()
	ch := s.flight.DoChan(key, func() (any, error) {
		genCtx, cancel := context.WithTimeout(context.WithoutCancel(reqCtx), s.genTimeout)
		defer cancel()
		return s.generate(genCtx, key, setup)
	})
	var res singleflight.Result
	select {
	case res = <-ch:
	case <-reqCtx.Done():
		rsp["reason"] = reqCtx.Err().Error()
		ctx.JSON(http.StatusServiceUnavailable, rsp)
		return
	}
	if res.Err != nil {
		rsp["reason"] = res.Err.Error()
		ctx.JSON(http.StatusServiceUnavailable, rsp)
		return
	}

	rsp["success"] = true
	rsp["reason"] = "success"
	rsp["data"] = res.Val.(*Terrain).project(view, false)
	rsp["elapse"] = time.Since(tick).String()
	ctx.JSON(http.StatusOK, rsp)
}

func (s *Server) lookup(ctx *gin.Context, rsp gin.H) (*Terrain, string, bool) {
	key := ctx.Param("key")
	item := s.cache.Get(key)
	if item == nil {
		rsp["reason"] = fmt.Sprintf("terrain %q not found or expired", key)
		ctx.JSON(http.StatusNotFound, rsp)
		return nil, "", false
	}
	view, err := normalizeView(ctx.Query("view"))
	if err != nil {
		rsp["reason"] = err.Error()
		ctx.JSON(http.StatusBadRequest, rsp)
		return nil, "", false
	}
	return item.Value(), view, true
}

func (s *Server) handleGetTerrain(ctx *gin.Context) {
	tick := time.Now()
	rsp := gin.H{"success": false, "reason": "not specified"}

	t, view, ok := s.lookup(ctx, rsp)
	if !ok {
		return
	}
	rsp["success"] = true
	rsp["reason"] = "success"
	rsp["data"] = t.project(view, true)
	rsp["elapse"] = time.Since(tick).String()
	ctx.JSON(http.StatusOK, rsp)
}

func (s *Server) handleGetTerrainPNG(ctx *gin.Context) {
	rsp := gin.H{"success": false, "reason": "not specified"}

	t, view, ok := s.lookup(ctx, rsp)
	if !ok {
		return
	}

	var img image.Image
	if view == ViewTiles {
		img = render.TileImage(t.Tiles, render.DefaultPalette())
	} else {
		img = render.HeightImage(t.Heights)
	}
	var buf bytes.Buffer
	if err := render.WritePNG(&buf, img); err != nil {
		rsp["reason"] = err.Error()
		ctx.JSON(http.StatusInternalServerError, rsp)
		return
	}
	ctx.Data(http.StatusOK, "image/png", buf.Bytes())
}
