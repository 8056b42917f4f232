// Package server exposes terrain generation over HTTP
package server

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/singleflight"

	"github.com/lixenwraith/evo-terrain/preset"
	"github.com/lixenwraith/evo-terrain/status"
)

const (
	DefaultListenAddress = "127.0.0.1:5670"
	DefaultCacheTTL      = 10 * time.Minute
	DefaultCacheCapacity = 64
	DefaultMaxCells      = 2048 * 2048
	DefaultGenTimeout    = time.Minute
)

// Server serves generated maps and keeps recent results in a TTL cache
type Server struct {
	listenAddress string
	cacheTTL      time.Duration
	cacheCapacity uint64
	maxCells      int
	genTimeout    time.Duration
	debugMode     bool

	presets  *preset.Manager
	registry *status.Registry

	cache  *ttlcache.Cache[string, *Terrain]
	flight singleflight.Group

	httpServer *http.Server
	listener   net.Listener
	closeWg    sync.WaitGroup
}

func New(opts ...Option) *Server {
	s := &Server{
		listenAddress: DefaultListenAddress,
		cacheTTL:      DefaultCacheTTL,
		cacheCapacity: DefaultCacheCapacity,
		maxCells:      DefaultMaxCells,
		genTimeout:    DefaultGenTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = status.NewRegistry()
	}
	if s.presets == nil {
		s.presets = preset.NewManager("presets")
	}
	s.cache = ttlcache.New(
		ttlcache.WithTTL[string, *Terrain](s.cacheTTL),
		ttlcache.WithCapacity[string, *Terrain](s.cacheCapacity),
	)
	s.cache.OnEviction(func(ctx context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[string, *Terrain]) {
		if s.debugMode {
			log.Printf("server: evicted %s (reason %d)", item.Key(), reason)
		}
	})
	return s
}

// Registry returns the metrics registry the server writes to
func (s *Server) Registry() *status.Registry {
	return s.registry
}

// Addr returns the bound address once started
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.listenAddress
	}
	return s.listener.Addr().String()
}

// Start binds the listener and serves in the background
func (s *Server) Start() error {
	if s.debugMode {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	lsnr, err := net.Listen("tcp", s.listenAddress)
	if err != nil {
		return err
	}
	s.listener = lsnr
	s.httpServer = &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.closeWg.Add(2)
	go func() {
		defer s.closeWg.Done()
		s.cache.Start()
	}()
	go func() {
		defer s.closeWg.Done()
		if err := s.httpServer.Serve(lsnr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server: serve: %v", err)
		}
	}()
	log.Printf("server: listening on %s", s.Addr())
	return nil
}

// Stop shuts down the listener and the cache janitor
func (s *Server) Stop() {
	if s.httpServer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Printf("server: shutdown: %v", err)
	}
	s.cache.Stop()
	s.closeWg.Wait()
	s.httpServer = nil
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if s.debugMode {
		r.Use(accessLog())
	}

	api := r.Group("/api")
	api.GET("/health", s.handleHealth)
	api.POST("/terrain", s.handleGenerate)
	api.GET("/terrain/:key", s.handleGetTerrain)
	api.GET("/terrain/:key/png", s.handleGetTerrainPNG)
	api.GET("/presets", s.handleListPresets)
	api.GET("/presets/:name", s.handleGetPreset)
	api.GET("/metrics", s.handleMetrics)
	return r
}

func accessLog() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tick := time.Now()
		ctx.Next()
		log.Printf("server: %s %s %d %v", ctx.Request.Method, ctx.Request.URL.Path, ctx.Writer.Status(), time.Since(tick))
	}
}
