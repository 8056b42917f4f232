package server

import (
	"time"

	"github.com/lixenwraith/evo-terrain/preset"
	"github.com/lixenwraith/evo-terrain/status"
)

type Option func(s *Server)

// ListenAddress, host:port
func OptionListenAddress(addr string) Option {
	return func(s *Server) {
		s.listenAddress = addr
	}
}

// time a seeded result stays in the cache
func OptionCacheTTL(ttl time.Duration) Option {
	return func(s *Server) {
		s.cacheTTL = ttl
	}
}

// maximum cached results, oldest evicted first
func OptionCacheCapacity(n uint64) Option {
	return func(s *Server) {
		s.cacheCapacity = n
	}
}

func OptionPresetManager(m *preset.Manager) Option {
	return func(s *Server) {
		s.presets = m
	}
}

func OptionDebugMode(debug bool) Option {
	return func(s *Server) {
		s.debugMode = debug
	}
}

// share a registry with the rest of the process
func OptionRegistry(r *status.Registry) Option {
	return func(s *Server) {
		s.registry = r
	}
}

// upper bound on width*height per request
func OptionMaxCells(n int) Option {
	return func(s *Server) {
		s.maxCells = n
	}
}

// deadline of one shared generation, independent of the requesting clients
func OptionGenerateTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.genTimeout = d
		}
	}
}
