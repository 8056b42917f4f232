package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lixenwraith/evo-terrain/preset"
)

func (s *Server) handleHealth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"success": true, "reason": "success"})
}

func (s *Server) handleListPresets(ctx *gin.Context) {
	tick := time.Now()
	rsp := gin.H{"success": false, "reason": "not specified"}

	names, err := s.presets.List()
	if err != nil {
		rsp["reason"] = err.Error()
		ctx.JSON(http.StatusInternalServerError, rsp)
		return
	}
	rsp["success"] = true
	rsp["reason"] = "success"
	rsp["list"] = names
	rsp["elapse"] = time.Since(tick).String()
	ctx.JSON(http.StatusOK, rsp)
}

func (s *Server) handleGetPreset(ctx *gin.Context) {
	tick := time.Now()
	rsp := gin.H{"success": false, "reason": "not specified"}

	setup, err := s.presets.Load(ctx.Param("name"))
	if err != nil {
		rsp["reason"] = err.Error()
		if errors.Is(err, preset.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, rsp)
		} else {
			ctx.JSON(http.StatusBadRequest, rsp)
		}
		return
	}
	rsp["success"] = true
	rsp["reason"] = "success"
	rsp["data"] = setup
	rsp["elapse"] = time.Since(tick).String()
	ctx.JSON(http.StatusOK, rsp)
}

func (s *Server) handleMetrics(ctx *gin.Context) {
	data := s.registry.Snapshot()
	data["cache_items"] = s.cache.Len()
	ctx.JSON(http.StatusOK, gin.H{"success": true, "reason": "success", "data": data})
}
