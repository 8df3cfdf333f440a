// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server is the interactive front-end: a gin HTTP app that accepts
// uploads or a server-side folder, converts each file through the gateway,
// and serves per-file tabs plus a downloadable ZIP of the results.
package server

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

//go:embed index.html
var indexPage []byte

// NewRouter builds the gin engine with all routes registered.
func NewRouter(h *Handlers, logger *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
	})

	api := router.Group("/api")
	{
		api.POST("/convert", h.Convert)
		api.GET("/results", h.Results)
		api.GET("/archive", h.Archive)
		api.POST("/extras", h.InstallExtras)
		api.GET("/extras", h.ExtrasCatalog)
		api.GET("/history", h.History)
		api.GET("/health", h.Health)
	}

	return router
}
