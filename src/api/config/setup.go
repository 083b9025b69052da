package config

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// APIConfig contiene la configuración del módulo API (health y metadata)
type APIConfig struct {
	DB      *sql.DB
	Version string
	Service string
}

// DefaultAPIConfig devuelve una configuración por defecto
func DefaultAPIConfig() APIConfig {
	return APIConfig{
		Version: "dev",
		Service: "pos-terminal",
	}
}

// SetupAPIModule registra health check en raíz y en el grupo versionado
func SetupAPIModule(router *gin.Engine, v1 *gin.RouterGroup, cfg APIConfig) {
	handler := healthHandler(cfg)
	router.GET("/health", handler)
	v1.GET("/health", handler)
}

// healthHandler arma el handler de health con estado de la DB si existe
func healthHandler(cfg APIConfig) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		dbStatus := "not_configured"
		if cfg.DB != nil {
			if err := cfg.DB.Ping(); err != nil {
				dbStatus = "down"
			} else {
				dbStatus = "up"
			}
		}

		ctx.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"service":   cfg.Service,
			"version":   cfg.Version,
			"database":  dbStatus,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
