package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// GzipOptions configura el middleware de compresión de respuestas
type GzipOptions struct {
	ExcludedPaths []string
}

// ForceGzipOptions configura la compresión forzada por ruta
type ForceGzipOptions struct {
	CheckClientSupport bool
}

// GzipReader intenta descomprimir los bodies entrantes con
// Content-Encoding: gzip antes de que lleguen a los handlers
func GzipReader() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if strings.Contains(ctx.GetHeader("Content-Encoding"), "gzip") && ctx.Request.Body != nil {
			reader, err := gzip.NewReader(ctx.Request.Body)
			if err != nil {
				ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
					"error": "Invalid gzip body",
				})
				return
			}
			ctx.Request.Body = reader
			ctx.Request.Header.Del("Content-Encoding")
			ctx.Request.ContentLength = -1
		}
		ctx.Next()
	}
}

// gzipWriter envuelve el ResponseWriter de gin comprimiendo lo que se escribe
type gzipWriter struct {
	gin.ResponseWriter
	gz *gzip.Writer
}

func (w *gzipWriter) Write(data []byte) (int, error) {
	return w.gz.Write(data)
}

func (w *gzipWriter) WriteString(s string) (int, error) {
	return w.gz.Write([]byte(s))
}

// GzipMiddleware comprime las respuestas cuando el cliente lo soporta
// Las rutas excluidas (health, metrics) pasan sin tocar
func GzipMiddleware(opts GzipOptions) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		for _, path := range opts.ExcludedPaths {
			if strings.HasPrefix(ctx.Request.URL.Path, path) {
				ctx.Next()
				return
			}
		}

		if !clientAcceptsGzip(ctx.Request) {
			ctx.Next()
			return
		}

		compressResponse(ctx)
	}
}

// ForceGzipMiddleware fuerza la compresión en rutas específicas
func ForceGzipMiddleware(opts ForceGzipOptions) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if opts.CheckClientSupport && !clientAcceptsGzip(ctx.Request) {
			ctx.Next()
			return
		}

		compressResponse(ctx)
	}
}

// clientAcceptsGzip chequea el header Accept-Encoding
func clientAcceptsGzip(req *http.Request) bool {
	return strings.Contains(req.Header.Get("Accept-Encoding"), "gzip")
}

// compressResponse envuelve el writer y ejecuta el resto de la cadena
func compressResponse(ctx *gin.Context) {
	gz := gzip.NewWriter(ctx.Writer)
	defer func() {
		gz.Close()
		ctx.Header("Content-Length", "")
	}()

	ctx.Header("Content-Encoding", "gzip")
	ctx.Header("Vary", "Accept-Encoding")
	ctx.Writer = &gzipWriter{ResponseWriter: ctx.Writer, gz: gz}
	ctx.Next()
}
