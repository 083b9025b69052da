package main

import (
	"context"
	"database/sql"
	"log"
	"os"

	apiConfig "pos/src/api/config"
	"pos/src/checkout/application/session"
	checkoutUseCase "pos/src/checkout/application/usecase"
	"pos/src/checkout/domain/port"
	checkoutCache "pos/src/checkout/infrastructure/cache"
	checkoutClient "pos/src/checkout/infrastructure/client"
	checkoutController "pos/src/checkout/infrastructure/controller"
	checkoutPersistence "pos/src/checkout/infrastructure/persistence"
	sharedConfig "pos/src/shared/infrastructure/config"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq" // Driver de PostgreSQL
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// getEnv obtiene una variable de entorno o devuelve un valor por defecto
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func main() {
	log.Println("🚀 POS Terminal Service - Iniciando...")

	// Configurar el router con Gin
	router := gin.New()

	// Agregar middlewares básicos necesarios
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Configurar Prometheus metrics si está habilitado
	if os.Getenv("PROMETHEUS_ENABLED") == "true" {
		log.Println("Registering /metrics endpoint for POS service")
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	} else {
		log.Println("Prometheus metrics disabled for POS service")
	}

	// Configurar GZIP y otros middlewares compartidos
	gzipSharedCfg := sharedConfig.DefaultSharedConfig()
	sharedConfig.SetupSharedMiddleware(router, gzipSharedCfg)

	// Modo de backend: "postgres" (directo a la DB de la tienda) o
	// "http" (backend hosteado vía BACKEND_URL)
	backendMode := getEnv("BACKEND_MODE", "postgres")

	var db *sql.DB
	var saleRepo port.SaleRepository
	var productRepo port.ProductRepository

	if backendMode == "http" {
		log.Println("Backend mode: http")
		backendClient := checkoutClient.NewBackendClient()
		saleRepo = backendClient
		productRepo = backendClient
	} else {
		log.Println("Backend mode: postgres")

		// Obtener configuración de la base de datos de variables de entorno
		dbHost := getEnv("DB_HOST", "localhost")
		dbPort := getEnv("DB_PORT", "5432")
		dbUser := getEnv("DB_USER", "postgres")
		dbPassword := getEnv("DB_PASSWORD", "postgres")
		dbName := getEnv("DB_NAME", "pos_db")

		connStr := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=disable"
		log.Printf("Intentando conectar a %s", dbName)

		// Conectar a la base de datos (opcional para bootstrap)
		var err error
		db, err = sql.Open("postgres", connStr)
		if err != nil {
			log.Printf("⚠️  Advertencia: Error al conectar a la base de datos: %v", err)
			log.Println("⚠️  Continuando sin DB (solo health check)")
			db = nil
		} else {
			defer db.Close()
			// Comprobar la conexión
			if err = db.Ping(); err != nil {
				log.Printf("⚠️  Advertencia: Error al verificar la conexión a la base de datos: %v", err)
				log.Println("⚠️  Continuando sin DB (solo health check)")
				db = nil
			} else {
				log.Printf("✅ Conexión a %s establecida con éxito", dbName)
			}
		}

		if db != nil {
			saleRepo = checkoutPersistence.NewSalePostgresRepository(db)
			productRepo = checkoutPersistence.NewProductPostgresRepository(db)
		}
	}

	// API v1 grupo de rutas
	v1 := router.Group("/api/v1")

	// Configurar el módulo API (health check)
	apiCfg := apiConfig.DefaultAPIConfig()
	apiCfg.DB = db
	apiCfg.Version = getEnv("SERVICE_VERSION", "1.0.0")
	apiConfig.SetupAPIModule(router, v1, apiCfg)

	// Configurar módulo Checkout
	setupCheckoutModule(v1, db, saleRepo, productRepo)

	// Iniciar el servidor
	port := getEnv("PORT", "8080")
	log.Printf("✅ Servidor POS Terminal iniciado en http://localhost:%s", port)
	log.Printf("✅ Health endpoint: GET http://localhost:%s/health", port)
	router.Run(":" + port)
}

// setupCheckoutModule configura el módulo Checkout (catálogo, carrito, venta)
func setupCheckoutModule(router *gin.RouterGroup, db *sql.DB, saleRepo port.SaleRepository, productRepo port.ProductRepository) {
	log.Println("Configurando módulo Checkout...")

	if saleRepo == nil || productRepo == nil {
		log.Println("⚠️  Módulo Checkout deshabilitado (backend no disponible)")
		return
	}

	// Cache de catálogo por tienda
	catalog := checkoutCache.NewCatalogCache(productRepo)

	// Precargar el catálogo de la tienda por defecto si está configurada
	if storeID := os.Getenv("STORE_ID"); storeID != "" {
		if err := catalog.Refresh(context.Background(), storeID); err != nil {
			log.Printf("⚠️  Warning: Could not preload catalog for store %s: %v", storeID, err)
		}
	}

	// Sesiones de operador (carrito + contadores de turno)
	sessions := session.NewManager()

	// Crear casos de uso
	checkoutUC := checkoutUseCase.NewCheckoutUseCase(saleRepo, productRepo)
	refreshShiftUC := checkoutUseCase.NewRefreshShiftUseCase(saleRepo)

	// Crear controladores
	posCtrl := checkoutController.NewPosController(catalog, sessions, checkoutUC, refreshShiftUC)
	posCtrl.RegisterRoutes(router)

	// Reporte diario: requiere acceso directo a la DB
	if db != nil {
		dailyReportUC := checkoutUseCase.NewDailyReportUseCase(db)
		reportCtrl := checkoutController.NewReportController(dailyReportUC)
		reportCtrl.RegisterRoutes(router)
	} else {
		log.Println("⚠️  Reportes diarios deshabilitados (sin conexión directa a DB)")
	}

	log.Println("Módulo Checkout configurado exitosamente")
}
