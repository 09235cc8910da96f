package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/trueshade/api/analysis"
	"github.com/trueshade/api/api"
	"github.com/trueshade/api/catalog"
	"github.com/trueshade/api/colorscience"
	"github.com/trueshade/api/datastore"
	"github.com/trueshade/api/matcher"
	"github.com/trueshade/api/migrations"
	"github.com/trueshade/api/sampler"
	"github.com/trueshade/api/scheduler"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := api.Config{
		HTTPPort:             getEnv("HTTP_PORT", ":8000"),
		DatabaseType:         getEnv("DB_TYPE", "postgres"),
		DatabaseHost:         getEnv("DB_HOST", "localhost"),
		DatabaseUser:         getEnv("DB_USER", "postgres"),
		DatabasePassword:     getEnv("DB_PASSWORD", ""),
		DatabaseName:         getEnv("DB_NAME", ""),
		SSLMode:              getEnv("SSL_MODE", "disable"),
		CatalogSource:        getEnv("CATALOG_SOURCE", "auto"),
		JwtSecret:            getEnv("JWT_SECRET", "your-secret-key-change-this"),
		JwtAccessDuration:    getEnvInt("JWT_ACCESS_DURATION", 900),     // 15 minutes
		JwtRefreshDuration:   getEnvInt("JWT_REFRESH_DURATION", 604800), // 7 days
		JwtDomain:            getEnv("JWT_DOMAIN", ""),
		AllowedOrigins:       getEnvSlice("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"),
		DevMode:              getEnvBool("DEV_MODE", true),
		MaxImageDimension:    getEnvInt("MAX_IMAGE_DIMENSION", sampler.DefaultMaxDimension),
		MaxUploadBytes:       int64(getEnvInt("MAX_UPLOAD_BYTES", 10<<20)),
		HistoryRetentionDays: getEnvInt("HISTORY_RETENTION_DAYS", 180),
	}

	estimatorConfig := colorscience.DefaultEstimatorConfig()
	estimatorConfig.NumClusters = getEnvInt("NUM_CLUSTERS", estimatorConfig.NumClusters)
	estimatorConfig.MinLightness = getEnvFloat("OUTLIER_MIN_L", estimatorConfig.MinLightness)
	estimatorConfig.MaxLightness = getEnvFloat("OUTLIER_MAX_L", estimatorConfig.MaxLightness)
	estimatorConfig.MinSamples = getEnvInt("MIN_VALID_SAMPLES", estimatorConfig.MinSamples)

	shadeMatcher := matcher.Default()
	shadeMatcher.MaxMatches = getEnvInt("MAX_MATCHES_PER_BRAND", shadeMatcher.MaxMatches)
	shadeMatcher.UndertoneBonus = getEnvFloat("UNDERTONE_BONUS", shadeMatcher.UndertoneBonus)

	app := &api.Application{Config: config}

	// The database is optional: without DB_NAME the service runs on the
	// builtin catalog with history, favorites and accounts disabled.
	var dbConn *sql.DB
	var productRepo datastore.ProductRepository
	if config.DatabaseName != "" {
		connStr := datastore.BuildDBConnStr(
			config.DatabaseHost,
			config.DatabasePassword,
			config.DatabaseUser,
			config.DatabaseName,
			config.SSLMode,
		)

		var dbErr error
		dbConn, dbErr = datastore.NewDB(config.DatabaseType, connStr)
		if dbErr != nil {
			log.Fatalf("Failed to connect to database: %v", dbErr)
		}
		defer dbConn.Close()

		if err := migrations.RunMigrations(dbConn); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}

		userRepo, userRepoErr := datastore.NewUserDatabase(dbConn)
		if userRepoErr != nil {
			log.Fatalf("Failed to create user repository: %v", userRepoErr)
		}
		products, productRepoErr := datastore.NewProductDatabase(dbConn)
		if productRepoErr != nil {
			log.Fatalf("Failed to create product repository: %v", productRepoErr)
		}
		analysisRepo, analysisRepoErr := datastore.NewAnalysisDatabase(dbConn)
		if analysisRepoErr != nil {
			log.Fatalf("Failed to create analysis repository: %v", analysisRepoErr)
		}
		favoriteRepo, favoriteRepoErr := datastore.NewFavoriteDatabase(dbConn)
		if favoriteRepoErr != nil {
			log.Fatalf("Failed to create favorite repository: %v", favoriteRepoErr)
		}

		productRepo = products
		app.UserRepo = userRepo
		app.ProductRepo = products
		app.AnalysisRepo = analysisRepo
		app.FavoriteRepo = favoriteRepo
	} else {
		log.Println("DB_NAME not set, running without a database")
	}

	source, err := selectCatalogSource(config.CatalogSource, productRepo)
	if err != nil {
		log.Fatalf("Failed to select catalog source: %v", err)
	}
	app.Catalog = catalog.NewLoader(source)
	if err := app.Catalog.Preload(); err != nil {
		log.Fatalf("Failed to load shade catalog: %v", err)
	}

	analyzer, err := analysis.NewAnalyzer(estimatorConfig, shadeMatcher, app.Catalog)
	if err != nil {
		log.Fatalf("Failed to create analyzer: %v", err)
	}
	app.Analyzer = analyzer

	if app.AnalysisRepo != nil {
		pruner := scheduler.NewHistoryPruner(app.AnalysisRepo, config.HistoryRetentionDays)
		pruner.Start()
		defer pruner.Stop()
		if config.HistoryRetentionDays > 0 {
			app.Pruner = pruner
		}
	}

	mux := http.NewServeMux()

	log.Println("TrueShade API Starting...")
	if err := app.Serve(mux); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// selectCatalogSource picks the catalog backing once at startup. In auto
// mode the product store is used only when it already holds shades.
func selectCatalogSource(mode string, products datastore.ProductRepository) (catalog.Source, error) {
	switch strings.ToLower(mode) {
	case "builtin":
		return catalog.BuiltinSource{}, nil
	case "store":
		if products == nil {
			return nil, errors.New("CATALOG_SOURCE=store requires a database")
		}
		return catalog.StoreSource{Products: products}, nil
	case "", "auto":
		if products == nil {
			return catalog.BuiltinSource{}, nil
		}
		count, err := products.Count()
		if err != nil {
			log.Printf("Could not count stored products, using builtin catalog: %v", err)
			return catalog.BuiltinSource{}, nil
		}
		if count == 0 {
			log.Println("Product store is empty, using builtin catalog")
			return catalog.BuiltinSource{}, nil
		}
		return catalog.StoreSource{Products: products}, nil
	default:
		return nil, fmt.Errorf("unknown CATALOG_SOURCE %q, expected auto, builtin or store", mode)
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intVal
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	floatVal, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return floatVal
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolVal, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolVal
}

func getEnvSlice(key, defaultValue string) []string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}
	return strings.Split(value, ",")
}
