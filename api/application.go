package api

import (
	"time"

	"github.com/trueshade/api/analysis"
	"github.com/trueshade/api/catalog"
	"github.com/trueshade/api/datastore"
)

const Version = "1.0.0"

type Config struct {
	HTTPPort             string
	DatabaseType         string
	DatabaseHost         string
	DatabaseUser         string
	DatabasePassword     string
	DatabaseName         string
	SSLMode              string
	CatalogSource        string
	JwtSecret            string
	JwtAccessDuration    int // seconds
	JwtRefreshDuration   int // seconds
	JwtDomain            string
	AllowedOrigins       []string
	DevMode              bool
	MaxImageDimension    int
	MaxUploadBytes       int64
	HistoryRetentionDays int
}

// HistoryPruner deletes expired analysis history
type HistoryPruner interface {
	PruneOnce(now time.Time) (int64, error)
}

// Application holds the handlers' dependencies. The repositories are nil
// when the service runs without a database.
type Application struct {
	Config       Config
	Analyzer     *analysis.Analyzer
	Catalog      *catalog.Loader
	UserRepo     datastore.UserRepository
	ProductRepo  datastore.ProductRepository
	AnalysisRepo datastore.AnalysisRepository
	FavoriteRepo datastore.FavoriteRepository
	Pruner       HistoryPruner
}

func (app *Application) databaseEnabled() bool {
	return app.UserRepo != nil
}
