package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"carbonchain-backend/internal/analyses"
	"carbonchain-backend/internal/companies"
	"carbonchain-backend/internal/engine"
	"carbonchain-backend/internal/llm"
	"carbonchain-backend/internal/llm/gemini"
	"carbonchain-backend/internal/netzero"
	"carbonchain-backend/internal/optimizations"
	"carbonchain-backend/internal/products"
	"carbonchain-backend/internal/shared/config"
	"carbonchain-backend/internal/shared/server"
	"carbonchain-backend/internal/shared/storage/db"
	"carbonchain-backend/internal/supplychain"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	CompanyRepo      companies.Repo
	ProductRepo      products.Repo
	SupplyChainRepo  supplychain.Repo
	AnalysisRepo     analyses.Repo
	OptimizationRepo optimizations.Repo
	NetZeroRepo      netzero.Repo

	LLMClient    llm.Client
	EngineClient *engine.Client

	CompanyService      *companies.Service
	ProductService      *products.Service
	SupplyChainService  *supplychain.Service
	AnalysisService     *analyses.Service
	OptimizationService *optimizations.Service
	NetZeroService      *netzero.Service
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:              cfg,
		CompanyHandler:      companies.NewHandler(app.CompanyService),
		ProductHandler:      products.NewHandler(app.ProductService),
		SupplyChainHandler:  supplychain.NewHandler(app.SupplyChainService),
		AnalysisHandler:     analyses.NewHandler(app.AnalysisService),
		OptimizationHandler: optimizations.NewHandler(app.OptimizationService),
		NetZeroHandler:      netzero.NewHandler(app.NetZeroService),
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildServices(app *App) {
	if app.DB != nil {
		app.CompanyRepo = &companies.PGRepo{DB: app.DB}
		app.ProductRepo = &products.PGRepo{DB: app.DB}
		app.SupplyChainRepo = &supplychain.PGRepo{DB: app.DB}
		app.AnalysisRepo = &analyses.PGRepo{DB: app.DB}
		app.OptimizationRepo = &optimizations.PGRepo{DB: app.DB}
		app.NetZeroRepo = &netzero.PGRepo{DB: app.DB}
	} else {
		app.CompanyRepo = companies.NewMemoryRepo()
		app.ProductRepo = products.NewMemoryRepo()
		app.SupplyChainRepo = supplychain.NewMemoryRepo()
		app.AnalysisRepo = analyses.NewMemoryRepo()
		app.OptimizationRepo = optimizations.NewMemoryRepo()
		app.NetZeroRepo = netzero.NewMemoryRepo()
	}

	// A missing key keeps the server bootable; the configuration error
	// surfaces on the first generate call.
	app.LLMClient = llm.Client(llm.PlaceholderClient{})
	if strings.TrimSpace(app.Config.GeminiAPIKey) != "" {
		client, err := gemini.NewClient(app.Config.GeminiAPIKey, app.Config.GeminiModel)
		if err != nil {
			log.Printf("bootstrap: gemini client unavailable: %v", err)
		} else {
			app.LLMClient = client
		}
	} else {
		log.Printf("bootstrap: GEMINI_API_KEY not set; AI recommendations disabled")
	}

	app.EngineClient = engine.NewClient(app.Config.EmissionEngineURL)

	app.CompanyService = &companies.Service{Repo: app.CompanyRepo}
	app.ProductService = &products.Service{Repo: app.ProductRepo}
	app.SupplyChainService = &supplychain.Service{
		Repo:     app.SupplyChainRepo,
		Analyzer: &supplychain.RouteAnalyzer{Client: app.LLMClient},
	}
	app.OptimizationService = &optimizations.Service{
		Repo:    app.OptimizationRepo,
		Nodes:   app.SupplyChainRepo,
		Client:  app.LLMClient,
		Results: app.AnalysisRepo,
	}
	app.AnalysisService = &analyses.Service{
		Repo:      app.AnalysisRepo,
		Nodes:     app.SupplyChainRepo,
		Products:  app.ProductRepo,
		Engine:    app.EngineClient,
		Optimizer: app.OptimizationService,
	}
	app.NetZeroService = &netzero.Service{Repo: app.NetZeroRepo}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
