package admin

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	openaiapi "github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"

	"github.com/pharmetrics/askdb/internal/api/handlers"
	"github.com/pharmetrics/askdb/internal/config"
	"github.com/pharmetrics/askdb/internal/database"
	"github.com/pharmetrics/askdb/internal/executor"
	"github.com/pharmetrics/askdb/internal/openai"
	"github.com/pharmetrics/askdb/internal/repository"
	"github.com/pharmetrics/askdb/internal/server"
	"github.com/pharmetrics/askdb/internal/service"
	"github.com/pharmetrics/askdb/internal/telemetry"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the askdb API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "5000", "Port to listen on")
	cmd.Flags().Bool("no-migrate", false, "Skip automatic database migrations on startup")
	cmd.Flags().Bool("no-seed", false, "Skip seeding default schema chunks on startup")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize Sentry with tracing if SENTRY_DSN is set
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		environment := os.Getenv("ENVIRONMENT")
		if environment == "" {
			environment = "development"
		}

		sampleRate := 0.1
		if environment == "development" {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              dsn,
			Environment:      environment,
			TracesSampleRate: sampleRate,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	portFlag, _ := cmd.Flags().GetString("port")
	if portFlag != "" && portFlag != "5000" {
		cfg.Port = portFlag
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()
	log.Println("connected to chunk store database")

	noMigrate, _ := cmd.Flags().GetBool("no-migrate")
	if !noMigrate {
		if err := runMigrations(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	if !cfg.HasOpenAI() {
		return fmt.Errorf("ASKDB_OPENAI_API_KEY is required to run the query pipeline")
	}

	client := openai.NewClientWithConfig(openai.Config{
		APIKey:         cfg.OpenAIAPIKey,
		EmbeddingModel: openaiapi.EmbeddingModel(cfg.EmbeddingModel),
		ChatModel:      cfg.ChatModel,
	})

	chunkRepo := repository.NewChunkRepository(pool)
	retriever := service.NewSchemaRetriever(client, chunkRepo, cfg.DistanceThreshold)

	noSeed, _ := cmd.Flags().GetBool("no-seed")
	if !noSeed {
		if err := retriever.Seed(ctx); err != nil {
			return fmt.Errorf("failed to seed schema chunks: %w", err)
		}
	}

	var exec service.Executor
	var pinger handlers.Pinger
	if cfg.HasAnalyticsDB() {
		mysqlExec, err := executor.Open(cfg.AnalyticsDSN)
		if err != nil {
			return fmt.Errorf("failed to open analytics database: %w", err)
		}
		defer mysqlExec.Close()
		if err := mysqlExec.Ping(ctx); err != nil {
			log.Printf("analytics database not reachable at startup (continuing): %v", err)
		} else {
			log.Println("connected to analytics database")
		}
		exec = mysqlExec
		pinger = mysqlExec
	}

	pipeline := service.NewPipeline(service.PipelineConfig{
		Classifier: service.NewSecurityClassifier(client),
		Retriever:  retriever,
		Reasoner:   service.NewReasoningStage(client),
		Generator:  service.NewSQLGenerator(client),
		Corrector:  service.NewSQLCorrector(client),
		Validator:  service.NewSyntaxValidator(),
		Executor:   exec,
		Formatter:  service.NewResultFormatter(client),
		TopK:       cfg.TopK,
	})

	routerCfg := server.RouterConfig{
		QueryHandler:  handlers.NewQueryHandler(pipeline, exec != nil),
		SchemaHandler: handlers.NewSchemaHandler(retriever),
		DBHandler:     handlers.NewDBHandler(pinger),
	}

	router := server.NewRouter(routerCfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}

func runMigrations(databaseURL string) error {
	// Create a sql.DB connection for golang-migrate
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database for migrations: %w", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	if err == migrate.ErrNilVersion {
		log.Println("migrations: database is up to date (no migrations applied)")
	} else if dirty {
		return fmt.Errorf("migration version %d is dirty - manual intervention required", version)
	} else {
		log.Printf("migrations: database at version %d", version)
	}

	return nil
}
