package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"quiz-session-service/internal/app"
	"quiz-session-service/internal/config"
	"quiz-session-service/internal/domain"
	"quiz-session-service/internal/infra/memory"
	pgloader "quiz-session-service/internal/infra/postgres"
	redisinfra "quiz-session-service/internal/infra/redis"
	transport "quiz-session-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz session server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 2*time.Hour)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var loader memory.DocumentLoader = memory.NewStaticDocumentLoader(sampleDocuments())
	if pool != nil {
		loader = pgloader.NewDocumentLoader(pool)
	}

	documentTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	var documents app.DocumentRepository
	if redisClient != nil {
		documents = redisinfra.NewDocumentRepository(redisClient, loader, documentTTL)
	} else {
		documents = memory.NewDocumentRepository(loader, documentTTL)
	}

	var store app.SessionRepository
	if redisClient != nil {
		store = redisinfra.NewSessionStore(redisClient, redisTTL)
	} else {
		store = memory.NewSessionStore()
	}
	service := app.NewSessionService(store, documents, cfg.DefaultMarking())
	wsHandler := transport.NewWSHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quiz session service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleDocuments seeds a demo quiz; swap the loader for the Postgres one in production.
func sampleDocuments() map[string]domain.QuizDocument {
	return map[string]domain.QuizDocument{
		"genetics-101": {
			ID:              "genetics-101",
			Title:           "Genetics and Evolution",
			Topic:           "The Molecular Basis of Inheritance",
			Description:     "Quick check on replication and inheritance basics.",
			DurationMinutes: 15,
			Marking:         domain.MarkingRules{Correct: 4, Wrong: -1},
			Questions: []domain.Question{
				{
					ID:     "q1",
					Prompt: "If the base sequence in DNA is 5'-AAAT-3', the complementary RNA reads:",
					Options: []domain.Option{
						{ID: "o1", Text: "5'-UUUA-3'"},
						{ID: "o2", Text: "3'-UUUA-5'", Correct: true},
						{ID: "o3", Text: "5'-AAAU-3'"},
						{ID: "o4", Text: "3'-AAAU-5'"},
					},
					Explanation: "RNA pairs antiparallel to the template: A pairs with U, T with A.",
					ReadingSections: []string{
						"Transcription copies the template strand 3' to 5', building RNA 5' to 3'.",
					},
				},
				{
					ID:     "q2",
					Prompt: "Avery, MacLeod and McCarty identified the transforming principle as:",
					Options: []domain.Option{
						{ID: "o1", Text: "Protein"},
						{ID: "o2", Text: "RNA"},
						{ID: "o3", Text: "DNA", Correct: true},
						{ID: "o4", Text: "Polysaccharide"},
					},
					Explanation: "Their purification showed DNA, not protein, carried the heritable signal.",
				},
				{
					ID:     "q3",
					Prompt: "Semi-conservative DNA replication was demonstrated by:",
					Options: []domain.Option{
						{ID: "o1", Text: "Hershey and Chase"},
						{ID: "o2", Text: "Meselson and Stahl", Correct: true},
						{ID: "o3", Text: "Watson and Crick"},
						{ID: "o4", Text: "Griffith"},
					},
					Explanation: "Density-gradient centrifugation of nitrogen-labelled DNA across generations.",
					PracticeSections: []string{
						"Work through the expected band positions after one and two generations in 14N medium.",
					},
				},
			},
		},
	}
}
