package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/YeongsHub/complain-finder/internal/analyzer"
	"github.com/YeongsHub/complain-finder/internal/api"
	"github.com/YeongsHub/complain-finder/internal/brain"
	"github.com/YeongsHub/complain-finder/internal/config"
	"github.com/YeongsHub/complain-finder/internal/core/ports"
	"github.com/YeongsHub/complain-finder/internal/discovery"
	"github.com/YeongsHub/complain-finder/internal/ideas"
	"github.com/YeongsHub/complain-finder/internal/pipeline"
	"github.com/YeongsHub/complain-finder/internal/sites/reddit"
	"github.com/YeongsHub/complain-finder/internal/storage"
)

func main() {
	godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	var store ports.Storage
	if cfg.Storage.DatabaseURL != "" {
		store, err = storage.NewPostgresStorage(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to Postgres: %v", err)
		}
		log.Println("Storage: PostgreSQL")
	} else {
		store, err = storage.NewJSONStorage(cfg.Storage.Path)
		if err != nil {
			log.Fatalf("Failed to open JSON storage: %v", err)
		}
		log.Printf("Storage: JSON file (%s)", cfg.Storage.Path)
	}
	defer store.Close()

	source := reddit.NewClient(cfg.Reddit.BaseURL, cfg.Reddit.UserAgent)
	if cfg.Reddit.MockMode {
		source.MockMode = true
		log.Println("Reddit: mock mode, no live requests")
	}

	// The live/substitute split is decided once, here. Everything downstream
	// only sees the interfaces.
	var complaintClassifier ports.ComplaintClassifier = analyzer.SubstituteComplaintClassifier{}
	var appIdeaClassifier ports.AppIdeaClassifier = analyzer.SubstituteAppIdeaClassifier{}
	var ideaGenerator ports.IdeaGenerator = ideas.SubstituteIdeaGenerator{}
	if cfg.LLM.Live {
		myBrain, err := brain.NewGeminiBrain(ctx, cfg.LLM.APIKey, cfg.LLM.Model)
		if err != nil {
			log.Fatalf("Failed to initialize Gemini: %v", err)
		}
		complaintClassifier = analyzer.NewLiveComplaintClassifier(myBrain)
		appIdeaClassifier = analyzer.NewLiveAppIdeaClassifier(myBrain)
		ideaGenerator = ideas.NewLiveIdeaGenerator(myBrain)
		log.Printf("LLM: live mode (%s)", cfg.LLM.Model)
	} else {
		log.Println("LLM: substitute mode")
	}

	complaints := analyzer.NewComplaintAnalyzer(complaintClassifier, store)
	appIdeas := analyzer.NewAppIdeaAnalyzer(source, appIdeaClassifier, store)
	synthesizer := ideas.NewSynthesizer(ideaGenerator, store)

	pool := pipeline.NewPool(ctx, int64(cfg.Pipeline.Workers))
	orchestrator := pipeline.NewOrchestrator(source, complaints, synthesizer, store, pool)

	registry := discovery.NewRegistry()
	scheduler := discovery.NewScheduler(registry, appIdeas, pool)
	go scheduler.Run(ctx)

	server := api.NewServer(store, orchestrator, scheduler, registry, appIdeas)
	if cfg.Pipeline.DefaultLimit > 0 {
		server.DefaultLimit = cfg.Pipeline.DefaultLimit
	}
	addr := cfg.Server.Host + ":" + cfg.Server.Port
	log.Printf("Starting server on %s", addr)
	if err := server.Router().Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
