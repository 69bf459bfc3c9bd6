package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"questbot/internal/api"
	"questbot/internal/bot"
	"questbot/internal/middleware"
	"questbot/internal/repository"
	"questbot/internal/service"
	"questbot/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron/v2"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	err = logger.Initialize(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zapLogger := logger.Logger()

	repo, err := repository.New(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to initialize repository", zap.Error(err))
	}
	defer repo.Close()

	questService := service.NewQuestService(repo)
	submissionService := service.NewSubmissionService(repo, repo, repo)
	userService := service.NewUserService(repo)
	drafts := service.NewDraftStore()

	b, err := bot.New(cfg.Bot, questService, submissionService, userService, drafts)
	if err != nil {
		zapLogger.Fatal("Failed to initialize bot", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go b.Start(ctx)

	startDeadlineSweeper(ctx, questService)

	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{http.MethodHead, http.MethodGet}
	corsConfig.AllowHeaders = []string{"*"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	auth := middleware.NewAuthorization(cfg.APIToken)

	a := router.Group("/api/v1")
	api.NewQuestRoutes(a, questService, auth)
	api.NewSubmissionRoutes(a, submissionService, auth)
	api.NewLeaderboardRoutes(a, userService, auth)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	zapLogger.Info("Starting server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}

// startDeadlineSweeper archives active quests whose deadline has passed.
func startDeadlineSweeper(ctx context.Context, quests service.QuestServiceI) {
	zapLogger := logger.Logger()

	sched, err := gocron.NewScheduler()
	if err != nil {
		zapLogger.Fatal("Failed to create scheduler", zap.Error(err))
	}

	_, err = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			archived, err := quests.ArchiveExpired(ctx)
			if err != nil {
				zapLogger.Error("deadline sweep failed", zap.Error(err))
				return
			}
			if archived > 0 {
				zapLogger.Info("archived expired quests", zap.Int64("count", archived))
			}
		}),
	)
	if err != nil {
		zapLogger.Fatal("Failed to schedule deadline sweep", zap.Error(err))
	}

	sched.Start()
}
