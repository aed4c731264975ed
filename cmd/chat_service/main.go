package main

import (
	"fmt"
	"log"
	"os"
	"time"

	_ "alumni_network_service/cmd/chat_service/docs"
	chatapp "alumni_network_service/internal/chat/app"
	chatrepo "alumni_network_service/internal/chat/repository"
	"alumni_network_service/internal/chat/router"
	memberdomain "alumni_network_service/internal/member/domain"
	memberrepo "alumni_network_service/internal/member/repository"
	"alumni_network_service/pkg/config"
	"alumni_network_service/pkg/database"
	"alumni_network_service/pkg/logger"
	testtool "alumni_network_service/pkg/test_tool"

	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

// @title Alumni Network Chat Service
// @version 1.0
// @description Realtime direct messaging between alumni and students
// @BasePath /
func main() {
	logger.Log = logger.Initialize(config.EnvConfig.ChatService, config.EnvConfig.ChatServiceLogPath)
	cfg := config.LoadConfig[config.Chat](config.EnvConfig.ChatService, config.EnvConfig.ChatServiceYAMLPath)
	testtool.StartPprof()

	// message store, gorm over the shared postgres
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.PostgreSQL.Host, cfg.PostgreSQL.Port, cfg.PostgreSQL.User, cfg.PostgreSQL.Password, cfg.PostgreSQL.Database)
	gormDB, err := database.NewPGConnection(database.Connection{
		ConnectStr:    dsn,
		RetryCount:    cfg.PostgreSQL.RetryCount,
		RetryInterval: time.Duration(cfg.PostgreSQL.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal("Unable to connect to postgres after retries",
			zap.String("host", cfg.PostgreSQL.Host),
			zap.Error(err),
		)
	}

	// user directory, pgx over the same database
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		cfg.PostgreSQL.User, cfg.PostgreSQL.Password, cfg.PostgreSQL.Host, cfg.PostgreSQL.Port, cfg.PostgreSQL.Database)
	pool, err := database.NewDatabaseConnection(database.Connection{
		ConnectStr:    connStr,
		RetryCount:    cfg.PostgreSQL.RetryCount,
		RetryInterval: time.Duration(cfg.PostgreSQL.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal("Unable to connect to postgres pool after retries",
			zap.String("host", cfg.PostgreSQL.Host),
			zap.Error(err),
		)
	}
	defer pool.Close()

	// redis holds the login sessions written by the web application
	redisClient, err := database.NewRedisClient(cfg.Redis.Addr, cfg.Redis.RedisDB)
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect redis err : %v", err))
	}

	msgRepo := chatrepo.NewMessageRepository(gormDB)
	if err := msgRepo.AutoMigrate(); err != nil {
		logger.Log.Fatal(fmt.Sprintf("migrate messages table err : %v", err))
	}
	memberRepo := memberrepo.NewMemberRepository(pool)
	sessionRepo := memberrepo.NewSessionRepository(
		database.NewRedisRepository[memberdomain.MemberSession](redisClient))

	registry := chatapp.NewConnRegistry()
	messageUC := chatapp.NewMessageUseCase(msgRepo, registry)
	wsHandler := chatapp.NewChatWebsocketHandler(messageUC, registry)
	restHandler := chatapp.NewChatRestHandler(messageUC, memberRepo)

	r := fiber.New()
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.ChatServiceLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	r.Use(fiber_log.New(fiber_log.Config{
		Output: file,
	}))

	router.RegisterRoutes(r, sessionRepo, wsHandler, restHandler)

	port := ":" + cfg.Port
	log.Printf("Chat Service listening on %s", port)
	if err := r.Listen(port); err != nil {
		log.Fatalf("Failed to start Fiber: %v", err)
	}
}
