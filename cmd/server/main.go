package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/bennhinn/youtube-learning-app/internal/api"
	"github.com/bennhinn/youtube-learning-app/internal/auth"
	"github.com/bennhinn/youtube-learning-app/internal/database"
	"github.com/bennhinn/youtube-learning-app/internal/pathgen"
	"github.com/bennhinn/youtube-learning-app/internal/youtube"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Database configuration
	dbType := os.Getenv("DB_TYPE")
	if dbType == "" {
		dbType = "sqlite"
	}

	var dbConfig database.Config
	dbConfig.Type = dbType

	if dbType == "postgres" {
		dbConfig.Host = os.Getenv("DB_HOST")
		if dbConfig.Host == "" {
			dbConfig.Host = "localhost"
		}

		dbPortStr := os.Getenv("DB_PORT")
		if dbPortStr == "" {
			dbPortStr = "5432"
		}
		dbPort, err := strconv.Atoi(dbPortStr)
		if err != nil {
			log.Fatal("Invalid DB_PORT:", err)
		}
		dbConfig.Port = dbPort

		dbConfig.User = os.Getenv("DB_USER")
		if dbConfig.User == "" {
			dbConfig.User = "learntube"
		}

		dbConfig.Password = os.Getenv("DB_PASSWORD")
		if dbConfig.Password == "" {
			dbConfig.Password = "learntube_dev"
		}

		dbConfig.Name = os.Getenv("DB_NAME")
		if dbConfig.Name == "" {
			dbConfig.Name = "learntube"
		}
	} else {
		dbConfig.SQLitePath = os.Getenv("DB_PATH")
		if dbConfig.SQLitePath == "" {
			dbConfig.SQLitePath = "./learntube.db"
		}
	}

	db, err := database.NewDB(dbConfig)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	if dbType == "postgres" {
		migrationsPath := os.Getenv("MIGRATIONS_PATH")
		if migrationsPath == "" {
			migrationsPath = "./migrations"
		}

		log.Printf("Running database migrations from %s", migrationsPath)
		if err := db.RunMigrations(migrationsPath); err != nil {
			log.Fatal("Failed to run migrations:", err)
		}
	}

	goalRepo := database.NewGoalRepo(db)
	progressRepo := database.NewProgressRepo(db)
	channelRepo := database.NewChannelRepo(db)
	tokenRepo := database.NewTokenRepo(db)

	apiKey := os.Getenv("YOUTUBE_API_KEY")
	ytClient, err := youtube.NewClient(apiKey)
	if err != nil {
		log.Fatal("Failed to initialize YouTube client:", err)
	}

	authManager := auth.NewManager(
		os.Getenv("OAUTH_CLIENT_ID"),
		os.Getenv("OAUTH_CLIENT_SECRET"),
		os.Getenv("OAUTH_REDIRECT_URL"),
		tokenRepo,
	)

	genConfig := pathgen.Config{}

	if maxPathStr := os.Getenv("MAX_PATH_SIZE"); maxPathStr != "" {
		if maxPath, err := strconv.Atoi(maxPathStr); err == nil {
			genConfig.MaxPathSize = maxPath
		}
	}

	if perKeywordStr := os.Getenv("SEARCH_PER_KEYWORD"); perKeywordStr != "" {
		if perKeyword, err := strconv.ParseInt(perKeywordStr, 10, 64); err == nil {
			genConfig.ResultsPerKeyword = perKeyword
		}
	}

	if timeoutStr := os.Getenv("UPSTREAM_CALL_TIMEOUT"); timeoutStr != "" {
		if timeout, err := time.ParseDuration(timeoutStr); err == nil {
			genConfig.CallTimeout = timeout
		}
	}

	generator := pathgen.NewGenerator(ytClient, ytClient, genConfig)

	app := &api.App{
		Generator:     generator,
		Goals:         goalRepo,
		Progress:      progressRepo,
		Channels:      channelRepo,
		Subscriptions: youtube.NewSubscriptionService(authManager),
		Auth:          authManager,
	}

	router := api.NewRouter(app)

	log.Printf("Server starting on port %s", port)
	log.Printf("Database type: %s", dbType)
	if dbType == "postgres" {
		log.Printf("Database connection: %s@%s:%d/%s", dbConfig.User, dbConfig.Host, dbConfig.Port, dbConfig.Name)
	} else {
		log.Printf("Database path: %s", dbConfig.SQLitePath)
	}

	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal(err)
	}
}
