package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/skillsync-hq/skillsync-backend/internal/config"
	"github.com/skillsync-hq/skillsync-backend/internal/database"
	"github.com/skillsync-hq/skillsync-backend/internal/handlers"
	"github.com/skillsync-hq/skillsync-backend/internal/repository"
	"github.com/skillsync-hq/skillsync-backend/internal/routes"
	"github.com/skillsync-hq/skillsync-backend/internal/services"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	// Connect to MongoDB
	log.Printf("Connecting to MongoDB...")
	mongoClient, db, err := database.ConnectMongo(cfg.MongoURI)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.DisconnectMongo(mongoClient)

	// Unique email index per principal collection
	indexCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := database.EnsureAuthIndexes(indexCtx, db); err != nil {
		cancel()
		log.Fatal("Failed to ensure auth indexes:", err)
	}
	cancel()
	log.Println("✅ Auth indexes ensured")

	// Connect to Redis (OAuth login state)
	log.Printf("Connecting to Redis...")
	redisClient, err := database.ConnectRedis(cfg.RedisURI)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	// Outbound mail
	mailer, err := services.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SenderEmail)
	if err != nil {
		log.Fatal("Failed to configure SMTP mailer:", err)
	}

	// Wire up services and handlers
	students := repository.NewMongoStudentStore(db)
	companies := repository.NewMongoCompanyStore(db)
	tokens := services.NewTokenService(cfg.StudentTokenSecret, cfg.CompanyTokenSecret, cfg.IsProduction())
	mail := services.NewMailService(mailer, cfg.ClientURL)
	states := services.NewOAuthStateStore(redisClient)

	auth := handlers.NewAuthHandler(students, companies, tokens, mail)
	oauth := handlers.NewOAuthHandler(cfg, students, tokens, states)

	// Setup router
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r, auth, oauth, tokens)

	log.Printf("🚀 SkillSync backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
