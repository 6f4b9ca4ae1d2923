package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/rogerio-castellano/kiosco-pos/internal/auth"
	"github.com/rogerio-castellano/kiosco-pos/internal/config"
	"github.com/rogerio-castellano/kiosco-pos/internal/db"
	api "github.com/rogerio-castellano/kiosco-pos/internal/http"
	"github.com/rogerio-castellano/kiosco-pos/internal/http/handlers"
	rl "github.com/rogerio-castellano/kiosco-pos/internal/http/rate_limiter"
	"github.com/rogerio-castellano/kiosco-pos/internal/models"
	"github.com/rogerio-castellano/kiosco-pos/internal/redissvc"
	"github.com/rogerio-castellano/kiosco-pos/internal/repo"
)

// @title Kiosco POS API
// @version 1.0
// @description Point-of-sale and kitchen-order coordination API for a kiosk.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	auth.SetSecret([]byte(cfg.JWTSecret))

	ctx := context.Background()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Redis unavailable, product cache and refresh tokens fall back to memory: %v", err)
	} else {
		redisService := redissvc.NewRedisService(rdb, ctx)
		handlers.SetRedisService(redisService)
		auth.SetRedisService(redisService)
	}

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Could not connect to database:", err)
	}
	defer database.Close()

	handlers.SetProductRepo(repo.NewPostgresProductRepository(database))
	handlers.SetSaleRepo(repo.NewPostgresSaleRepository(database))
	handlers.SetTicketRepo(repo.NewPostgresTicketRepository(database))
	userRepo := repo.NewPostgresUserRepository(database)
	handlers.SetUserRepo(userRepo)

	if err := bootstrapAdmin(userRepo, cfg.AdminPassword); err != nil {
		log.Fatal("❌ Could not bootstrap admin user:", err)
	}

	go rl.StartVisitorCleanupLoop()

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: api.NewRouter()}
	go func() {
		log.Printf("✅ Server running on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

// bootstrapAdmin creates the initial admin account so write endpoints are
// never left unguarded on a fresh install.
func bootstrapAdmin(users repo.UserRepository, password string) error {
	_, err := users.GetByUsername("admin")
	if err == nil {
		return nil
	}
	if !errors.Is(err, repo.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = users.CreateUser(models.User{
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         "admin",
	})
	if err != nil {
		return err
	}
	log.Println("✅ Bootstrapped admin user")
	return nil
}
