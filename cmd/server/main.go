package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/vncsmyrnk/ballot/internal/adapters/handler/http"
	"github.com/vncsmyrnk/ballot/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/ballot/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/ballot/internal/adapters/repository/redis"
	"github.com/vncsmyrnk/ballot/internal/core/ports"
	"github.com/vncsmyrnk/ballot/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, cleanup, err := buildEntityStore(ctx)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	ledger := services.NewVoteLedger(store)
	handler := http.NewHandler(
		http.NewVoteHandler(services.NewSubmissionService(ledger)),
		http.NewResultsHandler(services.NewTallyService(ledger)),
		http.NewHealthHandler(ledger),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	server := &stdhttp.Server{Addr: "0.0.0.0:" + port, Handler: handler}

	go func() {
		log.Printf("Voting service listening on port %s", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}

func buildEntityStore(ctx context.Context) (ports.EntityStore, func(), error) {
	switch driver := os.Getenv("STORAGE_DRIVER"); driver {
	case "postgres":
		db, err := sql.Open("postgres", dbConnString())
		if err != nil {
			return nil, nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return postgres.NewVoteRepository(db), func() { db.Close() }, nil
	case "redis":
		repo, err := redis.NewVoteRepository(ctx, os.Getenv("REDIS_URL"))
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { repo.Close() }, nil
	case "":
		log.Println("STORAGE_DRIVER not set, running in demo mode without durable storage")
		return memory.NewNullStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown STORAGE_DRIVER %q", driver)
	}
}

func dbConnString() string {
	dbName := os.Getenv("POSTGRES_DB")
	user := os.Getenv("POSTGRES_USER")
	password := os.Getenv("POSTGRES_PASSWORD")
	host := os.Getenv("POSTGRES_HOST")
	port := os.Getenv("POSTGRES_PORT")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbName)
}
