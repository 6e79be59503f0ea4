package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/vncsmyrnk/ballot/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/ballot/internal/core/services"
)

// Prints the current tally straight from the database. Useful for checking
// results without going through the HTTP surface.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	var dbHost, dbPort, dbUser, dbPass, dbName string

	flag.StringVar(&dbHost, "db-host", os.Getenv("POSTGRES_HOST"), "Database host")
	flag.StringVar(&dbPort, "db-port", os.Getenv("POSTGRES_PORT"), "Database port")
	flag.StringVar(&dbUser, "db-user", os.Getenv("POSTGRES_USER"), "Database user")
	flag.StringVar(&dbPass, "db-pass", os.Getenv("POSTGRES_PASSWORD"), "Database password")
	flag.StringVar(&dbName, "db-name", os.Getenv("POSTGRES_DB"), "Database name")
	flag.Parse()

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPass, dbHost, dbPort, dbName)
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	ledger := services.NewVoteLedger(postgres.NewVoteRepository(db))
	tallyService := services.NewTallyService(ledger)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	tally, err := tallyService.Compute(ctx)
	if err != nil {
		log.Fatalf("Error computing tally: %v", err)
	}

	for option, count := range tally.Counts {
		fmt.Printf("%s: %d\n", option, count)
	}
	if tally.Unrecognized > 0 {
		fmt.Printf("unrecognized: %d\n", tally.Unrecognized)
	}
	fmt.Printf("total: %d\n", tally.Total)
}
