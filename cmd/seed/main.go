// seed inserts a demo user and a batch of todos into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/taskforge/todo-service/internal/infrastructure/postgres"
	"golang.org/x/crypto/bcrypt"
)

const (
	seedName     = "Seed User"
	seedEmail    = "seed@test.local"
	seedPassword = "seed1234"
)

var todos = []struct {
	title       string
	description string
}{
	{"Buy milk", "2%"},
	{"Water the plants", "Balcony first, then the kitchen ones"},
	{"Renew passport", "Appointment at 9:30, bring old passport and photos"},
	{"Write project update", "Summary of the week for the team channel"},
	{"Fix bike brakes", "Front pads are worn, order replacements"},
	{"Call the dentist", "Reschedule the cleaning"},
	{"Read chapter 4", "Notes due before Thursday's discussion"},
	{"Plan weekend trip", "Check train times and book a room"},
	{"Clean the garage", "Sort boxes, drop donations off"},
	{"Back up laptop", "Full backup to the external drive"},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}

	if err := postgres.Migrate(ctx, dbURL); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	// Upsert demo user
	var userID int64
	err = pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`,
		seedName, seedEmail, string(hash),
	).Scan(&userID)
	if err != nil {
		log.Fatalf("upsert seed user: %v", err)
	}

	for _, t := range todos {
		_, err := pool.Exec(ctx, `
			INSERT INTO todos (title, description, user_id)
			VALUES ($1, $2, $3)`,
			t.title, t.description, userID,
		)
		if err != nil {
			log.Fatalf("insert todo %q: %v", t.title, err)
		}
	}

	fmt.Printf("seeded user %s (id=%d, password %q) with %d todos\n",
		seedEmail, userID, seedPassword, len(todos))
}
