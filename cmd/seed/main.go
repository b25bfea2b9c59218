package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/awalczyk/libris/config"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	subscribers := []struct {
		email string
		name  string
	}{
		{"anna@example.com", "Anna"},
		{"marek@example.com", "Marek"},
		{"zofia@example.com", "Zofia"},
	}

	ids := make(map[string]string, len(subscribers))
	for _, s := range subscribers {
		var id string
		err := db.QueryRow(`
			INSERT INTO subscribers (email, name, verified)
			VALUES ($1, $2, true)
			ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, s.email, s.name).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed subscriber %s: %v", s.email, err)
		}
		ids[s.email] = id
		fmt.Printf("seeded subscriber: id=%s email=%s\n", id, s.email)
	}

	subscriptions := []struct {
		email string
		kind  string
		value string
	}{
		{"anna@example.com", "CATEGORY", "Fantasy"},
		{"anna@example.com", "AUTHOR", "Stanislaw Lem"},
		{"marek@example.com", "CATEGORY", "Science Fiction"},
		{"zofia@example.com", "AUTHOR", "Olga Tokarczuk"},
	}
	for _, s := range subscriptions {
		if _, err := db.Exec(`
			INSERT INTO subscriptions (subscriber_id, type, value)
			VALUES ($1, $2, $3)
			ON CONFLICT (subscriber_id, type, value) DO NOTHING
		`, ids[s.email], s.kind, s.value); err != nil {
			log.Fatalf("failed to seed subscription: %v", err)
		}
	}
	fmt.Println("seeded subscriptions")

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	books := []struct {
		title    string
		author   string
		category string
		pages    int
	}{
		{"Solaris", "Stanislaw Lem", "Science Fiction", 204},
		{"The Books of Jacob", "Olga Tokarczuk", "Historical Fiction", 912},
		{"The Witcher: The Last Wish", "Andrzej Sapkowski", "Fantasy", 288},
	}
	for _, b := range books {
		if _, err := db.Exec(`
			INSERT INTO books (title, author, category, page_count, added_date)
			VALUES ($1, $2, $3, $4, $5)
		`, b.title, b.author, b.category, b.pages, yesterday); err != nil {
			log.Fatalf("failed to seed book %s: %v", b.title, err)
		}
	}
	fmt.Printf("seeded %d books with added_date=%s\n", len(books), yesterday)
}
