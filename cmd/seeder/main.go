package main

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/tursodatabase/libsql-client-go/libsql"

	"github.com/ligadomingo/roster-link/internal/playerid"
	"github.com/ligadomingo/roster-link/internal/roster"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	required := []string{"TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"}

	for _, key := range required {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	return config
}

// seedPlayer is one row of the admin import fixture.
type seedPlayer struct {
	Name      string
	Email     string
	BirthDate string
	Position  string
}

var seedPlayers = []seedPlayer{
	{Name: "Rafael Costa", Email: "rafael.costa@example.com", BirthDate: "1991-03-07", Position: "atacante"},
	{Name: "Bruno Lima", Email: "bruno.lima@example.com", BirthDate: "1988-11-21", Position: "zagueiro"},
	{Name: "Carlos Souza", Email: "carlos.souza@example.com", BirthDate: "1995-06-14", Position: "goleiro"},
	{Name: "Diego Martins", Email: "diego.martins@example.com", BirthDate: "1993-01-30", Position: "meia"},
	{Name: "Eduardo Alves", Email: "eduardo.alves@example.com", BirthDate: "1990-09-02", Position: "lateral"},
	{Name: "Felipe Rocha", Email: "felipe.rocha@example.com", BirthDate: "1997-04-18", Position: "volante"},
	{Name: "Gustavo Pinto", Email: "gustavo.pinto@example.com", BirthDate: "1992-12-09", Position: "atacante"},
	{Name: "Henrique Dias", Email: "henrique.dias@example.com", BirthDate: "1989-07-25", Position: "zagueiro"},
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	// Connect directly to the primary database
	dbURL := fmt.Sprintf("%s?authToken=%s", cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	db, err := sql.Open("libsql", dbURL)
	if err != nil {
		log.Fatalf("Failed to open primary database: %s", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to primary database: %s", err)
	}

	log.Info("Successfully connected to the primary database.")
	log.Info("Preparing to insert admin player profiles...", "total", len(seedPlayers))
	startTime := time.Now()

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	valueStrings := make([]string, 0, len(seedPlayers))
	valueArgs := make([]interface{}, 0, len(seedPlayers)*11)

	for _, p := range seedPlayers {
		token := uuid.NewString()
		valueStrings = append(valueStrings, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		valueArgs = append(valueArgs,
			uuid.NewString(),
			playerid.Derive(p.Email, p.BirthDate),
			p.Name,
			p.Email,
			p.BirthDate,
			p.Position,
			roster.StatusAtivo,
			token,
			1, // is_player
			1, // created_by_admin
			time.Now().Unix(),
		)
		log.Info("Issued claim token", "player", p.Name, "token", token)
	}

	stmt := fmt.Sprintf(`
		INSERT OR IGNORE INTO profiles (id, player_id, name, email, birth_date, position,
			status, claim_token, is_player, created_by_admin, created_at)
		VALUES %s;`, strings.Join(valueStrings, ","))

	if _, err := tx.Exec(stmt, valueArgs...); err != nil {
		tx.Rollback()
		log.Fatalf("Failed to execute batch insert: %s", err)
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %s", err)
	}

	duration := time.Since(startTime)
	log.Info("Successfully inserted admin player profiles.", "duration", duration)
}
