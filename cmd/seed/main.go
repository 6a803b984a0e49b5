// Command seed writes synthetic interaction events through the ingestion
// path, for local development and load exploration.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	eventsRepoPg "github.com/prashsamosa/web-analytics-service/internal/events/adapters/postgres"
	eventsUsecase "github.com/prashsamosa/web-analytics-service/internal/events/core/usecase"
	"github.com/prashsamosa/web-analytics-service/internal/platform/config"
	"github.com/prashsamosa/web-analytics-service/internal/platform/logger"
)

var pages = []struct {
	URL   string
	Title string
}{
	{"https://example.com/home", "Home - Analytics Service"},
	{"https://example.com/about", "About Us"},
	{"https://example.com/products", "Our Products"},
	{"https://example.com/pricing", "Pricing Plans"},
	{"https://example.com/blog", "Blog - Latest Updates"},
	{"https://example.com/docs", "Documentation"},
	{"https://example.com/support", "Support Center"},
	{"https://example.com/login", "Login"},
	{"https://example.com/dashboard", "Dashboard"},
	{"https://example.com/settings", "Settings"},
}

var clickTargets = []struct {
	ElementID string
	Text      string
}{
	{"submit-btn", "Submit"},
	{"nav-home", "Home"},
	{"cta-button", "Get Started"},
	{"download-btn", "Download"},
	{"signup-btn", "Sign Up"},
	{"login-btn", "Log In"},
	{"menu-toggle", "Menu"},
	{"search-btn", "Search"},
}

func randomPayload(rng *rand.Rand, eventType string) json.RawMessage {
	switch eventType {
	case "view":
		page := pages[rng.Intn(len(pages))]
		b, _ := json.Marshal(map[string]any{"url": page.URL, "title": page.Title})
		return b
	case "click":
		target := clickTargets[rng.Intn(len(clickTargets))]
		b, _ := json.Marshal(map[string]any{
			"element_id": target.ElementID,
			"text":       target.Text,
			"xpath":      fmt.Sprintf("//*[@id=%q]", target.ElementID),
		})
		return b
	default: // location
		b, _ := json.Marshal(map[string]any{
			"latitude":  -90 + rng.Float64()*180,
			"longitude": -180 + rng.Float64()*360,
			"accuracy":  rng.Float64() * 100,
		})
		return b
	}
}

// randomEventType picks a type with view-heavy weighting, roughly
// mirroring real traffic.
func randomEventType(rng *rand.Rand) string {
	switch r := rng.Float64(); {
	case r < 0.6:
		return "view"
	case r < 0.9:
		return "click"
	default:
		return "location"
	}
}

func main() {
	count := flag.Int("count", 1000, "number of events to generate")
	users := flag.Int("users", 50, "number of distinct users")
	days := flag.Int("days", 30, "spread timestamps over this many past days")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger.Init(cfg.LogLevel)

	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open postgres")
	}
	defer db.Close()

	eventsDB := eventsRepoPg.NewSQLDB(db)
	if err := eventsRepoPg.EnsureSchema(context.Background(), eventsDB); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure schema")
	}

	repo := eventsRepoPg.NewEventRepository(eventsDB)
	ingestUC := eventsUsecase.NewIngestEventUseCase(repo)

	if *days < 1 {
		*days = 1
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	window := time.Duration(*days) * 24 * time.Hour
	now := time.Now().UTC()

	ctx := context.Background()
	for i := 0; i < *count; i++ {
		eventType := randomEventType(rng)
		ts := now.Add(-time.Duration(rng.Int63n(int64(window))))

		_, err := ingestUC.Execute(ctx, eventsUsecase.SubmitEventInput{
			UserID:    fmt.Sprintf("user_%03d", rng.Intn(*users)+1),
			EventType: eventType,
			Payload:   randomPayload(rng, eventType),
			Timestamp: &ts,
		})
		if err != nil {
			log.Fatal().Err(err).Int("generated", i).Msg("seeding failed")
		}
	}

	log.Info().Int("count", *count).Msg("seeding complete")
}
