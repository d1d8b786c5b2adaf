package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/platify/platify-core/internal/bootstrap"
	"github.com/platify/platify-core/internal/config"
)

func main() {
	userID := flag.String("user", "", "reset only this user")
	all := flag.Bool("all", false, "reset every stored user")
	clearHistory := flag.Bool("clear-history", false, "also clear recipe history")
	flag.Parse()

	if (*userID == "") == !*all {
		log.Fatal("Exactly one of -user or -all is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("Invalid TIME_ZONE: %v", err)
	}

	ctx := context.Background()
	st, err := bootstrap.OpenStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer st.Close(ctx)

	svc := bootstrap.NewServices(cfg, st, loc)

	users := []string{*userID}
	if *all {
		if users, err = svc.Repo.ListUsers(ctx); err != nil {
			log.Fatalf("Failed to list users: %v", err)
		}
	}

	for _, id := range users {
		if _, err := svc.Stats.ResetMetrics(ctx, id); err != nil {
			log.Fatalf("Failed to reset metrics for %s: %v", id, err)
		}
		if *clearHistory {
			if err := svc.History.Clear(ctx, id); err != nil {
				log.Fatalf("Failed to clear history for %s: %v", id, err)
			}
		}
		log.Printf("Reset %s\n", id)
	}

	fmt.Printf("\n✅ Reset complete for %d user(s)\n", len(users))
}
