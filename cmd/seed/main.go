package main

import (
	"context"
	"flag"
	"log"

	"github.com/brianvoe/gofakeit/v7"

	"mockchat/config"
	"mockchat/db"
	"mockchat/services"
)

// Dev utility: fills the store with random accounts and message pairs so the
// list/search endpoints have something to show.
func main() {
	var configPath string
	var accounts, messages int
	flag.StringVar(&configPath, "config", "config.yaml", "Path to the configuration file")
	flag.IntVar(&accounts, "accounts", 5, "Number of random accounts to create")
	flag.IntVar(&messages, "messages", 50, "Number of message pairs to create")
	flag.Parse()

	if err := config.LoadConfig(configPath); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	database, err := db.Connect(&config.AppConfig)
	if err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}
	if err := db.EnsureReservedAccounts(database); err != nil {
		log.Fatalf("Failed to seed reserved accounts: %v", err)
	}

	ctx := context.Background()
	accountService := services.NewAccountService(database)
	messageService := services.NewMessageService(database, services.RandomReplySource{})

	identifiers := []string{"A", "B"}
	for i := 0; i < accounts; i++ {
		acct, err := accountService.Create(ctx, gofakeit.Name(), "")
		if err != nil {
			log.Fatalf("Failed to create account: %v", err)
		}
		identifiers = append(identifiers, acct.Identifier)
	}

	for i := 0; i < messages; i++ {
		user := identifiers[gofakeit.Number(0, len(identifiers)-1)]
		if _, err := messageService.Create(ctx, user, gofakeit.Sentence(8), ""); err != nil {
			log.Fatalf("Failed to create message: %v", err)
		}
	}

	log.Printf("Seeded %d accounts and %d message pairs", accounts, messages)
}
