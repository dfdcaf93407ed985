package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"challan-ledger/internal/adapters/cli"
	"challan-ledger/internal/adapters/repl"
	"challan-ledger/internal/ai"
	"challan-ledger/internal/app"
	"challan-ledger/internal/logging"
	"challan-ledger/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	logger := logging.New()

	kv, cleanup, err := openStore(ctx)
	if err != nil {
		log.Fatalf("Unable to open store: %v", err)
	}
	defer cleanup()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Println("Warning: OPENAI_API_KEY is not set. AI intake is disabled.")
	}
	var agent *ai.Agent
	if apiKey != "" {
		agent = ai.NewAgent(apiKey)
	}

	svc := app.NewAppService(kv, agent, logger)

	if len(os.Args) > 1 {
		cli.Run(ctx, svc, os.Args[1:])
		return
	}

	repl.Run(ctx, svc, bufio.NewReader(os.Stdin))
}

// openStore selects the storage backend from CHALLAN_STORE: "postgres"
// (default), "redis", or "memory". The cleanup func closes whatever was
// opened.
func openStore(ctx context.Context) (store.KV, func(), error) {
	backend := strings.ToLower(strings.TrimSpace(os.Getenv("CHALLAN_STORE")))

	switch backend {
	case "", "postgres":
		pg, err := store.NewPostgres(ctx)
		if err != nil {
			return nil, nil, err
		}
		return pg, pg.Close, nil
	case "redis":
		r, err := store.NewRedis(ctx)
		if err != nil {
			return nil, nil, err
		}
		return r, func() { _ = r.Close() }, nil
	case "memory":
		return store.NewMemory(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown CHALLAN_STORE backend: %q", backend)
	}
}
