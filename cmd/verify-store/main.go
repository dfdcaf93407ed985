// verify-store is a one-shot smoke check for the configured KV backend.
// It writes and reads back a probe key in each namespace, then lists keys.
//
// Usage: go run ./cmd/verify-store
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"challan-ledger/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	backend := strings.ToLower(strings.TrimSpace(os.Getenv("CHALLAN_STORE")))
	var kv store.KV
	switch backend {
	case "", "postgres":
		pg, err := store.NewPostgres(ctx)
		if err != nil {
			log.Fatalf("[CONNECT] failed: %v", err)
		}
		defer pg.Close()
		kv = pg
	case "redis":
		r, err := store.NewRedis(ctx)
		if err != nil {
			log.Fatalf("[CONNECT] failed: %v", err)
		}
		defer r.Close()
		kv = r
	case "memory":
		kv = store.NewMemory()
	default:
		log.Fatalf("[CONNECT] unknown CHALLAN_STORE backend: %q", backend)
	}
	log.Println("[CONNECT] success")

	namespaces := []store.Namespace{store.NamespaceDaily, store.NamespaceMonthly, store.NamespaceRoster}
	probeKey := fmt.Sprintf("__verify__%d", time.Now().UnixNano())

	for _, ns := range namespaces {
		if err := kv.Put(ctx, ns, probeKey, "ok"); err != nil {
			log.Fatalf("[PUT] %s failed: %v", ns, err)
		}
		value, found, err := kv.Get(ctx, ns, probeKey)
		if err != nil {
			log.Fatalf("[GET] %s failed: %v", ns, err)
		}
		if !found || value != "ok" {
			log.Fatalf("[GET] %s: probe key did not round-trip (found=%v, value=%q)", ns, found, value)
		}
		keys, err := kv.Keys(ctx, ns)
		if err != nil {
			log.Fatalf("[KEYS] %s failed: %v", ns, err)
		}
		log.Printf("[OK] %s: round-trip verified, %d key(s) present", ns, len(keys))
	}

	log.Println("[DONE] All namespaces verified.")
}
