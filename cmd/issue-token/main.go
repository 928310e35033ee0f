// Command issue-token mints a session token for an existing account.
//
//	go run ./cmd/issue-token -email dev@example.com
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/forgo/freelancehub/api/internal/config"
	"github.com/forgo/freelancehub/api/internal/repository"
	"github.com/forgo/freelancehub/api/internal/service"
	"github.com/forgo/freelancehub/api/pkg/jwt"
)

func main() {
	_ = godotenv.Load() // load .env if present

	email := flag.String("email", "", "Email of the account to issue a token for (required)")
	outputJSON := flag.Bool("json", false, "Output as JSON")
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "Error: -email is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	if cfg.Database.Driver == config.DriverMemory {
		fmt.Fprintln(os.Stderr, "Error: DB_DRIVER=memory has no persisted accounts")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	backend, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = backend.Close() }()

	account, err := backend.Accounts.GetByEmail(ctx, service.NormalizeEmail(*email))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error looking up account: %v\n", err)
		os.Exit(1)
	}
	if account == nil {
		fmt.Fprintf(os.Stderr, "Error: no account registered for %s\n", *email)
		os.Exit(1)
	}

	codec, err := jwt.NewCodec(cfg.JWT.Codec())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating token codec: %v\n", err)
		os.Exit(1)
	}

	token, claims, err := codec.Mint(account.Email)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	if *outputJSON {
		output := map[string]any{
			"access_token": token,
			"token_type":   "bearer",
			"expires_in":   int(codec.TTL().Seconds()),
			"expires_at":   claims.ExpiresAt.UTC().Format(time.RFC3339),
			"account_id":   account.ID,
			"email":        account.Email,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(output)
		return
	}

	fmt.Println("Token Issued")
	fmt.Println("============")
	fmt.Printf("Account:  %s\n", account.ID)
	fmt.Printf("Email:    %s\n", account.Email)
	fmt.Printf("Expires:  %s\n", claims.ExpiresAt.UTC().Format(time.RFC3339))
	fmt.Println()
	fmt.Println("Token:")
	fmt.Println(token)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  curl -H 'Authorization: Bearer %s' http://localhost:%s/v1/auth/me\n", token, cfg.Server.Port)
}
