// Command storeit-session issues a session token for an existing account.
// The token goes into the storeit-session cookie or a bearer header.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/supanut9/store-it/internal"
	"github.com/supanut9/store-it/internal/domain/account"
	"github.com/supanut9/store-it/internal/infrastructure/backend"
)

func main() {
	accountID := flag.String("account", "", "account id the session is issued for")
	email := flag.String("email", "", "email of the account")
	flag.Parse()

	if *accountID == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := internal.LoadConfig(logger)
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	admin, err := backend.NewFactory(cfg.Backend, nil, nil).NewAdminClient()
	if err != nil {
		logger.Fatal("failed to create admin client", zap.Error(err))
	}

	token, err := admin.Account().CreateSession(context.Background(), account.Account{ID: *accountID, Email: *email})
	if err != nil {
		logger.Fatal("failed to create session", zap.Error(err))
	}

	fmt.Println(token)
}
