// Command tokengen mints a signed JWT for a given user ID so the API can be
// exercised locally. Token issuing in production belongs to the external
// identity provider; this tool only mirrors its signing contract.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/10xdevs/task-manager-api/internal/config"
	"github.com/10xdevs/task-manager-api/internal/service/auth"
)

func main() {
	userFlag := flag.String("user", "", "user UUID to mint a token for (random when empty)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	userID := uuid.New()
	if *userFlag != "" {
		userID, err = uuid.Parse(*userFlag)
		if err != nil {
			log.Fatalf("invalid user UUID %q: %v", *userFlag, err)
		}
	}

	tokenService, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		log.Fatalf("failed to create token service: %v", err)
	}

	token, err := tokenService.GenerateToken(context.Background(), userID)
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}

	fmt.Printf("User ID: %s\n", userID)
	fmt.Printf("Token:   %s\n", token)
	fmt.Printf("\nAuthorization: Bearer %s\n", token)
}
