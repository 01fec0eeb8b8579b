package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/socialchef/cookmate/internal/middleware"
)

// Prints a session cookie value for poking the JSON API with curl:
//
//	curl -b "cookmate_session=$(go run scripts/generate-session.go)" localhost:8080/api/state
func main() {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "Error: SESSION_SECRET environment variable must be set")
		fmt.Fprintln(os.Stderr, "Usage: SESSION_SECRET=secret go run scripts/generate-session.go [session-id]")
		os.Exit(1)
	}

	issuer := os.Getenv("SERVICE_NAME")
	if issuer == "" {
		issuer = "cookmate"
	}

	sessionID := uuid.NewString()
	if len(os.Args) > 1 {
		sessionID = os.Args[1]
	}

	tokens := middleware.NewSessionTokens(secret, issuer, time.Hour)
	token, err := tokens.Issue(sessionID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
