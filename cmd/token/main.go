package main

import (
	"fmt"
	"log"
	"os"

	"github.com/seanblong/transcriptsearch/internal/auth"
	"github.com/seanblong/transcriptsearch/internal/config"
	"github.com/spf13/pflag"
)

// token prints a bearer token accepted by the api when auth is enabled.
func main() {
	fs := pflag.NewFlagSet("transcriptsearch-token", pflag.ExitOnError)
	subject := fs.String("subject", "frontend", "Subject recorded in the token")

	cfg, err := config.Load("", fs, os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	fs.Usage = cfg.Usage

	gate := auth.NewGate(cfg.Auth.JwtSecret, cfg.Auth.TokenTTL, true)
	token, err := gate.Issue(*subject)
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}
	fmt.Println(token)
}
