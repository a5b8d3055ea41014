// Command mealpress runs a recipe-and-blog site with the default views.
// All site branding and secrets come from environment variables (a local
// .env file is honored when present).
package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/eringen/mealpress"
	"github.com/eringen/mealpress/views"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	switch cmd {
	case "serve":
		if err := serve(); err != nil {
			log.Fatal(err)
		}
	case "version":
		fmt.Printf("mealpress %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func serve() error {
	// Missing .env is fine; the environment may be set by the supervisor.
	_ = godotenv.Load()

	cfg := mealpress.SiteConfig{
		Name:        mealpress.EnvOr("SITE_NAME", "Mealpress"),
		URL:         strings.TrimSuffix(mealpress.EnvOr("SITE_URL", "http://localhost:3000"), "/"),
		Description: os.Getenv("SITE_DESCRIPTION"),
		Author:      os.Getenv("SITE_AUTHOR"),

		Addr:         mealpress.EnvOr("ADDR", ":3000"),
		ContentDir:   mealpress.EnvOr("CONTENT_DIR", "content"),
		DatabasePath: mealpress.EnvOr("DATABASE_PATH", "data/mealpress.db"),

		AdminUsername:     mealpress.EnvOr("ADMIN_USERNAME", "admin"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		SessionSecret: os.Getenv("SESSION_SECRET"),
		CookieSecure:  strings.EqualFold(os.Getenv("COOKIE_SECURE"), "true"),
		Production:    strings.EqualFold(os.Getenv("ENV"), "production"),
	}
	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return fmt.Errorf("parse SESSION_TTL: %w", err)
		}
		cfg.SessionTTL = d
	}

	app := mealpress.New(cfg, views.Default())
	defer app.Close()
	return app.Start()
}

func printUsage() {
	fmt.Println(`mealpress - a recipe and blog publishing engine

Usage:
  mealpress [command]

Commands:
  serve         Run the site (default)
  version       Print the mealpress version
  help          Show this help message`)
}
