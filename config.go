package mealpress

import "time"

// DevSessionSecret is the fallback signing secret used when none is
// configured. It is public knowledge and therefore unsafe anywhere but a
// local development machine; Start refuses to boot with it in production
// mode.
const DevSessionSecret = "mealpress-dev-secret-not-for-production"

// SiteConfig holds all configuration for a mealpress site.
type SiteConfig struct {
	Name        string // Site name (default "Mealpress")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Default author for new records

	Addr         string // Listen address (default ":3000")
	ContentDir   string // Root of the per-kind record directories (default "content")
	DatabasePath string // SQLite path for images + subscribers (default "data/mealpress.db")

	AdminUsername     string // Admin login name (default "admin")
	AdminPassword     string // Plaintext admin password (default "admin", dev only)
	AdminPasswordHash string // Optional bcrypt hash; takes precedence over AdminPassword

	SessionSecret string        // Token signing secret; falls back to DevSessionSecret
	SessionTTL    time.Duration // Token validity window (default 12h)
	CookieSecure  bool          // Set true for HTTPS
	Production    bool          // Refuse insecure fallbacks when set

	CacheTTL time.Duration // Published-content cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Mealpress"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/mealpress.db"
	}
	if c.AdminUsername == "" {
		c.AdminUsername = "admin"
	}
	if c.SessionTTL == 0 {
		c.SessionTTL = 12 * time.Hour
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = 5 * time.Minute
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs after the built-in routes, before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithCommentStore injects a CommentStore implementation, replacing the
// default in-memory one. Tests use this to supply an isolated instance.
func WithCommentStore(store CommentStore) Option {
	return func(a *App) {
		a.Comments = store
	}
}
