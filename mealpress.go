// Package mealpress is a recipe and blog publishing engine built with Go,
// Echo, and templ. It serves the public site, a small admin area, a JSON
// publishing API, image upload, comments, and a newsletter-subscribe
// endpoint.
//
// Users provide their own templ components via the ViewFuncs struct, and
// mealpress handles handler logic, middleware, and storage.
package mealpress

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// ViewFuncs holds user-provided templ components that the engine calls
// when rendering pages. This is the inversion-of-control mechanism that
// lets users own and customize all templates.
type ViewFuncs struct {
	Home           func(recipes, posts []ContentRecord, cfg SiteConfig) templ.Component
	Recipe         func(rec ContentRecord, cfg SiteConfig) templ.Component
	Post           func(rec ContentRecord, cfg SiteConfig) templ.Component
	AdminLogin     func(cfg SiteConfig) templ.Component
	AdminDashboard func(recipes, posts []ContentRecord, cfg SiteConfig) templ.Component
	NotFound       func(cfg SiteConfig) templ.Component
	ServerError    func(cfg SiteConfig) templ.Component
}

// App is the central mealpress application. It wires together the stores,
// cache, token service, handlers, middleware, and user templates.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Content  ContentStore
	Data     *DataStore
	Cache    *ContentCache
	Tokens   *TokenService
	Comments CommentStore
	Views    ViewFuncs

	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	staticDir    string
}

// New creates a mealpress App with the given configuration and views.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes storage, cache, middleware, and routes, then runs the
// server until it shuts down.
func (a *App) Start() error {
	if err := a.bootstrap(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// bootstrap wires everything short of listening. Split from Start so
// tests can drive the full handler stack through httptest.
func (a *App) bootstrap() error {
	if a.Config.SessionSecret == "" {
		a.Config.SessionSecret = DevSessionSecret
	}
	if a.Config.SessionSecret == DevSessionSecret {
		if a.Config.Production {
			return fmt.Errorf("mealpress: refusing to start in production with the fallback session secret; set SessionSecret")
		}
		log.Printf("WARNING: running with the fallback session secret; tokens are forgeable. Set SessionSecret before exposing this server.")
	}
	if a.Config.AdminPasswordHash == "" && a.Config.AdminPassword == "" {
		a.Config.AdminPassword = "admin"
	}
	if a.Config.AdminPasswordHash == "" && a.Config.AdminPassword == "admin" {
		log.Printf("WARNING: admin password is the default %q; change it before exposing this server.", "admin")
	}

	content, err := NewFileStore(a.Config.ContentDir)
	if err != nil {
		return fmt.Errorf("mealpress: init content store: %w", err)
	}
	a.Content = content

	data, err := NewDataStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("mealpress: init data store: %w", err)
	}
	a.Data = data

	a.Cache = NewContentCache(content, a.Config.CacheTTL)
	if err := a.Cache.Watch(content.KindDir(KindRecipe), content.KindDir(KindPost)); err != nil {
		return fmt.Errorf("mealpress: watch content dirs: %w", err)
	}

	a.Tokens = NewTokenService([]byte(a.Config.SessionSecret), a.Config.SessionTTL, a.Config.CookieSecure)
	a.loginLimiter = NewLoginLimiter(5, loginWindow)

	if a.Comments == nil {
		a.Comments = NewMemoryComments()
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Public pages.
	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/recipes/:slug/", a.handleRecipe)
	e.GET("/blog/:slug/", a.handleBlogPost)
	e.GET("/admin/", a.handleAdminPage)

	// JSON API.
	api := e.Group("/api")
	api.POST("/login", a.handleLogin)
	api.POST("/admin/logout", a.handleLogout)
	api.GET("/admin/logout", a.handleLogout)
	api.POST("/newsletter/subscribe", a.handleNewsletterSubscribe)
	api.POST("/comments", a.handleCommentCreate)
	api.GET("/comments", a.handleCommentList)

	// Every content mutation sits behind the same auth gate.
	gated := api.Group("", a.requireAuth)
	gated.POST("/recipes", a.handleRecipeCreate)
	gated.POST("/blog", a.handlePostCreate)
	gated.POST("/admin/recipes/delete", a.handleRecipeDelete)
	gated.POST("/admin/blog/delete", a.handlePostDelete)
	gated.POST("/upload", a.handleImageUpload)
	gated.GET("/admin/images", a.handleImageList)
	gated.DELETE("/admin/images/:filename", a.handleImageDelete)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Cache != nil {
		a.Cache.Close()
	}
	if a.Data != nil {
		return a.Data.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("mealpress: required environment variable %s is not set", key)
	}
	return v
}
