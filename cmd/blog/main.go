package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/urfave/cli/v2"

	"miniblog/cmd/app"
	"miniblog/internal/config"
	"miniblog/internal/database"
	handlers "miniblog/internal/handler"
	"miniblog/internal/middleware"
	"miniblog/internal/service"
)

func main() {
	cliApp := &cli.App{
		Name:           "blog",
		Usage:          "minimal multi-user blog",
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP server",
				Action: runServe,
			},
			{
				Name:   "init-db",
				Usage:  "drop and recreate the database schema",
				Action: runInitDB,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runServe(c *cli.Context) error {
	cfg := config.LoadConfig()

	db, _, services, sessions := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(services, sessions, cfg)

	router := newRouter(handler, db, services)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("Server listening on %s", addr)
	log.Printf("Database: %s", cfg.DatabasePath)

	return http.ListenAndServe(addr, router)
}

// runInitDB destructively (re)creates the schema. It is the only path that
// ever runs the schema script.
func runInitDB(c *cli.Context) error {
	cfg := config.LoadConfig()

	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	defer db.CloseDB()

	if err := db.InitSchema(cfg.MigrationsPath); err != nil {
		return err
	}

	fmt.Println("Initialized the database.")
	return nil
}

func newRouter(h *handlers.Handlers, db *database.DB, services *service.Service) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/hello", h.Hello).Methods(http.MethodGet)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/", h.Index).Methods(http.MethodGet)

	r.HandleFunc("/auth/register", h.Register).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/auth/login", h.Login).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/auth/logout", h.Logout).Methods(http.MethodGet)

	r.HandleFunc("/create", middleware.RequireLogin(h.CreatePost)).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/{id:[0-9]+}/update", middleware.RequireLogin(h.UpdatePost)).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/{id:[0-9]+}/delete", middleware.RequireLogin(h.DeletePost)).Methods(http.MethodPost)

	// innermost to outermost: resolve identity, then the request connection
	// it needs, then logging
	return middleware.Chain(
		r,
		middleware.CurrentUser(services.Auth),
		middleware.RequestConn(db),
		middleware.Logging,
	)
}
