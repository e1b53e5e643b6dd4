package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"budgettool/collections"
	"budgettool/commands"
	"budgettool/config"
	"budgettool/handlers"
	"budgettool/metrics"
	"budgettool/services"
	"budgettool/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg, err := config.Load(os.Getenv("BUDGET_CONFIG"))
	if err != nil {
		log.Fatal(err)
	}

	app := pocketbase.New()
	letterhead := services.Letterhead{Name: cfg.Company.Name, Subtitle: cfg.Company.Subtitle}
	app.RootCmd.AddCommand(commands.NewCalcCommand(letterhead))

	var gateway store.Gateway

	// Create the schema, pick the storage backend and prepare data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)

		switch cfg.Storage.Backend {
		case config.BackendPostgres:
			pg, err := store.OpenPostgres(context.Background(), cfg.Postgres.DSN, app.Logger())
			if err != nil {
				return fmt.Errorf("open postgres: %w", err)
			}
			app.OnTerminate().BindFunc(func(te *core.TerminateEvent) error {
				pg.Close()
				return te.Next()
			})
			gateway = pg
		default:
			if err := collections.MigrateLegacyBudgets(app); err != nil {
				log.Printf("Warning: legacy budget migration failed: %v", err)
			}
			if err := collections.Seed(app); err != nil {
				log.Printf("Warning: seed data failed: %v", err)
			}
			gateway = store.NewPocketBase(app)
		}
		gateway = metrics.InstrumentGateway(gateway)

		app.Logger().Info("budget storage ready", "backend", cfg.Storage.Backend, "env", cfg.App.Env)
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.BindFunc(handlers.ActorMiddleware())

		// ── Budget API ───────────────────────────────────────────
		se.Router.GET("/api/budgets", handlers.HandleBudgetList(app, gateway))
		se.Router.POST("/api/budgets", handlers.HandleBudgetCreate(app, gateway))
		se.Router.GET("/api/budgets/new", handlers.HandleBudgetNew())
		se.Router.POST("/api/budgets/preview", handlers.HandleBudgetPreview())
		se.Router.GET("/api/budgets/{id}", handlers.HandleBudgetView(app, gateway))
		se.Router.PUT("/api/budgets/{id}", handlers.HandleBudgetUpdate(app, gateway))
		se.Router.DELETE("/api/budgets/{id}", handlers.HandleBudgetDelete(app, gateway))
		se.Router.POST("/api/budgets/{id}/actions", handlers.HandleBudgetAction(app, gateway))

		// ── Exports and summary page ─────────────────────────────
		se.Router.GET("/api/budgets/{id}/export/{format}", handlers.HandleBudgetExport(app, gateway, letterhead))
		se.Router.GET("/budgets/{id}/summary", handlers.HandleBudgetSummary(app, gateway, letterhead))

		if cfg.Metrics.Enabled {
			se.Router.GET("/metrics", apis.WrapStdHandler(promhttp.Handler()))
		}

		// Redirect home to the budget list
		se.Router.GET("/{$}", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/api/budgets")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
