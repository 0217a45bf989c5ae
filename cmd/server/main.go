package main

import (
	"net/http"

	"github.com/sahanip/batchcost/pkg/application/snapshot"
	"github.com/sahanip/batchcost/pkg/domain/repositories"
	"github.com/sahanip/batchcost/pkg/infrastructure/config"
	"github.com/sahanip/batchcost/pkg/infrastructure/db"
	"github.com/sahanip/batchcost/pkg/infrastructure/repositories/scenario"
	"github.com/sahanip/batchcost/pkg/infrastructure/repositories/sqlite"
	"github.com/sahanip/batchcost/pkg/interfaces/httpapi"
)

func main() {
	cfg := config.Load()
	log := cfg.NewLogger()

	var loader *snapshot.Loader
	var batches repositories.BatchRepository

	if cfg.ScenarioPath != "" {
		// Scenario mode: serve a JSON dataset without a database.
		repos, err := scenario.Load(cfg.ScenarioPath)
		if err != nil {
			log.WithError(err).Fatal("failed to load scenario")
		}
		loader = snapshot.NewLoader(repos.Materials, repos.Suppliers, repos.Recipes, repos.Products, repos.Inventory, log)
		batches = repos.Batches
		log.WithField("scenario", cfg.ScenarioPath).Info("serving scenario dataset")
	} else {
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			log.WithError(err).Fatal("failed to open database")
		}
		defer database.Close()

		if err := db.Migrate(database); err != nil {
			log.WithError(err).Fatal("failed to run migrations")
		}

		loader = snapshot.NewLoader(
			sqlite.NewMaterialRepository(database),
			sqlite.NewSupplierRepository(database),
			sqlite.NewRecipeRepository(database),
			sqlite.NewProductRepository(database),
			sqlite.NewInventoryRepository(database),
			log,
		)
		batches = sqlite.NewBatchRepository(database)
		log.WithField("db", cfg.DBPath).Info("serving sqlite dataset")
	}

	server := httpapi.NewServer(loader, batches, log)

	log.WithField("addr", cfg.Addr).Info("listening")
	if err := http.ListenAndServe(cfg.Addr, server.Router()); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
