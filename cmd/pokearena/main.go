package main

import (
	"os"

	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/api"
	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/arena"
	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/config"
	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/constants"
	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/game"
	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/logging"
	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/room"
	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/statcache"
	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = constants.DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logging.Fatal("Missing or invalid configuration", err, logging.Fields{"config_path": configPath, "hint": "create a pokearena_config.json with optional keys: server.address, catalog_size, seed_file, battle{level,move_power,stab_bonus,random_min,random_max,team_min,team_max,turn_delay_ms,switch_timeout_sec}"})
	}

	var seed []game.Pokemon
	if cfg.SeedFile != "" {
		seed, err = config.LoadSeed(cfg.SeedFile)
		if err != nil {
			logging.Fatal("Invalid seed file", err, logging.Fields{"seed_file": cfg.SeedFile})
		}
	}

	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = constants.DefaultDBPath
	}
	db, err := storage.OpenAndMigrate(dbPath, seed)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{"db_path": dbPath})
	}

	repo := storage.NewSQLiteRepository(db)
	if count, err := repo.CountPokemon(); err == nil && count == 0 {
		logging.Warn("catalog is empty; battles cannot start until the catalog is imported", logging.Fields{"db_path": dbPath})
	}

	stats := statcache.New(repo)
	rooms := room.NewManager()
	hub := arena.NewHub(cfg.Battle, cfg.CatalogSize, rooms, stats, repo)
	catalog := api.NewCatalogHandler(repo)

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RoutePokemon, catalog.ListPokemon)
		apiRoutes.GET(constants.RouteTypes, catalog.ListTypes)
	}
	router.GET(constants.RouteHealth, catalog.Health)
	router.GET(constants.RouteWS, hub.HandleWS)

	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: cfg.ServerAddress})
	if err := router.Run(cfg.ServerAddress); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
