package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/game"
)

type rawConfig struct {
	Server *struct {
		Address string `json:"address"`
	} `json:"server"`
	// CatalogSize is the highest valid creature id (the id range accepted
	// from clients is 1..catalog_size).
	CatalogSize int `json:"catalog_size"`
	// SeedFile optionally points at a JSON array of catalog entries used to
	// populate an empty database for local development.
	SeedFile string     `json:"seed_file"`
	Battle   *rawBattle `json:"battle"`
}

type rawBattle struct {
	Level            *int     `json:"level"`
	MovePower        *int     `json:"move_power"`
	StabBonus        *float64 `json:"stab_bonus"`
	RandomMin        *float64 `json:"random_min"`
	RandomMax        *float64 `json:"random_max"`
	TeamMin          *int     `json:"team_min"`
	TeamMax          *int     `json:"team_max"`
	TurnDelayMS      *int     `json:"turn_delay_ms"`
	SwitchTimeoutSec *int     `json:"switch_timeout_sec"`
}

// LoadedConfig is the validated server configuration.
type LoadedConfig struct {
	ServerAddress string
	CatalogSize   int
	SeedFile      string
	Battle        game.BattleConfig
}

// LoadConfig reads the configuration file at path. Missing keys fall back
// to defaults; present keys are validated strictly.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	out := &LoadedConfig{
		ServerAddress: ":8080",
		CatalogSize:   1025,
		SeedFile:      rc.SeedFile,
		Battle:        game.DefaultBattleConfig(),
	}
	if rc.Server != nil && rc.Server.Address != "" {
		out.ServerAddress = rc.Server.Address
	}
	if rc.CatalogSize != 0 {
		if rc.CatalogSize < 1 {
			return nil, fmt.Errorf("config file %s: catalog_size must be positive", path)
		}
		out.CatalogSize = rc.CatalogSize
	}

	if rc.Battle != nil {
		if err := applyBattle(&out.Battle, rc.Battle); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}
	return out, nil
}

func applyBattle(cfg *game.BattleConfig, raw *rawBattle) error {
	if raw.Level != nil {
		if *raw.Level < 1 || *raw.Level > 100 {
			return fmt.Errorf("battle.level must be in 1..100, got %d", *raw.Level)
		}
		cfg.Level = *raw.Level
	}
	if raw.MovePower != nil {
		if *raw.MovePower < 1 {
			return fmt.Errorf("battle.move_power must be positive, got %d", *raw.MovePower)
		}
		cfg.MovePower = *raw.MovePower
	}
	if raw.StabBonus != nil {
		if *raw.StabBonus < 1.0 {
			return fmt.Errorf("battle.stab_bonus must be at least 1.0, got %v", *raw.StabBonus)
		}
		cfg.StabBonus = *raw.StabBonus
	}
	if raw.RandomMin != nil {
		cfg.RandomMin = *raw.RandomMin
	}
	if raw.RandomMax != nil {
		cfg.RandomMax = *raw.RandomMax
	}
	if cfg.RandomMin <= 0 || cfg.RandomMin > cfg.RandomMax || cfg.RandomMax > 1.0 {
		return fmt.Errorf("battle random variance must satisfy 0 < random_min <= random_max <= 1.0, got [%v,%v]", cfg.RandomMin, cfg.RandomMax)
	}
	if raw.TeamMin != nil {
		cfg.TeamMin = *raw.TeamMin
	}
	if raw.TeamMax != nil {
		cfg.TeamMax = *raw.TeamMax
	}
	if cfg.TeamMin < 1 || cfg.TeamMin > cfg.TeamMax {
		return fmt.Errorf("battle team bounds must satisfy 1 <= team_min <= team_max, got [%d,%d]", cfg.TeamMin, cfg.TeamMax)
	}
	if raw.TurnDelayMS != nil {
		if *raw.TurnDelayMS < 0 {
			return fmt.Errorf("battle.turn_delay_ms must not be negative, got %d", *raw.TurnDelayMS)
		}
		cfg.TurnDelay = time.Duration(*raw.TurnDelayMS) * time.Millisecond
	}
	if raw.SwitchTimeoutSec != nil {
		if *raw.SwitchTimeoutSec < 1 {
			return fmt.Errorf("battle.switch_timeout_sec must be positive, got %d", *raw.SwitchTimeoutSec)
		}
		cfg.SwitchTimeout = time.Duration(*raw.SwitchTimeoutSec) * time.Second
	}
	return nil
}

// LoadSeed reads a JSON array of catalog entries.
func LoadSeed(path string) ([]game.Pokemon, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	var seed []game.Pokemon
	if err := json.Unmarshal(b, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	for i, p := range seed {
		if p.ID < 1 {
			return nil, fmt.Errorf("seed file %s: entry %d missing a positive id", path, i)
		}
		if p.NameEN == "" {
			return nil, fmt.Errorf("seed file %s: entry #%d missing 'name_en'", path, p.ID)
		}
		if p.Type1 == "" {
			return nil, fmt.Errorf("seed file %s: entry #%d missing 'type1'", path, p.ID)
		}
	}
	return seed, nil
}
