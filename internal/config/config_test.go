package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeFile(t, "config.json", `{}`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerAddress != ":8080" {
		t.Fatalf("unexpected address %q", cfg.ServerAddress)
	}
	if cfg.CatalogSize != 1025 {
		t.Fatalf("unexpected catalog size %d", cfg.CatalogSize)
	}
	b := cfg.Battle
	if b.Level != 50 || b.MovePower != 80 || b.StabBonus != 1.5 {
		t.Fatalf("unexpected battle defaults: %+v", b)
	}
	if b.TurnDelay != 3500*time.Millisecond || b.SwitchTimeout != 30*time.Second {
		t.Fatalf("unexpected pacing defaults: %+v", b)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"server": {"address": ":9090"},
		"catalog_size": 151,
		"seed_file": "seed.json",
		"battle": {
			"level": 100,
			"move_power": 60,
			"stab_bonus": 2.0,
			"random_min": 0.9,
			"random_max": 1.0,
			"team_min": 3,
			"team_max": 3,
			"turn_delay_ms": 100,
			"switch_timeout_sec": 5
		}
	}`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerAddress != ":9090" || cfg.CatalogSize != 151 || cfg.SeedFile != "seed.json" {
		t.Fatalf("unexpected top level config: %+v", cfg)
	}
	b := cfg.Battle
	if b.Level != 100 || b.MovePower != 60 || b.StabBonus != 2.0 {
		t.Fatalf("battle overrides lost: %+v", b)
	}
	if b.RandomMin != 0.9 || b.RandomMax != 1.0 || b.TeamMin != 3 || b.TeamMax != 3 {
		t.Fatalf("battle bounds lost: %+v", b)
	}
	if b.TurnDelay != 100*time.Millisecond || b.SwitchTimeout != 5*time.Second {
		t.Fatalf("pacing overrides lost: %+v", b)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantSub string
	}{
		{"missing file", "", "failed to read config file"},
		{"malformed json", `{`, "failed to parse config file"},
		{"bad catalog size", `{"catalog_size": -3}`, "catalog_size must be positive"},
		{"bad level", `{"battle": {"level": 0}}`, "battle.level"},
		{"bad stab", `{"battle": {"stab_bonus": 0.5}}`, "stab_bonus"},
		{"inverted variance", `{"battle": {"random_min": 1.0, "random_max": 0.5}}`, "random_min"},
		{"inverted team bounds", `{"battle": {"team_min": 4, "team_max": 2}}`, "team_min"},
		{"negative delay", `{"battle": {"turn_delay_ms": -1}}`, "turn_delay_ms"},
		{"zero switch timeout", `{"battle": {"switch_timeout_sec": 0}}`, "switch_timeout_sec"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "missing.json")
			if tc.content != "" {
				path = writeFile(t, "config.json", tc.content)
			}
			_, err := LoadConfig(path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Fatalf("error %q does not mention %q", err, tc.wantSub)
			}
		})
	}
}

func TestLoadSeed(t *testing.T) {
	path := writeFile(t, "seed.json", `[
		{"id": 1, "name_en": "Bulbasaur", "name_zh": "妙蛙种子", "type1": "grass", "type2": "poison",
		 "hp": 45, "attack": 49, "defense": 49, "sp_attack": 65, "sp_defense": 65, "speed": 45, "total": 318},
		{"id": 4, "name_en": "Charmander", "type1": "fire",
		 "hp": 39, "attack": 52, "defense": 43, "sp_attack": 60, "sp_defense": 50, "speed": 65, "total": 309}
	]`)

	seed, err := LoadSeed(path)
	if err != nil {
		t.Fatalf("load seed: %v", err)
	}
	if len(seed) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(seed))
	}
	if seed[0].ID != 1 || seed[0].Type2 != "poison" || seed[1].NameEN != "Charmander" {
		t.Fatalf("unexpected seed rows: %+v", seed)
	}
}

func TestLoadSeed_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"missing id", `[{"name_en": "Mew", "type1": "psychic"}]`},
		{"missing name", `[{"id": 151, "type1": "psychic"}]`},
		{"missing type", `[{"id": 151, "name_en": "Mew"}]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, "seed.json", tc.content)
			if _, err := LoadSeed(path); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
