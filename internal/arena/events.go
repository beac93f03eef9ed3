package arena

import (
	"encoding/json"

	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/game"
	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/rules"
)

// envelope frames every message in both directions.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type outEnvelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// --- client -> server payloads ------------------------------------------

type setNicknameRequest struct {
	Nickname string `json:"nickname"`
}

type createRoomRequest struct {
	Rules *rules.Input `json:"rules"`
}

type joinRoomRequest struct {
	RoomCode string `json:"room_code"`
}

type setTeamRequest struct {
	PokemonIDs []int `json:"pokemon_ids"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type selectPokemonRequest struct {
	PokemonIndex *int `json:"pokemon_index"`
}

// --- server -> client payloads ------------------------------------------

type nicknameSetPayload struct {
	Success  bool   `json:"success"`
	Nickname string `json:"nickname"`
}

type roomCreatedPayload struct {
	RoomCode string `json:"room_code"`
}

type roomJoinedPayload struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type leftRoomPayload struct {
	Success bool `json:"success"`
}

type teamInvalidPayload struct {
	Errors []string `json:"errors"`
}

type battleStartPayload struct {
	YourTeamNum    int                  `json:"your_team_num"`
	YourTeam       []game.CombatantView `json:"your_team"`
	EnemyActive    game.CombatantView   `json:"enemy_active"`
	EnemyTeamCount int                  `json:"enemy_team_count"`
	Player1        string               `json:"player1"`
	Player2        string               `json:"player2"`
}

type turnResultPayload struct {
	Turn   int              `json:"turn"`
	Events []game.TurnEvent `json:"events"`
}

type requestSwitchPayload struct {
	Reason    string               `json:"reason"`
	Remaining []game.CombatantView `json:"remaining"`
}

type pokemonSwitchedPayload struct {
	Team    int                `json:"team"`
	Pokemon game.CombatantView `json:"pokemon"`
}

type battleEndPayload struct {
	WinnerName string `json:"winner_name"`
	WinnerTeam int    `json:"winner_team"`
	TotalTurns int    `json:"total_turns"`
}

type chatMessagePayload struct {
	Nickname string `json:"nickname"`
	Message  string `json:"message"`
}

type errorPayload struct {
	Message string `json:"message"`
}
