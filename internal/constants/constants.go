package constants

// Centralized constants for env keys, routes, socket events and limits.
const (
	// Environment variable keys
	EnvConfigPath = "POKEARENA_CONFIG"
	EnvDBPath     = "POKEARENA_DB"

	// Defaults used when the env vars above are unset
	DefaultConfigPath = "./pokearena_config.json"
	DefaultDBPath     = "./data/pokemon.db"
)

// Routes used by the backend router
const (
	RouteAPIPrefix = "/api"
	RoutePokemon   = "/pokemon"
	RouteTypes     = "/types"
	RouteHealth    = "/healthz"
	RouteWS        = "/ws"
)

// Client-originated socket events
const (
	EventSetNickname   = "set_nickname"
	EventCreateRoom    = "create_room"
	EventJoinRoom      = "join_room"
	EventSetTeam       = "set_team"
	EventToggleReady   = "toggle_ready"
	EventLeaveRoom     = "leave_room"
	EventSendChat      = "send_chat"
	EventSelectPokemon = "select_pokemon"
)

// Server-originated socket events
const (
	EventNicknameSet     = "nickname_set"
	EventRoomCreated     = "room_created"
	EventRoomJoined      = "room_joined"
	EventRoomUpdate      = "room_update"
	EventLeftRoom        = "left_room"
	EventTeamInvalid     = "team_invalid"
	EventBattleStart     = "battle_start"
	EventTurnResult      = "turn_result"
	EventRequestSwitch   = "request_switch"
	EventPokemonSwitched = "pokemon_switched"
	EventBattleEnd       = "battle_end"
	EventChatMessage     = "chat_message"
	EventError           = "error"
)

// Input limits enforced before any lookup is made
const (
	MaxNicknameLen = 20
	MaxChatLen     = 100
)

// User-facing error messages
const (
	ErrMsgNicknameEmpty    = "nickname must not be empty"
	ErrMsgNicknameRequired = "cannot create a room, set a nickname first"
	ErrMsgNotInRoom        = "you are not in a room"
	ErrMsgInvalidTeamData  = "invalid team data"
	ErrMsgInvalidPokemonID = "invalid Pokémon id"
	ErrMsgUnknownPokemonID = "some Pokémon ids are invalid"
	ErrMsgInvalidSwitch    = "cannot select that Pokémon"
	ErrMsgTeamDataMissing  = "team data is invalid, choose again"
	ErrMsgBattleError      = "an error occurred during the battle"
)

// Common log field keys
const (
	LogFieldAddr = "addr"
	LogFieldRoom = "room"
	LogFieldSID  = "sid"
)
