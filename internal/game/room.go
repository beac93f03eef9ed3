package game

// RoomStatus is the lifecycle state of a battle room.
type RoomStatus string

const (
	RoomWaiting  RoomStatus = "waiting"
	RoomBattling RoomStatus = "battling"
	RoomFinished RoomStatus = "finished"
)

// Player is one occupant of a room, identified by an opaque session id.
type Player struct {
	SID      string
	Nickname string
	TeamIDs  []int
	Ready    bool
}

// PlayerView is the client-facing summary of a player. Session ids and the
// chosen creature ids stay server-side.
type PlayerView struct {
	Nickname string `json:"nickname"`
	TeamSize int    `json:"team_size"`
	Ready    bool   `json:"ready"`
}

func (p *Player) View() PlayerView {
	return PlayerView{Nickname: p.Nickname, TeamSize: len(p.TeamIDs), Ready: p.Ready}
}

// PlayerInfo is the server-side snapshot handed to the orchestrator when a
// battle starts.
type PlayerInfo struct {
	SID      string
	Nickname string
	TeamIDs  []int
}

// Room holds up to two players; the first is the host. All mutation goes
// through the room manager, which serializes access.
type Room struct {
	Code    string
	Players []*Player
	Status  RoomStatus
	Turn    int
	Rules   RoomRules
}

func (r *Room) IsFull() bool { return len(r.Players) >= 2 }

// AllReady reports whether the battle can start: exactly two players, both
// ready, both with at least one chosen creature.
func (r *Room) AllReady() bool {
	if len(r.Players) != 2 {
		return false
	}
	for _, p := range r.Players {
		if !p.Ready || len(p.TeamIDs) == 0 {
			return false
		}
	}
	return true
}

func (r *Room) GetPlayer(sid string) *Player {
	for _, p := range r.Players {
		if p.SID == sid {
			return p
		}
	}
	return nil
}

// RoomView is the client-facing snapshot broadcast on every room change.
type RoomView struct {
	Code    string       `json:"code"`
	Status  RoomStatus   `json:"status"`
	Players []PlayerView `json:"players"`
}

func (r *Room) View() RoomView {
	players := make([]PlayerView, 0, len(r.Players))
	for _, p := range r.Players {
		players = append(players, p.View())
	}
	return RoomView{Code: r.Code, Status: r.Status, Players: players}
}

// RoomRules constrains the teams allowed in a room. A nil cap means
// unrestricted. Rules are fixed at room creation.
type RoomRules struct {
	MaxLegendary     *int   `json:"max_legendary"`
	MaxStatTotal     *int   `json:"max_stat_total"`
	FullyEvolvedOnly bool   `json:"fully_evolved_only"`
	PresetName       string `json:"preset_name"`
}

// TeamMemberFacts is the narrow per-creature record used for rule checking.
type TeamMemberFacts struct {
	ID             int  `json:"id"`
	Total          int  `json:"total"`
	IsLegendary    bool `json:"is_legendary"`
	IsMythical     bool `json:"is_mythical"`
	IsFullyEvolved bool `json:"is_fully_evolved"`
}
