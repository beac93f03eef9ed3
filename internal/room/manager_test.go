package room

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/game"
	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/rules"
)

func newPair(t *testing.T, m *Manager) (host, guest, code string) {
	t.Helper()
	host, guest = "sid-host", "sid-guest"
	m.SetNickname(host, "Ash")
	m.SetNickname(guest, "Misty")
	view, err := m.CreateRoom(host, rules.Default)
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	if _, err := m.JoinRoom(guest, view.Code); err != nil {
		t.Fatalf("join room: %v", err)
	}
	return host, guest, view.Code
}

func TestCreateRoom_RequiresNickname(t *testing.T) {
	m := NewManager()
	if _, err := m.CreateRoom("sid-1", rules.Default); !errors.Is(err, ErrNicknameRequired) {
		t.Fatalf("expected ErrNicknameRequired, got %v", err)
	}
}

func TestCreateRoom_RejectsSecondRoom(t *testing.T) {
	m := NewManager()
	m.SetNickname("sid-1", "Ash")
	if _, err := m.CreateRoom("sid-1", rules.Default); err != nil {
		t.Fatalf("create room: %v", err)
	}
	if _, err := m.CreateRoom("sid-1", rules.Default); !errors.Is(err, ErrAlreadyInRoom) {
		t.Fatalf("expected ErrAlreadyInRoom, got %v", err)
	}
}

func TestCreateRoom_ConcurrentCodesAreUnique(t *testing.T) {
	m := NewManager()
	const n = 50
	codes := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		sid := fmt.Sprintf("sid-%d", i)
		m.SetNickname(sid, fmt.Sprintf("player-%d", i))
		wg.Add(1)
		go func(sid string) {
			defer wg.Done()
			view, err := m.CreateRoom(sid, rules.Default)
			if err != nil {
				t.Errorf("create room: %v", err)
				return
			}
			codes <- view.Code
		}(sid)
	}
	wg.Wait()
	close(codes)

	seen := map[string]bool{}
	for code := range codes {
		if seen[code] {
			t.Fatalf("duplicate room code %s", code)
		}
		seen[code] = true
	}
}

func TestJoinRoom_ErrorCases(t *testing.T) {
	m := NewManager()
	host, _, code := newPair(t, m)

	if _, err := m.JoinRoom("sid-anon", code); !errors.Is(err, ErrNicknameRequired) {
		t.Fatalf("expected ErrNicknameRequired, got %v", err)
	}

	m.SetNickname("sid-late", "Brock")
	if _, err := m.JoinRoom("sid-late", "0000x"); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
	if _, err := m.JoinRoom("sid-late", code); !errors.Is(err, ErrRoomFull) {
		t.Fatalf("expected ErrRoomFull, got %v", err)
	}
	if _, err := m.JoinRoom(host, code); !errors.Is(err, ErrAlreadyInRoom) {
		t.Fatalf("expected ErrAlreadyInRoom, got %v", err)
	}
}

func TestToggleReady_RequiresTeam(t *testing.T) {
	m := NewManager()
	host, guest, _ := newPair(t, m)

	if _, _, err := m.ToggleReady(host); !errors.Is(err, ErrNoTeam) {
		t.Fatalf("expected ErrNoTeam, got %v", err)
	}

	if _, err := m.SetTeam(host, []int{1, 2, 3}); err != nil {
		t.Fatalf("set team: %v", err)
	}
	if _, err := m.SetTeam(guest, []int{4, 5}); err != nil {
		t.Fatalf("set team: %v", err)
	}

	_, allReady, err := m.ToggleReady(host)
	if err != nil || allReady {
		t.Fatalf("one ready player must not start, allReady=%v err=%v", allReady, err)
	}
	view, allReady, err := m.ToggleReady(guest)
	if err != nil || !allReady {
		t.Fatalf("both ready must start, allReady=%v err=%v", allReady, err)
	}
	for _, p := range view.Players {
		if !p.Ready {
			t.Fatalf("player %s not marked ready", p.Nickname)
		}
	}
}

func TestSetTeam_ClearsReady(t *testing.T) {
	m := NewManager()
	host, _, _ := newPair(t, m)

	if _, err := m.SetTeam(host, []int{1}); err != nil {
		t.Fatalf("set team: %v", err)
	}
	if _, _, err := m.ToggleReady(host); err != nil {
		t.Fatalf("toggle ready: %v", err)
	}
	view, err := m.SetTeam(host, []int{2})
	if err != nil {
		t.Fatalf("set team again: %v", err)
	}
	if view.Players[0].Ready {
		t.Fatal("changing the team must clear the ready flag")
	}
}

func TestLeaveRoom_LastPlayerDestroysRoom(t *testing.T) {
	m := NewManager()
	m.SetNickname("sid-1", "Ash")
	view, err := m.CreateRoom("sid-1", rules.Default)
	if err != nil {
		t.Fatalf("create room: %v", err)
	}

	code, _, empty, left := m.LeaveRoom("sid-1")
	if !left || !empty || code != view.Code {
		t.Fatalf("expected empty room destruction, got code=%s empty=%v left=%v", code, empty, left)
	}
	if _, ok := m.RoomView(view.Code); ok {
		t.Fatal("destroyed room still visible")
	}
	// the code is free for reuse and the sid can create again
	if _, err := m.CreateRoom("sid-1", rules.Default); err != nil {
		t.Fatalf("re-create after leave: %v", err)
	}
}

func TestLeaveRoom_ResetsRemainingPlayer(t *testing.T) {
	m := NewManager()
	host, guest, code := newPair(t, m)
	if _, err := m.SetTeam(host, []int{1}); err != nil {
		t.Fatalf("set team: %v", err)
	}
	if _, err := m.SetTeam(guest, []int{2}); err != nil {
		t.Fatalf("set team: %v", err)
	}
	m.ToggleReady(host)
	m.ToggleReady(guest)
	if !m.BeginBattle(code) {
		t.Fatal("begin battle should succeed with both ready")
	}

	_, view, empty, left := m.LeaveRoom(guest)
	if !left || empty {
		t.Fatalf("expected occupied room to survive, empty=%v left=%v", empty, left)
	}
	if view.Status != game.RoomWaiting {
		t.Fatalf("room must drop back to waiting, got %s", view.Status)
	}
	if len(view.Players) != 1 || view.Players[0].Ready {
		t.Fatalf("remaining player must be unready: %+v", view.Players)
	}
}

func TestLeaveRoom_NotInRoom(t *testing.T) {
	m := NewManager()
	if _, _, _, left := m.LeaveRoom("sid-ghost"); left {
		t.Fatal("leaving without a room must report left=false")
	}
}

func TestBeginBattle_Gates(t *testing.T) {
	m := NewManager()
	host, guest, code := newPair(t, m)

	if m.BeginBattle(code) {
		t.Fatal("begin battle must fail before both players are ready")
	}
	m.SetTeam(host, []int{1})
	m.SetTeam(guest, []int{2})
	m.ToggleReady(host)
	m.ToggleReady(guest)
	if !m.BeginBattle(code) {
		t.Fatal("begin battle should succeed")
	}
	if m.BeginBattle(code) {
		t.Fatal("begin battle must not fire twice")
	}
	if view, _ := m.RoomView(code); view.Status != game.RoomBattling {
		t.Fatalf("expected battling status, got %s", view.Status)
	}
}

func TestPlayerTeamNumber(t *testing.T) {
	m := NewManager()
	host, guest, code := newPair(t, m)

	gotCode, team, ok := m.PlayerTeamNumber(host)
	if !ok || gotCode != code || team != 1 {
		t.Fatalf("host mapping wrong: code=%s team=%d ok=%v", gotCode, team, ok)
	}
	_, team, ok = m.PlayerTeamNumber(guest)
	if !ok || team != 2 {
		t.Fatalf("guest mapping wrong: team=%d ok=%v", team, ok)
	}
	if _, _, ok := m.PlayerTeamNumber("sid-ghost"); ok {
		t.Fatal("unknown sid must not map to a team")
	}

	info, ok := m.TeamPlayer(code, 2)
	if !ok || info.SID != guest {
		t.Fatalf("team 2 player wrong: %+v ok=%v", info, ok)
	}
	if _, ok := m.TeamPlayer(code, 3); ok {
		t.Fatal("team 3 must not exist in a two player room")
	}
}
