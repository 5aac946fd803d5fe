package sse

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mcoot/auctiongame-go/internal/model"
	"github.com/mcoot/auctiongame-go/internal/testutil"
)

func testSession(id model.SessionID) *model.AuctionSession {
	return &model.AuctionSession{
		ID:        id,
		OwnerID:   "alice",
		PlayerIDs: []model.PlayerID{"alice", "bob"},
		Stats: map[model.PlayerID]*model.PlayerStat{
			"alice": {PlayerID: "alice", Money: 100, OwnedItems: []model.ItemID{}},
			"bob":   {PlayerID: "bob", Money: 100, OwnedItems: []model.ItemID{}},
		},
		Points:       map[model.PlayerID]int{"alice": 100, "bob": 100},
		ItemQueue:    []model.ItemID{"🚙"},
		CurrentItem:  "🎩",
		CurrentPrice: 100,
		JokerValue:   5,
		State:        model.SessionStateInProgress,
	}
}

func receiveMessage(t *testing.T, client *Client) string {
	t.Helper()
	select {
	case msg := <-client.send:
		return string(msg)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
		return ""
	}
}

func TestBroadcaster_SessionChanged(t *testing.T) {
	manager := NewHubManager(testutil.DiscardLogger())
	broadcaster := NewBroadcaster(manager, testutil.DiscardLogger())

	hub := manager.GetOrCreateHub("SESSION00001")
	defer manager.RemoveHub("SESSION00001")
	client := NewClient(hub, "alice")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	broadcaster.SessionChanged(context.Background(), testSession("SESSION00001"))

	msg := receiveMessage(t, client)
	if !strings.HasPrefix(msg, "event: session_updated\n") {
		t.Errorf("expected session_updated event, got %q", msg)
	}
	if !strings.Contains(msg, `"current_item":"🎩"`) {
		t.Errorf("expected snapshot with current item, got %q", msg)
	}
	// The joker value must never leak to clients
	if strings.Contains(msg, "joker_value") {
		t.Errorf("snapshot leaked the joker value: %q", msg)
	}
}

func TestBroadcaster_SessionEnded(t *testing.T) {
	manager := NewHubManager(testutil.DiscardLogger())
	broadcaster := NewBroadcaster(manager, testutil.DiscardLogger())

	hub := manager.GetOrCreateHub("SESSION00001")
	defer manager.RemoveHub("SESSION00001")
	client := NewClient(hub, "alice")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	sess := testSession("SESSION00001")
	sess.State = model.SessionStateOver
	sess.WinnerID = "bob"
	broadcaster.SessionChanged(context.Background(), sess)

	first := receiveMessage(t, client)
	if !strings.HasPrefix(first, "event: session_updated\n") {
		t.Errorf("expected session_updated event first, got %q", first)
	}

	second := receiveMessage(t, client)
	if !strings.HasPrefix(second, "event: session_ended\n") {
		t.Errorf("expected session_ended event, got %q", second)
	}
	if !strings.Contains(second, `"winner_id":"bob"`) {
		t.Errorf("expected winner in ended payload, got %q", second)
	}
}

func TestBroadcaster_SessionRemoved(t *testing.T) {
	manager := NewHubManager(testutil.DiscardLogger())
	broadcaster := NewBroadcaster(manager, testutil.DiscardLogger())

	hub := manager.GetOrCreateHub("SESSION00001")
	client := NewClient(hub, "alice")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	broadcaster.SessionRemoved(context.Background(), "SESSION00001")

	msg := receiveMessage(t, client)
	if !strings.HasPrefix(msg, "event: session_removed\n") {
		t.Errorf("expected session_removed event, got %q", msg)
	}
	if manager.GetHub("SESSION00001") != nil {
		t.Error("expected hub to be torn down")
	}
}

func TestBroadcaster_NoHubIsNoop(t *testing.T) {
	manager := NewHubManager(testutil.DiscardLogger())
	broadcaster := NewBroadcaster(manager, testutil.DiscardLogger())

	// No hub exists for the session; nothing should panic
	broadcaster.SessionChanged(context.Background(), testSession("SESSION00001"))
	broadcaster.SessionRemoved(context.Background(), "SESSION00001")
}
