package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case Room:
		o.printRoom(v)
	case []Room:
		o.printRoomList(v)
	case Session:
		o.printSession(v)
	case Winner:
		o.printWinner(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// Room response type
type Room struct {
	ID      string   `json:"id"`
	OwnerID string   `json:"owner_id"`
	Players []Player `json:"players"`
}

// PlayerStat response type
type PlayerStat struct {
	PlayerID   string   `json:"player_id"`
	Money      int      `json:"money"`
	OwnedItems []string `json:"owned_items"`
	Points     int      `json:"points"`
}

// Session response type
type Session struct {
	ID            string       `json:"id"`
	OwnerID       string       `json:"owner_id"`
	Players       []string     `json:"players"`
	Stats         []PlayerStat `json:"stats"`
	ItemsLeft     int          `json:"items_left"`
	CurrentItem   string       `json:"current_item,omitempty"`
	CurrentPrice  int          `json:"current_price"`
	LastDecrement int          `json:"last_decrement"`
	JokerConsumed bool         `json:"joker_consumed"`
	State         string       `json:"state"`
	Winner        *string      `json:"winner,omitempty"`
}

// Winner response type
type Winner struct {
	PlayerID string `json:"player_id"`
	Final    bool   `json:"final"`
}

// HealthResult response type. Latency is measured client-side and is not
// part of the server response.
type HealthResult struct {
	Status  string        `json:"status"`
	Latency time.Duration `json:"latency"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
}

func (o *Output) printRoom(r Room) {
	fmt.Printf("Room: %s\n", r.ID)
	fmt.Printf("Players (%d):\n", len(r.Players))
	for _, p := range r.Players {
		ownerStr := ""
		if p.ID == r.OwnerID {
			ownerStr = " [owner]"
		}
		fmt.Printf("  - %s (%s)%s\n", p.DisplayName, p.ID, ownerStr)
	}
}

func (o *Output) printRoomList(rooms []Room) {
	if len(rooms) == 0 {
		fmt.Println("No open rooms")
		return
	}
	for _, r := range rooms {
		fmt.Printf("%s - %d player(s)\n", r.ID, len(r.Players))
	}
}

func (o *Output) printSession(s Session) {
	fmt.Printf("Session: %s\n", s.ID)
	fmt.Printf("State: %s\n", s.State)
	if s.CurrentItem != "" {
		fmt.Printf("Up for auction: %s at %d\n", s.CurrentItem, s.CurrentPrice)
		if s.LastDecrement > 0 {
			fmt.Printf("Last price drop: %d\n", s.LastDecrement)
		}
	}
	fmt.Printf("Items left in queue: %d\n", s.ItemsLeft)

	fmt.Printf("Players (%d):\n", len(s.Stats))
	for _, st := range s.Stats {
		items := strings.Join(st.OwnedItems, " ")
		if items == "" {
			items = "-"
		}
		fmt.Printf("  %s: %d points, %d money, items: %s\n", st.PlayerID, st.Points, st.Money, items)
	}

	if s.Winner != nil {
		fmt.Printf("Winner: %s\n", *s.Winner)
	}
}

func (o *Output) printWinner(w Winner) {
	if w.Final {
		fmt.Printf("Winner: %s\n", w.PlayerID)
	} else {
		fmt.Printf("Current leader: %s (game still running)\n", w.PlayerID)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s (%s)\n", h.Status, h.Latency.Round(time.Millisecond))
}
