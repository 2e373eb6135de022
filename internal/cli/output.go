package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cardtable/holdem-go/internal/model"
)

// printEvent renders one server event to stdout
func printEvent(event model.ServerEvent, jsonOutput bool) {
	if jsonOutput {
		data, _ := json.Marshal(event)
		fmt.Println(string(data))
		return
	}

	timestamp := time.Now().Format("15:04:05")

	switch event.Type {
	case model.EventRoundStarted:
		fmt.Printf("[%s] round started\n", timestamp)
	case model.EventGameState:
		fmt.Printf("[%s] %s\n", timestamp, describeState(event.Data))
	case model.EventPrivateState:
		fmt.Printf("[%s] your hand: %s\n", timestamp, describeHand(event.Data))
	case model.EventBlindPosted:
		var payload model.BlindPostedPayload
		if remarshal(event.Data, &payload) {
			fmt.Printf("[%s] blind posted: seat %d paid %d\n", timestamp, payload.Seat, payload.Amount)
		}
	case model.EventError:
		var payload model.ErrorPayload
		if remarshal(event.Data, &payload) {
			fmt.Printf("[%s] error: %s\n", timestamp, payload.Message)
		}
	default:
		data, _ := json.Marshal(event)
		fmt.Printf("[%s] %s\n", timestamp, string(data))
	}
}

func describeState(data any) string {
	var state model.TableState
	if !remarshal(data, &state) {
		return "table update"
	}

	parts := []string{
		fmt.Sprintf("phase=%s", state.Phase),
		fmt.Sprintf("pot=%d", state.Pot),
		fmt.Sprintf("players=%d", len(state.Players)),
	}
	if len(state.CommunityCards) > 0 {
		cards := make([]string, len(state.CommunityCards))
		for i, c := range state.CommunityCards {
			cards[i] = c.String()
		}
		parts = append(parts, "board="+strings.Join(cards, " "))
	}
	return strings.Join(parts, " ")
}

func describeHand(data any) string {
	var private model.PrivateState
	if !remarshal(data, &private) || !private.HasHand() {
		return "(none)"
	}

	cards := make([]string, len(private.Hand))
	for i, c := range private.Hand {
		cards[i] = c.String()
	}
	return strings.Join(cards, " ")
}

// remarshal converts a decoded any payload into a concrete type
func remarshal(data any, target any) bool {
	raw, err := json.Marshal(data)
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, target) == nil
}
