package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/cardtable/holdem-go/internal/model"
)

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Join the table and play interactively",
		Long: `Connect to the table, stream events, and send actions typed on stdin.

Actions:
  fold | check | call | allin
  bet <amount> | raise <amount>

Press Ctrl+C to leave the table.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cfg.JSONOutput)
		},
	}
}

func newEventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "Join the table and stream events without playing",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvents(cfg.JSONOutput)
		},
	}
}

func runPlay(jsonOutput bool) error {
	conn, err := client.Dial()
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	if !jsonOutput {
		fmt.Println("Connected. Type an action and press enter (fold/check/call/bet N/raise N/allin).")
	}

	done := make(chan struct{})
	go receiveEvents(conn, jsonOutput, done)

	// forward stdin lines as actions until EOF or the connection drops
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			request, ok := parseActionLine(scanner.Text())
			if !ok {
				fmt.Println("unrecognized action")
				continue
			}
			if err := conn.WriteJSON(request); err != nil {
				return
			}
		}
	}()

	waitForInterrupt(done)
	return nil
}

func runEvents(jsonOutput bool) error {
	conn, err := client.Dial()
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	if !jsonOutput {
		fmt.Println("Connected, streaming table events.")
	}

	done := make(chan struct{})
	go receiveEvents(conn, jsonOutput, done)

	waitForInterrupt(done)
	return nil
}

// receiveEvents prints server events until the connection closes
func receiveEvents(conn *websocket.Conn, jsonOutput bool, done chan<- struct{}) {
	defer close(done)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var event model.ServerEvent
		if err := json.Unmarshal(data, &event); err != nil {
			continue
		}
		printEvent(event, jsonOutput)
	}
}

// parseActionLine turns a line like "bet 50" into a wire action request
func parseActionLine(line string) (map[string]any, bool) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(line)))
	if len(fields) == 0 {
		return nil, false
	}

	var amount uint64
	if len(fields) > 1 {
		parsed, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return nil, false
		}
		amount = parsed
	}

	if _, ok := model.ParseAction(fields[0], amount); !ok {
		return nil, false
	}

	request := map[string]any{"action": fields[0]}
	if amount > 0 {
		request["amount"] = amount
	}
	return request, true
}

// waitForInterrupt blocks until Ctrl+C or the receive loop finishing
func waitForInterrupt(done <-chan struct{}) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-sigCh:
		fmt.Println("\nDisconnected")
	case <-done:
		fmt.Println("Connection closed")
	}
}
