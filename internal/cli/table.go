package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cardtable/holdem-go/internal/model"
)

func newTableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Show the latest recorded table snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			var snapshot model.TableState
			if err := client.Get("/api/v1/table", &snapshot); err != nil {
				return err
			}

			if cfg.JSONOutput {
				data, _ := json.MarshalIndent(snapshot, "", "  ")
				fmt.Println(string(data))
				return nil
			}

			fmt.Printf("phase: %s  pot: %d  dealer seat: %d  current bet: %d\n",
				snapshot.Phase, snapshot.Pot, snapshot.DealerSeat, snapshot.CurrentBet)
			for _, p := range snapshot.Players {
				fmt.Printf("  seat %d  %-8s stack=%-6d committed=%-6d %s\n",
					p.Seat, p.Status, p.Stack, p.Committed, p.ID)
			}
			return nil
		},
	}
}

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show the journaled event history",
		RunE: func(cmd *cobra.Command, args []string) error {
			var records []model.EventRecord
			if err := client.Get("/api/v1/history", &records); err != nil {
				return err
			}

			for _, record := range records {
				if cfg.JSONOutput {
					data, _ := json.Marshal(record)
					fmt.Println(string(data))
					continue
				}
				fmt.Printf("%6d  %-14s %s\n",
					record.Sequence, record.Type, record.RecordedAt.Format("15:04:05"))
			}
			return nil
		},
	}
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			var status map[string]string
			if err := client.Get("/api/v1/health", &status); err != nil {
				return err
			}
			fmt.Println(status["status"])
			return nil
		},
	}
}
