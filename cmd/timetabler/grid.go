package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PMithila/Group-PPA/internal/engine"
	"github.com/PMithila/Group-PPA/pkg/config"
	"github.com/PMithila/Group-PPA/pkg/export"
)

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Print the slot grid derived from the configured time window",
	RunE:  runGrid,
}

func init() {
	rootCmd.AddCommand(gridCmd)
}

func runGrid(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	grid, err := engine.BuildGrid(engine.Config{
		Days:        cfg.Scheduler.Days,
		Start:       cfg.Scheduler.Start,
		End:         cfg.Scheduler.End,
		SlotMinutes: cfg.Scheduler.SlotMinutes,
	})
	if err != nil {
		return err
	}

	fmt.Printf("%d slots per day, days:", grid.NumSlots())
	for _, day := range grid.Days() {
		fmt.Printf(" %s", export.DayName(day))
	}
	fmt.Println()
	for _, slot := range grid.Slots() {
		fmt.Printf("  [%2d] %s - %s\n", slot.Index, slot.Start(), slot.End())
	}
	return nil
}
