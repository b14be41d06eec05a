package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/jfparis/home-assistant-garmin-connect/internal/client/garmin"
	"github.com/jfparis/home-assistant-garmin-connect/internal/snapshot"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle = lipgloss.NewStyle().Faint(true).Width(18)
	valueStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

func snapshotCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Fetch and display the current Garmin Connect snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			coord, err := newBridge(ctx)
			if err != nil {
				return err
			}

			data, err := coord.Refresh(ctx)
			if err != nil {
				return fmt.Errorf("refresh failed: %w", err)
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(data)
			}

			fmt.Println(renderSnapshot(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw snapshot as JSON")
	return cmd
}

func renderSnapshot(data snapshot.Snapshot) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Garmin Connect"))
	b.WriteString("\n\n")

	writeRow(&b, "Steps", numberAt(data, "totalSteps"))
	writeRow(&b, "Distance (m)", numberAt(data, "totalDistanceMeters"))
	writeRow(&b, "Active kCal", numberAt(data, "activeKilocalories"))
	writeRow(&b, "Resting HR", numberAt(data, "restingHeartRate"))
	writeRow(&b, "Body Battery", numberAt(data, "bodyBatteryMostRecentValue"))
	writeRow(&b, "Weight (g)", numberAt(data, "weight"))
	writeRow(&b, "BMI", numberAt(data, "bmi"))
	writeRow(&b, "Sleep Score", numberAt(data, snapshot.KeySleepScore))
	writeRow(&b, "Sleep Time", sleepTime(data))
	writeRow(&b, "HRV Status", hrvStatus(data))

	if gear, ok := data[snapshot.KeyGear].([]garmin.Gear); ok && len(gear) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Gear"))
		b.WriteString("\n\n")
		for _, g := range gear {
			b.WriteString(labelStyle.Render(g.GearTypeName))
			b.WriteString(valueStyle.Render(g.DisplayName))
			b.WriteString(dimStyle.Render("  " + g.UUID))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func writeRow(b *strings.Builder, label, value string) {
	b.WriteString(labelStyle.Render(label))
	b.WriteString(valueStyle.Render(value))
	b.WriteString("\n")
}

func numberAt(data snapshot.Snapshot, key string) string {
	switch v := data[key].(type) {
	case nil:
		return "-"
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%.1f", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func sleepTime(data snapshot.Snapshot) string {
	secs, ok := data[snapshot.KeySleepTimeSeconds].(float64)
	if !ok {
		return "-"
	}
	return (time.Duration(secs) * time.Second).String()
}

func hrvStatus(data snapshot.Snapshot) string {
	m, ok := data[snapshot.KeyHRVStatus].(map[string]any)
	if !ok {
		return "-"
	}
	if s, ok := m["status"].(string); ok {
		return s
	}
	return "-"
}
