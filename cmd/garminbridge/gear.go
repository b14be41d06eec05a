package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jfparis/home-assistant-garmin-connect/internal/client/garmin"
	"github.com/jfparis/home-assistant-garmin-connect/internal/coordinator"
	"github.com/jfparis/home-assistant-garmin-connect/internal/snapshot"
)

func gearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gear",
		Short: "Inspect and manage gear defaults",
	}
	cmd.AddCommand(gearListCmd())
	cmd.AddCommand(gearSetCmd())
	return cmd
}

func gearListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered gear",
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

			gear, _ := data[snapshot.KeyGear].([]garmin.Gear)
			if len(gear) == 0 {
				fmt.Println("no gear registered")
				return nil
			}
			for _, g := range gear {
				fmt.Printf("%s  %-30s %s (%s)\n", g.UUID, g.DisplayName, g.GearTypeName, g.GearStatusName)
			}
			return nil
		},
	}
}

func gearSetCmd() *cobra.Command {
	var (
		gearUUID     string
		setting      string
		activityType string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set a gear item's default state for an activity type",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			parsed, err := coordinator.ParseGearSetting(setting)
			if err != nil {
				return err
			}

			coord, err := newBridge(ctx)
			if err != nil {
				return err
			}

			// The activity type catalog comes from a refresh cycle.
			if _, err := coord.Refresh(ctx); err != nil {
				return fmt.Errorf("refresh failed: %w", err)
			}

			if err := coord.SetActiveGear(ctx, gearUUID, parsed, activityType); err != nil {
				return err
			}

			fmt.Printf("gear %s is now %s for %s\n", gearUUID, parsed, activityType)
			return nil
		},
	}

	cmd.Flags().StringVar(&gearUUID, "uuid", "", "gear UUID")
	cmd.Flags().StringVar(&setting, "setting", string(coordinator.SettingDefault),
		"one of default, exclusive-default, not-default")
	cmd.Flags().StringVar(&activityType, "activity-type", "", "activity type key, e.g. running")
	_ = cmd.MarkFlagRequired("uuid")
	_ = cmd.MarkFlagRequired("activity-type")
	return cmd
}
