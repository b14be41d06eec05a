package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jfparis/home-assistant-garmin-connect/internal/client/garmin"
)

func weightCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weight",
		Short: "Body composition measurements",
	}
	cmd.AddCommand(weightAddCmd())
	return cmd
}

func weightAddCmd() *cobra.Command {
	var (
		weight     float64
		bmi        float64
		percentFat float64
		hydration  float64
		boneMass   float64
		muscleMass float64
		timestamp  string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a body composition entry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			entry := garmin.BodyCompositionEntry{Weight: weight}
			flags := cmd.Flags()
			if flags.Changed("bmi") {
				entry.BMI = &bmi
			}
			if flags.Changed("body-fat") {
				entry.PercentFat = &percentFat
			}
			if flags.Changed("body-water") {
				entry.PercentHydration = &hydration
			}
			if flags.Changed("bone-mass") {
				entry.BoneMass = &boneMass
			}
			if flags.Changed("muscle-mass") {
				entry.MuscleMass = &muscleMass
			}
			if timestamp != "" {
				ts, err := time.Parse(time.RFC3339, timestamp)
				if err != nil {
					return fmt.Errorf("invalid timestamp: %w", err)
				}
				entry.Timestamp = &ts
			}

			coord, err := newBridge(ctx)
			if err != nil {
				return err
			}

			if err := coord.AddBodyComposition(ctx, entry); err != nil {
				return err
			}

			fmt.Printf("recorded weight %.1f kg\n", weight)
			return nil
		},
	}

	cmd.Flags().Float64Var(&weight, "weight", 0, "weight in kilograms")
	cmd.Flags().Float64Var(&bmi, "bmi", 0, "body mass index")
	cmd.Flags().Float64Var(&percentFat, "body-fat", 0, "body fat percentage")
	cmd.Flags().Float64Var(&hydration, "body-water", 0, "body water percentage")
	cmd.Flags().Float64Var(&boneMass, "bone-mass", 0, "bone mass in kilograms")
	cmd.Flags().Float64Var(&muscleMass, "muscle-mass", 0, "muscle mass in kilograms")
	cmd.Flags().StringVar(&timestamp, "timestamp", "", "measurement time in RFC 3339, defaults to now")
	_ = cmd.MarkFlagRequired("weight")
	return cmd
}

func bpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bp",
		Short: "Blood pressure readings",
	}
	cmd.AddCommand(bpAddCmd())
	return cmd
}

func bpAddCmd() *cobra.Command {
	var (
		systolic  int
		diastolic int
		pulse     int
		note      string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a blood pressure reading",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			coord, err := newBridge(ctx)
			if err != nil {
				return err
			}

			reading := garmin.BloodPressureReading{
				Systolic:  systolic,
				Diastolic: diastolic,
				Pulse:     pulse,
				Note:      note,
			}
			if err := coord.AddBloodPressure(ctx, reading); err != nil {
				return err
			}

			fmt.Printf("recorded blood pressure %d/%d, pulse %d\n", systolic, diastolic, pulse)
			return nil
		},
	}

	cmd.Flags().IntVar(&systolic, "systolic", 0, "systolic pressure in mmHg")
	cmd.Flags().IntVar(&diastolic, "diastolic", 0, "diastolic pressure in mmHg")
	cmd.Flags().IntVar(&pulse, "pulse", 0, "pulse in bpm")
	cmd.Flags().StringVar(&note, "note", "", "optional note")
	_ = cmd.MarkFlagRequired("systolic")
	_ = cmd.MarkFlagRequired("diastolic")
	_ = cmd.MarkFlagRequired("pulse")
	return cmd
}
