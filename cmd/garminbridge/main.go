package main

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jfparis/home-assistant-garmin-connect/internal/version"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:     "garminbridge",
		Short:   "Garmin Connect data from the command line",
		Version: version.Get(),
	}

	rootCmd.AddCommand(snapshotCmd())
	rootCmd.AddCommand(gearCmd())
	rootCmd.AddCommand(weightCmd())
	rootCmd.AddCommand(bpCmd())
	rootCmd.AddCommand(versionCmd())

	if err := fang.Execute(context.Background(), rootCmd, fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM)); err != nil {
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(version.Get())
		},
	}
}
