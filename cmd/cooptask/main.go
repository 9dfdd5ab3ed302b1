package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/cooptask/cooptask/internal/application"
	"github.com/cooptask/cooptask/internal/config"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
	gitHash   = "unset"
)

var demoScript = []string{
	"spawn echo hello from a future",
	"poll 1",
	"spawn sleep 50",
	"poll 2",
	"await 2",
	"spawn sum 1000000",
	"await 3",
	"spawn bcrypt sup3rs3cret",
	"await 4",
	"spawn compress cooperative multitasking cooperative multitasking",
	"await 5",
	"spawn fail disk on fire",
	"poll 6",
	"spawn sleep 60000",
	"cancel 7",
	"status 7",
	"list",
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "cooptask",
		Short: "Cooperative futures playground",
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("cooptask version %s\nbuild time: %s\nhash: %s\n",
				version, buildTime, gitHash)
		},
	})

	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "Run the interactive session",
		Run: func(cmd *cobra.Command, args []string) {
			configPath, _ := cmd.Flags().GetString("config")
			startSession(configPath)
		},
	}
	replCmd.Flags().StringP("config", "c", "config.yml", "Path to config file")
	rootCmd.AddCommand(replCmd)

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted tour of the future lifecycle",
		Run: func(cmd *cobra.Command, args []string) {
			configPath, _ := cmd.Flags().GetString("config")
			runDemo(configPath)
		},
	}
	demoCmd.Flags().StringP("config", "c", "config.yml", "Path to config file")
	rootCmd.AddCommand(demoCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func startSession(cfgPath string) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGABRT)
	defer cancel()

	cfg, err := config.GetConfig(cfgPath)
	if err != nil {
		log.Fatalf("failed to get config: %s", err)
	}

	if err := application.New(&cfg).Start(ctx); err != nil {
		log.Fatalf("application error: %s", err)
	}
}

func runDemo(cfgPath string) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGABRT)
	defer cancel()

	cfg, err := config.GetConfig(cfgPath)
	if err != nil {
		log.Fatalf("failed to get config: %s", err)
	}

	if err := application.New(&cfg).Script(ctx, os.Stdout, demoScript); err != nil {
		log.Fatalf("application error: %s", err)
	}
}
