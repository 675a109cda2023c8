package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jrosebr1/pythonfintech/config"
	"github.com/jrosebr1/pythonfintech/logs"
	"github.com/jrosebr1/pythonfintech/state"

	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to the config.yaml file")
	flag.Parse()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		fmt.Println("Note: .env file not found, will continue using system environment variables.")
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("Fatal error: Unable to load config file '%s': %v\n", *configPath, err)
		os.Exit(1)
	}
	if err := cfg.ApplyEnv(config.LoadEnvConfig()); err != nil {
		fmt.Printf("Fatal error: Invalid environment override: %v\n", err)
		os.Exit(1)
	}

	logFilename := filepath.Join(cfg.Normal.LogDirectory, "fintech.log")
	stateFilename := filepath.Join(cfg.Normal.StateDirectory, "sessions.json")

	if err := logs.Init(cfg.Logs, logFilename); err != nil {
		fmt.Printf("Fatal error: Failed to initialize logging system: %v\n", err)
		os.Exit(1)
	}
	defer logs.Close()

	logs.Infof("Configuration loaded successfully, logs will be written to: %s", logFilename)

	store, err := state.NewFileStore(stateFilename)
	if err != nil {
		logs.Fatalf("Failed to initialize session store: %v", err)
	}
	logs.Infof("Session store initialized, results will be persisted to: %s", stateFilename)

	if _, err := NewOrchestrator(cfg, store, os.Stdout).Run(); err != nil {
		logs.Fatalf("Session failed: %v", err)
	}
}
