package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"voiceguard/demo/client"
	"voiceguard/demo/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment
	_ = godotenv.Load()

	serverURL := flag.String("url", client.GetEnvOrDefault("VOICEGUARD_URL", "http://localhost:8080"), "Detection server URL")
	filePath := flag.String("file", "", "Audio file to analyze")
	apiKey := flag.String("api-key", os.Getenv("API_KEY"), "Use /api/detect with this key instead of the upload form")
	flag.Parse()

	if *filePath != "" {
		if _, err := os.Stat(*filePath); err != nil {
			fmt.Printf("Cannot read %s: %v\n", *filePath, err)
			os.Exit(1)
		}
	}

	m := tui.NewModel(client.NewClient(*serverURL, *apiKey), *filePath)
	program := tea.NewProgram(m)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
