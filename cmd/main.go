// FilePath: cmd/main.go
package main

import (
	"fmt"
	"log"
	"os"

	tm "github.com/buger/goterm"
	"github.com/photodream/hub/internal/config"
	"github.com/photodream/hub/internal/server"
	nuts "github.com/vaudience/go-nuts"
)

func main() {
	// Clear console and draw logo
	ClearConsole()
	DrawLogo()
	// Initialize version info
	nuts.InitVersion()
	nuts.L.Infof("[Main] Starting PhotoDream Hub v%s", nuts.GetVersion())

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create and start server
	srv := server.New(cfg)
	if err := srv.Start(); err != nil {
		nuts.L.Errorf("[Main] Server error: %v", err)
		os.Exit(1)
	}
}

// ClearConsole clears the console screen and draws the logo.
func ClearConsole() {
	tm.Clear()
	tm.MoveCursor(1, 1)
	tm.Flush()
}

func DrawLogo() {
	fmt.Println()
	lines := []string{
		"    ____  __          __        ____                           ",
		"   / __ \\/ /_  ____  / /_____  / __ \\________  ____ _____ ___  ",
		"  / /_/ / __ \\/ __ \\/ __/ __ \\/ / / / ___/ _ \\/ __ `/ __ `__ \\ ",
		" / ____/ / / / /_/ / /_/ /_/ / /_/ / /  /  __/ /_/ / / / / / / ",
		"/_/   /_/ /_/\\____/\\__/\\____/_____/_/   \\___/\\__,_/_/ /_/ /_/  ",
		"..............................................................  " + nuts.GetVersion(),
	}

	for _, line := range lines {
		fmt.Println(line)
	}
}
