package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Deepak7704/100xSWE/internal/client"
)

func main() {
	serverFlag := flag.String("server", "", "Service base URL (defaults to $SWE_SERVER or http://localhost:8080)")
	repoFlag := flag.String("repo", "", "GitHub repository URL to change")
	taskFlag := flag.String("task", "", "Change request to carry out")
	jobFlag := flag.String("job", "", "Attach to an already submitted job")
	themeFlag := flag.String("theme", "", "UI theme (cyan, matrix, amber, cyberpunk, ice, dracula, fire)")
	listThemes := flag.Bool("list-themes", false, "List all available themes")
	flag.Parse()

	if *listThemes {
		fmt.Println("Available themes:")
		for _, theme := range ListThemes() {
			fmt.Printf("  - %s\n", theme)
		}
		os.Exit(0)
	}

	if *jobFlag == "" && (*repoFlag == "" || *taskFlag == "") {
		fmt.Println("Provide --repo and --task to submit a change request, or --job to attach to one.")
		flag.Usage()
		os.Exit(1)
	}

	server := *serverFlag
	if server == "" {
		server = os.Getenv("SWE_SERVER")
	}
	if server == "" {
		server = "http://localhost:8080"
	}

	selectedTheme := *themeFlag
	if selectedTheme == "" {
		selectedTheme = os.Getenv("SWE_THEME")
	}
	if selectedTheme == "" {
		selectedTheme = "cyan"
	}

	theme := ThemeName(selectedTheme)
	validTheme := false
	for _, t := range ListThemes() {
		if t == theme {
			validTheme = true
			break
		}
	}
	if !validTheme {
		fmt.Printf("Invalid theme '%s'. Use --list-themes to see available options.\n", theme)
		os.Exit(1)
	}

	m := initialModel(theme, client.New(server), *repoFlag, *taskFlag, *jobFlag)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
