package main

import "github.com/charmbracelet/lipgloss"

type styles struct {
	app          lipgloss.Style
	logo         lipgloss.Style
	label        lipgloss.Style
	value        lipgloss.Style
	stageDone    lipgloss.Style
	stageActive  lipgloss.Style
	stagePending lipgloss.Style
	success      lipgloss.Style
	error        lipgloss.Style
	outcome      lipgloss.Style
	help         lipgloss.Style
}

type ThemeName string

const (
	ThemeMatrix    ThemeName = "matrix"
	ThemeAmber     ThemeName = "amber"
	ThemeCyberpunk ThemeName = "cyberpunk"
	ThemeIceBlue   ThemeName = "ice"
	ThemeDracula   ThemeName = "dracula"
	ThemeFire      ThemeName = "fire"
	ThemeCyan      ThemeName = "cyan"
)

type ThemePalette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Inactive  lipgloss.Color
}

var palettes = map[ThemeName]ThemePalette{
	ThemeCyan: {
		Primary:   lipgloss.Color("51"),
		Secondary: lipgloss.Color("33"),
		Success:   lipgloss.Color("46"),
		Warning:   lipgloss.Color("226"),
		Error:     lipgloss.Color("196"),
		Inactive:  lipgloss.Color("240"),
	},
	ThemeMatrix: {
		Primary:   lipgloss.Color("82"),
		Secondary: lipgloss.Color("46"),
		Success:   lipgloss.Color("82"),
		Warning:   lipgloss.Color("190"),
		Error:     lipgloss.Color("196"),
		Inactive:  lipgloss.Color("240"),
	},
	ThemeAmber: {
		Primary:   lipgloss.Color("220"),
		Secondary: lipgloss.Color("214"),
		Success:   lipgloss.Color("220"),
		Warning:   lipgloss.Color("208"),
		Error:     lipgloss.Color("196"),
		Inactive:  lipgloss.Color("240"),
	},
	ThemeCyberpunk: {
		Primary:   lipgloss.Color("201"),
		Secondary: lipgloss.Color("141"),
		Success:   lipgloss.Color("51"),
		Warning:   lipgloss.Color("213"),
		Error:     lipgloss.Color("196"),
		Inactive:  lipgloss.Color("240"),
	},
	ThemeIceBlue: {
		Primary:   lipgloss.Color("159"),
		Secondary: lipgloss.Color("39"),
		Success:   lipgloss.Color("51"),
		Warning:   lipgloss.Color("159"),
		Error:     lipgloss.Color("196"),
		Inactive:  lipgloss.Color("240"),
	},
	ThemeDracula: {
		Primary:   lipgloss.Color("141"),
		Secondary: lipgloss.Color("117"),
		Success:   lipgloss.Color("84"),
		Warning:   lipgloss.Color("212"),
		Error:     lipgloss.Color("203"),
		Inactive:  lipgloss.Color("240"),
	},
	ThemeFire: {
		Primary:   lipgloss.Color("9"),
		Secondary: lipgloss.Color("196"),
		Success:   lipgloss.Color("226"),
		Warning:   lipgloss.Color("208"),
		Error:     lipgloss.Color("196"),
		Inactive:  lipgloss.Color("240"),
	},
}

func GetTheme(theme ThemeName) styles {
	if palette, ok := palettes[theme]; ok {
		return newStylesFromPalette(palette)
	}
	return newStylesFromPalette(palettes[ThemeCyan])
}

func ListThemes() []ThemeName {
	return []ThemeName{
		ThemeCyan,
		ThemeMatrix,
		ThemeAmber,
		ThemeCyberpunk,
		ThemeIceBlue,
		ThemeDracula,
		ThemeFire,
	}
}

func newStylesFromPalette(p ThemePalette) styles {
	return styles{
		app:  lipgloss.NewStyle().Margin(1, 2),
		logo: lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		label: lipgloss.NewStyle().
			Foreground(p.Inactive),
		value: lipgloss.NewStyle().
			Foreground(p.Secondary),
		stageDone:    lipgloss.NewStyle().Foreground(p.Success),
		stageActive:  lipgloss.NewStyle().Foreground(p.Warning).Bold(true),
		stagePending: lipgloss.NewStyle().Foreground(p.Inactive),
		success:      lipgloss.NewStyle().Foreground(p.Success).Bold(true),
		error:        lipgloss.NewStyle().Foreground(p.Error).Bold(true),
		outcome: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Success).
			Padding(0, 2).
			MarginTop(1),
		help: lipgloss.NewStyle().Foreground(p.Inactive).MarginTop(1),
	}
}
