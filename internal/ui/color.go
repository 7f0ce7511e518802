// Package ui holds the terminal presentation helpers shared by commands
package ui

import (
	"github.com/pterm/pterm"
)

// DarkTheme selects the light variants of each colour.
var DarkTheme bool

type paint func(a ...any) string

func pick(normal, light paint, a any) string {
	if DarkTheme {
		return light(a)
	}

	return normal(a)
}

func Green(a any) string {
	return pick(pterm.Green, pterm.LightGreen, a)
}

func Yellow(a any) string {
	return pick(pterm.Yellow, pterm.LightYellow, a)
}

func Blue(a any) string {
	return pick(pterm.Blue, pterm.LightBlue, a)
}

func Red(a any) string {
	return pick(pterm.Red, pterm.LightRed, a)
}

// Highlight emphasises a value against the terminal background.
func Highlight(a any) string {
	return pick(pterm.Black, pterm.LightWhite, a)
}
