package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for the play REPL.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Subtle gradient from indigo to rose
	s1 := termenv.String("   _____ _").Foreground(p.Color("#818cf8"))
	s2 := termenv.String("  / ____| |").Foreground(p.Color("#a78bfa"))
	s3 := termenv.String(" | (___ | | _____ _ __   ___ ").Foreground(p.Color("#c084fc"))
	s4 := termenv.String("  \\___ \\| |/ / _ \\ '_ \\ / _ \\").Foreground(p.Color("#e879f9"))
	s5 := termenv.String("  ____) |   <  __/ | | |  __/").Foreground(p.Color("#f472b6"))
	s6 := termenv.String(" |_____/|_|\\_\\___|_| |_|\\___|").Foreground(p.Color("#fb7185"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println(s6)
	fmt.Println()
}
