// Package ui provides theme and color support for the search frontends.
// It defines color schemes and ANSI escape helpers shared by the CLI
// output layer and the TUI dashboard, keeping presentation concerns out
// of the search packages.
package ui
