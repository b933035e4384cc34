// Package ui provides the colour theme for the application's user interface.
// It defines the dashboard palette and the NO_COLOR switch shared by the
// gauge rasterizer and the TUI panels.
package ui
