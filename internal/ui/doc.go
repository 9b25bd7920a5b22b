// Package ui renders command output for the terminal with lipgloss styles.
//
// [Palette] holds the styles. [RenderReport] prints a verification report
// and [RenderHistory] prints journal entries.
package ui
