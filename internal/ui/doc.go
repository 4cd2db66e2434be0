// Package ui implements the interactive dashboard using bubbletea's Elm architecture.
//
// The TUI provides four sections mirroring the publishing workflow:
//  1. [state.SectionUpload] : Pick videos, toggle platforms, attach AI content, submit
//  2. [state.SectionAccounts] : Connect platform accounts with credentials or OAuth
//  3. [state.SectionSchedule] : Review and cancel pending scheduled posts
//  4. [state.SectionAnalytics] : Aggregate performance counters and charts
//
// The root [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Exactly one section is active at a time; switching sections always issues a
// fresh fetch command so no view renders stale data. Server responses arrive
// as typed messages produced by tea.Cmd closures around the [Backend].
//
// Keyboard navigation uses tab to cycle sections and vim-style bindings
// (j/k, enter, esc, y/n, q) within them, with contextual help displayed via
// charmbracelet/bubbles/help.
package ui
