// Package tui hosts the word panels in a terminal.
//
// Each panel is a bordered box drawn in the colours of its frame config.
// The model only translates key presses into lifecycle controller calls;
// all panel state lives in the controller and its widgets.
//
// Component layout:
//
//	model.go    root model, key routing, Init/Update/View
//	keys.go     key bindings and help
//	theme.go    chrome colours and styles
//	header.go   top bar and status/help footer
//	panel.go    panel boxes and flow layout
//	helpers.go  layout order, string helpers
package tui
