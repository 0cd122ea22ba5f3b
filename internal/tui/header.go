package tui

import (
	"fmt"
)

// HeaderModel renders the title line: name, version and term count.
type HeaderModel struct {
	version string
	terms   int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{version: version}
}

// SetTerms updates the number of accepted terms.
func (h *HeaderModel) SetTerms(n int) {
	h.terms = n
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "Fraction Accumulator"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	return titleStyle.Render(titleText) +
		versionStyle.Render(fmt.Sprintf(" | %d terms", h.terms))
}
