package registry

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"

	"github.com/evplan/contrast-audit/pkg/wcag"
)

// ImportHTML extracts test cases from an exported theme swatch page.
// Any element annotated with data-contrast-name, data-fg and data-bg is
// picked up; data-contrast-category is optional:
//
//	<div data-contrast-name="Primary button"
//	     data-contrast-category="Buttons"
//	     data-fg="#ffffff" data-bg="#2d6cdf">...</div>
//
// Document order is preserved so reports match the page layout.
func ImportHTML(r io.Reader) (*Registry, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("registry: parse HTML: %w", err)
	}

	var cases []TestCase
	var importErr error
	doc.Find("[data-contrast-name]").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		name := sel.AttrOr("data-contrast-name", "")
		category := sel.AttrOr("data-contrast-category", "General")
		fgHex, fgOK := sel.Attr("data-fg")
		bgHex, bgOK := sel.Attr("data-bg")
		if !fgOK || !bgOK {
			importErr = fmt.Errorf("registry: swatch %q (#%d) missing data-fg or data-bg", name, i)
			return false
		}
		fg, err := wcag.ParseHex(fgHex)
		if err != nil {
			importErr = fmt.Errorf("registry: swatch %q: foreground: %w", name, err)
			return false
		}
		bg, err := wcag.ParseHex(bgHex)
		if err != nil {
			importErr = fmt.Errorf("registry: swatch %q: background: %w", name, err)
			return false
		}
		cases = append(cases, TestCase{
			Name:       name,
			Category:   category,
			Foreground: fg,
			Background: bg,
		})
		return true
	})
	if importErr != nil {
		return nil, importErr
	}
	if len(cases) == 0 {
		return nil, fmt.Errorf("registry: no swatch annotations found in document")
	}
	return New(cases)
}
