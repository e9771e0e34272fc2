package registry

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/evplan/contrast-audit/pkg/wcag"
)

// LoadJSON builds a registry from a JSON document of the form:
//
//	{
//	  "cases": [
//	    {"name": "Body text", "category": "Typography",
//	     "foreground": "#333333", "background": "#ffffff"},
//	    ...
//	  ]
//	}
//
// Colors are hex strings; category defaults to "General" when omitted.
func LoadJSON(data []byte) (*Registry, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("registry: invalid JSON")
	}
	root := gjson.ParseBytes(data)
	caseList := root.Get("cases")
	if !caseList.IsArray() {
		return nil, fmt.Errorf("registry: missing \"cases\" array")
	}

	var cases []TestCase
	var loadErr error
	caseList.ForEach(func(_, entry gjson.Result) bool {
		idx := len(cases)
		name := entry.Get("name").String()
		category := entry.Get("category").String()
		if category == "" {
			category = "General"
		}
		fg, err := wcag.ParseHex(entry.Get("foreground").String())
		if err != nil {
			loadErr = fmt.Errorf("registry: case %d (%q): foreground: %w", idx, name, err)
			return false
		}
		bg, err := wcag.ParseHex(entry.Get("background").String())
		if err != nil {
			loadErr = fmt.Errorf("registry: case %d (%q): background: %w", idx, name, err)
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
	if loadErr != nil {
		return nil, loadErr
	}
	return New(cases)
}
