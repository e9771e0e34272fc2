package cmd

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evplan/contrast-audit/pkg/fetch"
	"github.com/evplan/contrast-audit/pkg/registry"
)

// addSourceFlags wires the registry-source flags shared by the audit and
// registry commands.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("file", "f", "", "Path to a registry JSON file (or HTML swatch page with --format html)")
	cmd.Flags().StringP("url", "u", "", "URL of a registry document to download")
	cmd.Flags().StringP("format", "", "", "Registry format: json or html (default: guessed from the source name)")
}

// loadRegistry resolves the source flags into a parsed registry and a
// human-readable source label for logs and history.
func loadRegistry(cmd *cobra.Command) (*registry.Registry, string, error) {
	file, _ := cmd.Flags().GetString("file")
	rawURL, _ := cmd.Flags().GetString("url")
	format, _ := cmd.Flags().GetString("format")

	var (
		data   []byte
		source string
		err    error
	)
	switch {
	case file != "" && rawURL != "":
		return nil, "", fmt.Errorf("use either --file or --url, not both")
	case file != "":
		source = file
		data, err = os.ReadFile(file)
		if err != nil {
			return nil, "", fmt.Errorf("read registry: %w", err)
		}
	case rawURL != "":
		source = rawURL
		if proxy, _ := rootCmd.PersistentFlags().GetString("proxy"); proxy != "" {
			if err := fetch.SetProxy(proxy); err != nil {
				return nil, "", err
			}
		}
		data, err = fetch.Registry(rawURL)
		if err != nil {
			return nil, "", err
		}
	default:
		return nil, "", fmt.Errorf("a registry source is required (--file or --url)")
	}

	if format == "" {
		if strings.HasSuffix(strings.ToLower(source), ".html") || strings.HasSuffix(strings.ToLower(source), ".htm") {
			format = "html"
		} else {
			format = "json"
		}
	}

	var reg *registry.Registry
	switch format {
	case "json":
		reg, err = registry.LoadJSON(data)
	case "html":
		reg, err = registry.ImportHTML(bytes.NewReader(data))
	default:
		return nil, "", fmt.Errorf("unknown registry format %q (want json or html)", format)
	}
	if err != nil {
		return nil, "", err
	}
	return reg, source, nil
}
