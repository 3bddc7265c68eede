package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/sfapi/internal/constants"
	"github.com/fivetwenty-io/sfapi/pkg/sfapi"
)

// Output formats.
const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"

	defaultYAMLIndent = 2

	NotAvailable = "N/A"
	Masked       = "***"
)

// column selects one field of an entity for table output.
type column struct {
	header string
	field  string
}

// StandardJSONRenderer writes data as indented JSON.
func StandardJSONRenderer[T any](w io.Writer, data T) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer writes data as YAML.
func StandardYAMLRenderer[T any](w io.Writer, data T) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(defaultYAMLIndent)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return encoder.Close()
}

// outputFormat returns the validated --output value.
func outputFormat() (string, error) {
	output := strings.ToLower(viper.GetString("output"))

	switch output {
	case "", OutputFormatTable:
		return OutputFormatTable, nil
	case OutputFormatJSON, OutputFormatYAML:
		return output, nil
	default:
		return "", fmt.Errorf("%w: %q", constants.ErrInvalidOutputType, output)
	}
}

// renderData writes data as JSON or YAML, or calls table for table output.
func renderData(w io.Writer, data any, table func() error) error {
	output, err := outputFormat()
	if err != nil {
		return err
	}

	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(w, data)
	case OutputFormatYAML:
		return StandardYAMLRenderer(w, data)
	default:
		return table()
	}
}

// renderList renders the "items" of a list response, one row per item, using
// the fields of the entity section.
func renderList(w io.Writer, resp *sfapi.Response, entity string, columns []column) error {
	return renderData(w, resp.Data, func() error {
		items, _ := resp.Data["items"].([]any)
		if len(items) == 0 {
			_, _ = fmt.Fprintln(w, "No results found")

			return nil
		}

		headers := make([]string, 0, len(columns))
		for _, col := range columns {
			headers = append(headers, col.header)
		}

		table := tablewriter.NewWriter(w)
		table.Header(headers)

		for _, item := range items {
			fields := entityFields(item, entity)

			row := make([]string, 0, len(columns))
			for _, col := range columns {
				row = append(row, formatCell(fields[col.field]))
			}

			_ = table.Append(row)
		}

		err := table.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		if pageCount := intValue(resp.Data["pageCount"]); pageCount > 1 {
			_, _ = fmt.Fprintf(w, "\nShowing page %d of %d. Use --page to see more.\n", intValue(resp.Data["page"]), pageCount)
		}

		return nil
	})
}

// renderEntity renders one section of a detail response as a property table.
func renderEntity(w io.Writer, resp *sfapi.Response, entity string) error {
	return renderData(w, resp.Data, func() error {
		fields := entityFields(resp.Data, entity)
		if len(fields) == 0 {
			fields = resp.Data
		}

		return renderProperties(w, fields)
	})
}

// renderKeyValues renders a flat object response.
func renderKeyValues(w io.Writer, resp *sfapi.Response) error {
	return renderData(w, resp.Data, func() error {
		return renderProperties(w, resp.Data)
	})
}

func renderProperties(w io.Writer, fields map[string]any) error {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	for _, key := range keys {
		_ = table.Append(key, formatCell(fields[key]))
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// renderMessage prints a confirmation, or the raw response for json and yaml.
func renderMessage(w io.Writer, resp *sfapi.Response, message string) error {
	return renderData(w, resp.Data, func() error {
		_, err := fmt.Fprintln(w, message)

		return err
	})
}

func entityFields(value any, entity string) map[string]any {
	object, ok := value.(map[string]any)
	if !ok {
		return nil
	}

	if section, ok := object[entity].(map[string]any); ok {
		return section
	}

	return object
}

func formatCell(value any) string {
	var text string

	switch v := value.(type) {
	case nil:
		return NotAvailable
	case string:
		text = v
	case float64:
		text = strconv.FormatFloat(v, 'f', -1, 64)
	case map[string]any, []any:
		encoded, err := json.Marshal(v)
		if err != nil {
			return NotAvailable
		}

		text = string(encoded)
	default:
		text = fmt.Sprint(v)
	}

	if text == "" {
		return NotAvailable
	}

	return truncate(text, constants.TableTruncateLength)
}

func truncate(text string, length int) string {
	runes := []rune(text)
	if len(runes) <= length {
		return text
	}

	return string(runes[:length-3]) + "..."
}

func intValue(value any) int {
	switch v := value.(type) {
	case float64:
		return int(v)
	case string:
		number, _ := strconv.Atoi(v)

		return number
	default:
		return 0
	}
}

// parseID parses a positive numeric identifier argument.
func parseID(value string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", constants.ErrInvalidID, value)
	}

	return id, nil
}

// parseIDs parses a list of identifiers, accepting "1,2" and "1 2".
func parseIDs(values []string) ([]int, error) {
	var ids []int

	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}

			id, err := parseID(part)
			if err != nil {
				return nil, err
			}

			ids = append(ids, id)
		}
	}

	return ids, nil
}

// writeBinary copies a download to path, or to w when path is empty. Writing
// to an interactive terminal is refused.
func writeBinary(w io.Writer, resp *sfapi.BinaryResponse, path string) (int64, error) {
	defer func() { _ = resp.Close() }()

	if path == "" {
		if file, ok := w.(*os.File); ok && term.IsTerminal(int(file.Fd())) { //nolint:gosec // file descriptors fit in int
			return 0, constants.ErrOutputIsTerminal
		}

		written, err := io.Copy(w, resp.Data)
		if err != nil {
			return written, fmt.Errorf("writing download: %w", err)
		}

		return written, nil
	}

	// #nosec G304 -- the path is chosen by the user running the CLI
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.DownloadFilePerm)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", path, err)
	}

	written, err := io.Copy(file, resp.Data)
	if err != nil {
		_ = file.Close()

		return written, fmt.Errorf("writing %s: %w", path, err)
	}

	err = file.Close()
	if err != nil {
		return written, fmt.Errorf("closing %s: %w", path, err)
	}

	return written, nil
}
