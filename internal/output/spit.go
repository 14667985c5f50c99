// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/staranto/f1ctlgo/internal/attrs"
	"github.com/staranto/f1ctlgo/internal/config"
	"github.com/staranto/f1ctlgo/internal/filters"
)

// Formats accepted by --output.
var Formats = []string{"text", "json", "yaml", "raw", "ics"}

// Options are the presentation flags shared by every query command.
type Options struct {
	Output string
	Filter string
	Sort   string
	Color  bool
	Titles bool
	// Calendar names the VCALENDAR when Output is ics.
	Calendar string
}

// OptionsFromCommand reads Options from the global flags of cmd.
func OptionsFromCommand(cmd *cli.Command) Options {
	return Options{
		Output:   cmd.String("output"),
		Filter:   cmd.String("filter"),
		Sort:     cmd.String("sort"),
		Color:    cmd.Bool("color"),
		Titles:   cmd.Bool("titles"),
		Calendar: "f1ctl " + cmd.Name,
	}
}

// SliceDiceSpit orchestrates filtering, sorting, transforming and rendering
// of a dataset according to command flags and attribute specifications. raw
// must hold a JSON array of rows.
func SliceDiceSpit(raw bytes.Buffer, attrs attrs.AttrList, cmd *cli.Command, w io.Writer) error {
	return Spit(raw, attrs, OptionsFromCommand(cmd), w)
}

// Spit is SliceDiceSpit without the cli dependency.
func Spit(raw bytes.Buffer, al attrs.AttrList, opts Options, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}

	// If raw, just dump it and go home.
	if opts.Output == "raw" {
		_, err := w.Write(raw.Bytes())
		return err
	}

	fullDataset := gjson.Parse(raw.String())

	if opts.Output == "ics" {
		al = withCalendarAttrs(al)
	}

	// Filter first so that the following steps work on a smaller dataset.
	filteredDataset := filters.FilterDataset(fullDataset, al, opts.Filter)
	if filteredDataset == nil {
		filteredDataset = []map[string]interface{}{}
	}

	// Sort on untransformed values so timestamps order chronologically even
	// when rendered relative.
	SortDataset(filteredDataset, opts.Sort)

	if opts.Output == "ics" {
		return CalendarWriter(filteredDataset, opts.Calendar, w)
	}

	for _, row := range filteredDataset {
		for _, attr := range al {
			if attr.TransformSpec != "" && attr.Key != "*" {
				row[attr.OutputKey] = attr.Transform(row[attr.OutputKey])
			}
		}
	}

	switch opts.Output {
	case "json":
		// TODO Keep attr order in the JSON document. encoding/json sorts map keys.
		jsonOutput, err := json.Marshal(included(filteredDataset, al))
		if err != nil {
			return fmt.Errorf("failed to marshal json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(jsonOutput))
		return err
	case "yaml":
		yamlOutput, err := yaml.Marshal(included(filteredDataset, al))
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(yamlOutput)
		return err
	default:
		TableWriter(filteredDataset, al, opts, w)
	}

	return nil
}

// included drops the values of attrs that are only there for filtering and
// sorting.
func included(dataset []map[string]interface{}, al attrs.AttrList) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(dataset))
	for _, row := range dataset {
		r := make(map[string]interface{}, len(row))
		for _, attr := range al {
			if attr.Include {
				r[attr.OutputKey] = row[attr.OutputKey]
			}
		}
		out = append(out, r)
	}
	return out
}

// TableWriter renders the result set in a tabular form honoring color,
// titles and padding options.
func TableWriter(
	resultSet []map[string]interface{},
	attrs attrs.AttrList,
	opts Options,
	w io.Writer) {

	if len(resultSet) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	pad, _ := config.GetInt("padding", 1)
	log.Debugf("padding: %v", pad)

	var rows [][]string
	for _, result := range resultSet {
		row := make([]string, 0, len(result))
		for _, attr := range attrs {
			if !attr.Include {
				continue
			}
			row = append(row, InterfaceToString(result[attr.OutputKey], "-"))
		}
		rows = append(rows, row)
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if opts.Titles {
		var headers []string
		for _, attr := range attrs {
			if attr.Include {
				headers = append(headers, attr.OutputKey)
			}
		}

		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#e10600")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return
}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if b, ok := value.(bool); ok {
		return strconv.FormatBool(b)
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}
