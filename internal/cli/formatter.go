package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/idelchi/dusage/internal/du"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// view holds the display settings applied to a finished report.
type view struct {
	Units     du.Units
	BlockSize du.BlockSize
	Threshold du.Threshold
	Summarize bool
	Total     bool
}

// format renders a usage value with the view's units.
func (v view) format(u du.Usage) string {
	return du.Format(u, v.BlockSize, v.Units)
}

// displayed returns the nodes to print, in pre-order per tree. The threshold
// only hides nodes; their usage still counts towards every ancestor.
func displayed(report *du.Report, v view) []*du.Node {
	var nodes []*du.Node

	for _, tree := range report.Trees {
		if v.Summarize {
			if v.Threshold.Admits(tree.Root.Total) {
				nodes = append(nodes, tree.Root)
			}

			continue
		}

		for node := range tree.Walk(du.Unlimited) {
			if v.Threshold.Admits(node.Total) {
				nodes = append(nodes, node)
			}
		}
	}

	return nodes
}

// PrintTable outputs one line per displayed node: size, then path.
func PrintTable(report *du.Report, v view, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	for _, node := range displayed(report, v) {
		fmt.Fprintf(w, "%s\t%s\n", v.format(node.Total), node.Path)
	}

	if v.Total {
		fmt.Fprintf(w, "%s\ttotal\n", v.format(report.GrandTotal))
	}

	return w.Flush()
}

// jsonEntry is one displayed node in JSON output.
type jsonEntry struct {
	Path  string  `json:"path"`
	Kind  du.Kind `json:"kind"`
	Depth int     `json:"depth"`
	Size  string  `json:"size"`
	Bytes uint64  `json:"bytes"`
	Self  uint64  `json:"self_bytes"`
}

// jsonError is one failure in JSON output.
type jsonError struct {
	Path   string `json:"path,omitempty"`
	Op     string `json:"op,omitempty"`
	Reason string `json:"reason"`
}

// jsonReport is the JSON document written by PrintJSON.
type jsonReport struct {
	Entries []jsonEntry `json:"entries"`
	Total   *jsonEntry  `json:"total,omitempty"`
	Errors  []jsonError `json:"errors,omitempty"`
	Elapsed string      `json:"elapsed"`
}

// PrintJSON outputs the displayed nodes in JSON format.
func PrintJSON(report *du.Report, v view, writer io.Writer) error {
	out := jsonReport{
		Entries: []jsonEntry{},
		Elapsed: report.Elapsed.String(),
	}

	for _, node := range displayed(report, v) {
		out.Entries = append(out.Entries, jsonEntry{
			Path:  node.Path,
			Kind:  node.Kind,
			Depth: node.Depth,
			Size:  v.format(node.Total),
			Bytes: uint64(node.Total),
			Self:  uint64(node.Self),
		})
	}

	if v.Total {
		out.Total = &jsonEntry{
			Path:  "total",
			Kind:  du.KindDir,
			Size:  v.format(report.GrandTotal),
			Bytes: uint64(report.GrandTotal),
		}
	}

	for _, err := range report.Failures {
		var rootErr *du.RootAccessError
		if errors.As(err, &rootErr) {
			out.Errors = append(out.Errors, jsonError{Path: rootErr.Path, Op: "access", Reason: rootErr.Err.Error()})

			continue
		}

		out.Errors = append(out.Errors, jsonError{Reason: err.Error()})
	}

	for _, e := range report.SoftErrors() {
		out.Errors = append(out.Errors, jsonError{Path: e.Path, Op: e.Op, Reason: e.Reason()})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintErrors writes every root failure and soft error as one line.
func PrintErrors(report *du.Report, writer io.Writer) {
	for _, err := range report.Failures {
		fmt.Fprintf(writer, "dusage: %v\n", err)
	}

	for _, e := range report.SoftErrors() {
		fmt.Fprintf(writer, "dusage: cannot %s '%s': %s\n", e.Op, e.Path, e.Reason())
	}
}
