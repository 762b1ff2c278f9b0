package summary

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// StatusRemovedTempFile marks rows describing intermediates that snakemake
// already cleaned up. They carry no useful dependency information and are
// dropped before graph construction.
const StatusRemovedTempFile = "removed temp file"

// requiredColumns are the summary header columns the parser depends on.
var requiredColumns = []string{
	"output_file",
	"date",
	"rule",
	"version",
	"input-file(s)",
	"status",
	"plan",
}

// Descriptor describes a single file node. Nodes that only ever appear as
// inputs carry blank metadata; a node's authoritative metadata comes from
// the row that produced it.
type Descriptor struct {
	Node    string
	Date    string
	Rule    string
	Version string
	Status  string
	Plan    string
}

// Pair is one normalized dependency edge: Target was produced from Source.
type Pair struct {
	Source Descriptor
	Target Descriptor
}

// Parse reads a tab-separated detailed summary and returns the normalized
// pair list. A missing required column or a short row is a fatal error; the
// caller gets a complete record set or none at all.
func Parse(r io.Reader) ([]Pair, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read summary header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("summary header is missing required column %q", name)
		}
	}

	var pairs []Pair
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read summary row: %w", err)
		}
		if len(row) < len(header) {
			return nil, fmt.Errorf("summary row %d has %d fields, expected %d", line, len(row), len(header))
		}

		status := row[col["status"]]
		if status == StatusRemovedTempFile {
			continue
		}

		target := Descriptor{
			Node:    row[col["output_file"]],
			Date:    row[col["date"]],
			Rule:    row[col["rule"]],
			Version: row[col["version"]],
			Status:  status,
			Plan:    row[col["plan"]],
		}

		for _, input := range strings.Split(row[col["input-file(s)"]], ",") {
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			pairs = append(pairs, Pair{
				Source: Descriptor{Node: input},
				Target: target,
			})
		}
	}

	return pairs, nil
}
