package notebook

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Cell types found in nbformat documents
const (
	CellTypeCode     = "code"
	CellTypeMarkdown = "markdown"
	CellTypeRaw      = "raw"
)

// ErrInvalidDocument is returned when the source does not look like a
// notebook document at all.
var ErrInvalidDocument = errors.New("invalid notebook document")

// Document is a parsed nbformat notebook
type Document struct {
	NBFormat int
	Cells    []Cell
}

// Cell is one notebook cell with its source flattened to a single string
type Cell struct {
	Type   string
	Source string
}

// rawDocument mirrors the nbformat JSON layout
type rawDocument struct {
	NBFormat int       `json:"nbformat"`
	Cells    []rawCell `json:"cells"`
}

type rawCell struct {
	CellType string          `json:"cell_type"`
	Source   json.RawMessage `json:"source"`
}

// Parse parses a serialized nbformat document. The source field of a cell may
// be either a plain string or a list of line strings; both forms are accepted.
func Parse(source string) (*Document, error) {
	var raw rawDocument
	if err := json.Unmarshal([]byte(source), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	if raw.NBFormat == 0 {
		return nil, fmt.Errorf("%w: missing nbformat version", ErrInvalidDocument)
	}
	if raw.Cells == nil {
		return nil, fmt.Errorf("%w: missing cells", ErrInvalidDocument)
	}

	doc := &Document{
		NBFormat: raw.NBFormat,
		Cells:    make([]Cell, 0, len(raw.Cells)),
	}

	for i, cell := range raw.Cells {
		if cell.CellType == "" {
			return nil, fmt.Errorf("%w: cell %d has no cell_type", ErrInvalidDocument, i)
		}

		text, err := flattenSource(cell.Source)
		if err != nil {
			return nil, fmt.Errorf("%w: cell %d: %v", ErrInvalidDocument, i, err)
		}

		doc.Cells = append(doc.Cells, Cell{
			Type:   cell.CellType,
			Source: text,
		})
	}

	return doc, nil
}

// flattenSource joins a cell source that is either a string or a string list
func flattenSource(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text, nil
	}

	var lines []string
	if err := json.Unmarshal(raw, &lines); err != nil {
		return "", errors.New("source is neither a string nor a list of strings")
	}

	return strings.Join(lines, ""), nil
}

// Convert renders a parsed notebook as a runnable Python script. Code cells
// are emitted with input markers, markdown and raw cells become comment
// blocks, so the script reads like the exporter output the rest of the
// pipeline already consumes.
func Convert(doc *Document) (string, error) {
	if doc == nil {
		return "", ErrInvalidDocument
	}

	var sb strings.Builder
	sb.WriteString("#!/usr/bin/env python\n")
	sb.WriteString("# coding: utf-8\n")

	codeIndex := 0
	for _, cell := range doc.Cells {
		switch cell.Type {
		case CellTypeCode:
			codeIndex++
			sb.WriteString(fmt.Sprintf("\n# In[%d]:\n\n", codeIndex))
			sb.WriteString(strings.TrimRight(cell.Source, "\n"))
			sb.WriteString("\n")
		case CellTypeMarkdown, CellTypeRaw:
			sb.WriteString("\n")
			for _, line := range strings.Split(strings.TrimRight(cell.Source, "\n"), "\n") {
				if line == "" {
					sb.WriteString("#\n")
				} else {
					sb.WriteString("# " + line + "\n")
				}
			}
		default:
			return "", fmt.Errorf("%w: unknown cell type %q", ErrInvalidDocument, cell.Type)
		}
	}

	return sb.String(), nil
}
