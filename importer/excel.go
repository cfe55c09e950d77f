package importer

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"iluminati/graph"
)

// ParseExcel разбирает первый лист XLSX-книги: первая строка заголовки, далее по компании на строку
func ParseExcel(data []byte) (*graph.Graph, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	g := graph.New()
	if len(rows) == 0 {
		return g, nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = foldHeader(h)
	}
	nameIdx := exactIndex(headers, "obchodne meno", "nazov", "name", "firma")
	icoIdx := exactIndex(headers, "ico", "id")
	typeIdx := exactIndex(headers, "pravna forma", "type")

	ids := newIDAllocator()
	for i, row := range rows[1:] {
		name := cell(row, nameIdx)
		if nameIdx < 0 {
			name = firstNonEmpty(row)
		}
		if name == "" {
			continue
		}

		details := cell(row, typeIdx)
		if details == "" {
			details = string(graph.NodeCompany)
		}
		node := graph.Node{
			Label:      name,
			Type:       graph.NodeCompany,
			Identifier: cell(row, icoIdx),
			Details:    details,
		}
		if ids.assign(&node, i) {
			g.Nodes = append(g.Nodes, node)
		}
	}
	return g, nil
}

// exactIndex ищет колонку по точному совпадению сложенного заголовка
func exactIndex(headers []string, keys ...string) int {
	for _, key := range keys {
		for i, h := range headers {
			if h == key {
				return i
			}
		}
	}
	return -1
}

func firstNonEmpty(row []string) string {
	for i := range row {
		if v := cell(row, i); v != "" {
			return v
		}
	}
	return ""
}
