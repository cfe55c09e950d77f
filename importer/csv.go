package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"iluminati/company"
	"iluminati/graph"
)

const csvDetails = "Importované z CSV"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseCSV разбирает CSV со списком компаний. Разделитель запятая или точка с запятой,
// кодировка UTF-8 или Windows-1250 (экспорт из Excel на словацкой локали).
func ParseCSV(data []byte) (*graph.Graph, error) {
	text, err := decodeText(data)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(text))
	reader.Comma = detectDelimiter(text)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	g := graph.New()
	if len(rows) == 0 {
		return g, nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = foldHeader(h)
	}
	nameIdx := columnIndex(headers, "obchodne meno", "nazov", "name", "firma")
	icoIdx := columnIndex(headers, "ico", "identifier", "id")
	countryIdx := columnIndex(headers, "krajina", "country")

	// Без распознанных колонок имя берется из первой, IČO из соседней
	if nameIdx < 0 {
		nameIdx = 0
	}
	if icoIdx < 0 || icoIdx == nameIdx {
		icoIdx = 1
		if nameIdx == 1 {
			icoIdx = 0
		}
	}

	ids := newIDAllocator()
	for i, row := range rows[1:] {
		if len(row) < 2 {
			continue
		}
		name := cell(row, nameIdx)
		if name == "" {
			continue
		}
		node := graph.Node{
			Label:      name,
			Type:       graph.NodeCompany,
			Identifier: cell(row, icoIdx),
			Details:    csvDetails,
		}
		if country := cell(row, countryIdx); country != "" {
			node.Country = company.NormalizeCountry(country)
		}
		if ids.assign(&node, i) {
			g.Nodes = append(g.Nodes, node)
		}
	}
	return g, nil
}

// decodeText убирает BOM и перекодирует Windows-1250 в UTF-8, если вход не валидный UTF-8
func decodeText(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return data, nil
	}
	decoded, _, err := transform.Bytes(charmap.Windows1250.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode Windows-1250: %w", err)
	}
	return decoded, nil
}

// detectDelimiter выбирает ';', если в строке заголовка точек с запятой больше, чем запятых
func detectDelimiter(text []byte) rune {
	header := text
	if i := bytes.IndexByte(text, '\n'); i >= 0 {
		header = text[:i]
	}
	if bytes.Count(header, []byte{';'}) > bytes.Count(header, []byte{','}) {
		return ';'
	}
	return ','
}
