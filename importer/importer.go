// Package importer загружает список компаний или готовый граф из CSV, XLSX и JSON.
package importer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"iluminati/company"
	"iluminati/graph"
)

var (
	// ErrUnsupportedFormat расширение файла не поддерживается
	ErrUnsupportedFormat = errors.New("nepodporovaný formát súboru")
	// ErrFileTooLarge файл превышает MaxFileSize
	ErrFileTooLarge = errors.New("súbor je príliš veľký")
)

// newBatchID префикс id узлов без IČO, у каждого импорта свой
var newBatchID = func() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// idAllocator выдает id узлам одного импорта. Узел с IČO получает тот же id,
// что и корень графа компании, поэтому повторный импорт обновляет запись, а не затирает чужую.
type idAllocator struct {
	batch string
	seen  map[string]bool
}

func newIDAllocator() *idAllocator {
	return &idAllocator{batch: newBatchID(), seen: make(map[string]bool)}
}

// assign ставит id узлу; false означает повтор IČO внутри файла
func (a *idAllocator) assign(n *graph.Node, row int) bool {
	if company.IsValidICO(n.Identifier) {
		n.ID = graph.CompanyNodeID(company.CleanICO(n.Identifier))
	} else {
		n.ID = fmt.Sprintf("import-%s-%d", a.batch, row)
	}
	if a.seen[n.ID] {
		return false
	}
	a.seen[n.ID] = true
	return true
}

// Format формат входного файла
type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "xlsx"
	FormatJSON  Format = "json"
)

// MaxFileSize ограничение на размер входного файла
const MaxFileSize = 20 << 20

// DetectFormat определяет формат по расширению имени файла
func DetectFormat(name string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	switch ext {
	case "csv":
		return FormatCSV, nil
	case "xlsx":
		return FormatExcel, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: .%s", ErrUnsupportedFormat, ext)
	}
}

// Parse читает файл в формате, определенном по имени, и возвращает граф
func Parse(name string, r io.Reader) (*graph.Graph, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("%w: %s > %d B", ErrFileTooLarge, name, MaxFileSize)
	}

	switch format {
	case FormatCSV:
		return ParseCSV(data)
	case FormatExcel:
		return ParseExcel(data)
	default:
		return ParseJSON(data)
	}
}

// ParseFile открывает файл с диска и разбирает его
func ParseFile(path string) (*graph.Graph, error) {
	if _, err := DetectFormat(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return Parse(path, f)
}

// foldHeader приводит заголовок колонки к нижнему регистру без диакритики: "IČO" -> "ico"
func foldHeader(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// columnIndex ищет первую колонку, чей сложенный заголовок совпадает с одним из ключей.
// Сначала точные совпадения, затем вхождения.
func columnIndex(headers []string, keys ...string) int {
	for _, key := range keys {
		for i, h := range headers {
			if h == key {
				return i
			}
		}
	}
	for _, key := range keys {
		for i, h := range headers {
			if strings.Contains(h, key) {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
