package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

// FormatType представляет тип форматирования вывода
type FormatType string

const (
	FormatTable FormatType = "table"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
)

// ParseFormat разбирает формат из строки, по умолчанию таблица
func ParseFormat(s string) FormatType {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "yaml":
		return FormatYAML
	default:
		return FormatTable
	}
}

// Formatter интерфейс для форматирования вывода
type Formatter interface {
	Format(data interface{}) (string, error)
}

// TableFormatter форматирует данные в виде таблицы
type TableFormatter struct{}

func NewTableFormatter() *TableFormatter {
	return &TableFormatter{}
}

func (f *TableFormatter) Format(data interface{}) (string, error) {
	switch v := data.(type) {
	case *TableData:
		return v.String(), nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}

// JSONFormatter форматирует данные в JSON
type JSONFormatter struct {
	Pretty bool
}

func NewJSONFormatter(pretty bool) *JSONFormatter {
	return &JSONFormatter{Pretty: pretty}
}

func (f *JSONFormatter) Format(data interface{}) (string, error) {
	var out []byte
	var err error

	if f.Pretty {
		out, err = json.MarshalIndent(data, "", "  ")
	} else {
		out, err = json.Marshal(data)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return string(out), nil
}

// YAMLFormatter форматирует данные в YAML
type YAMLFormatter struct{}

func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

func (f *YAMLFormatter) Format(data interface{}) (string, error) {
	out, err := yaml.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}

	return string(out), nil
}

// ColorFormatter добавляет цветовое форматирование к табличному выводу
type ColorFormatter struct {
	Formatter Formatter
	UseColors bool
}

func NewColorFormatter(formatter Formatter, useColors bool) *ColorFormatter {
	return &ColorFormatter{Formatter: formatter, UseColors: useColors}
}

func (f *ColorFormatter) Format(data interface{}) (string, error) {
	out, err := f.Formatter.Format(data)
	if err != nil {
		return "", err
	}

	if !f.UseColors {
		return out, nil
	}

	return applyColors(out), nil
}

// applyColors раскрашивает строки таблицы по содержимому
func applyColors(output string) string {
	lines := strings.Split(output, "\n")
	result := make([]string, 0, len(lines))

	for i, line := range lines {
		switch {
		case i == 0:
			// Заголовок
			result = append(result, fmt.Sprintf("\033[1;34m%s\033[0m", line))
		case strings.Contains(line, "---"):
			// Разделитель
			result = append(result, fmt.Sprintf("\033[1;90m%s\033[0m", line))
		case strings.Contains(line, "approved") || strings.Contains(line, "signed up"):
			result = append(result, fmt.Sprintf("\033[1;32m%s\033[0m", line))
		case strings.Contains(line, "rejected"):
			result = append(result, fmt.Sprintf("\033[1;31m%s\033[0m", line))
		case strings.Contains(line, "in progress") || strings.Contains(line, "review"):
			result = append(result, fmt.Sprintf("\033[1;33m%s\033[0m", line))
		default:
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// GetFormatter возвращает подходящий форматировщик
func GetFormatter(format FormatType, pretty bool, useColors bool) Formatter {
	var base Formatter

	switch format {
	case FormatJSON:
		base = NewJSONFormatter(pretty)
	case FormatYAML:
		base = NewYAMLFormatter()
	default:
		base = NewTableFormatter()
	}

	if useColors && format == FormatTable {
		return NewColorFormatter(base, useColors)
	}

	return base
}

// DetectColors определяет, нужно ли использовать цвета
func DetectColors() bool {
	if colors := os.Getenv("BRANDPULSE_COLORS"); colors != "" {
		return strings.ToLower(colors) == "true"
	}

	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}

	return (fi.Mode() & os.ModeCharDevice) != 0
}
