package formatters

import (
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
	"resumelens/internal/history"
	"resumelens/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// Data type keys used by the registry
const (
	TypeAny            = "any"
	TypeTextAnalysis   = "TextAnalysis"
	TypeDocuments      = "DocumentAnalyses"
	TypeResumeReview   = "ResumeReview"
	TypeMatchResult    = "MatchResult"
	TypeKeywords       = "Keywords"
	TypeHistoryEntries = "HistoryEntries"
)

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	registry.RegisterFormatter("json", TypeAny, &JSONFormatter{})
	registry.RegisterFormatter("yaml", TypeAny, &YAMLFormatter{})

	for _, f := range []Formatter{
		&AnalysisTextFormatter{},
		&DocumentsTextFormatter{},
		&ReviewTextFormatter{},
		&MatchTextFormatter{},
		&KeywordsTextFormatter{},
		&HistoryTextFormatter{},
	} {
		registry.RegisterFormatter("text", f.SupportedType(), f)
	}
	for _, f := range []Formatter{
		&AnalysisMarkdownFormatter{},
		&DocumentsMarkdownFormatter{},
		&ReviewMarkdownFormatter{},
		&MatchMarkdownFormatter{},
		&KeywordsMarkdownFormatter{},
		&HistoryMarkdownFormatter{},
	} {
		registry.RegisterFormatter("markdown", f.SupportedType(), f)
	}

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		if formatter, exists := formatters[TypeAny]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats, sorted
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.TextAnalysis:
		return TypeTextAnalysis
	case []types.DocumentAnalysis:
		return TypeDocuments
	case types.ResumeReview:
		return TypeResumeReview
	case types.MatchResult:
		return TypeMatchResult
	case []types.KeywordEntry:
		return TypeKeywords
	case []history.Entry:
		return TypeHistoryEntries
	default:
		return TypeAny
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return TypeAny
}

// YAMLFormatter handles YAML formatting for any data type
type YAMLFormatter struct{}

func (yf *YAMLFormatter) Format(data any) (string, error) {
	yamlData, err := yaml.Marshal(data)
	if err != nil {
		return "", err
	}
	return string(yamlData), nil
}

func (yf *YAMLFormatter) SupportedType() string {
	return TypeAny
}
