package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BrandPulseCLI/internal/client"
)

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatYAML, ParseFormat("YAML"))
	assert.Equal(t, FormatTable, ParseFormat("table"))
	assert.Equal(t, FormatTable, ParseFormat(""))
	assert.Equal(t, FormatTable, ParseFormat("garbage"))
}

func TestJSONFormatter(t *testing.T) {
	formatter := NewJSONFormatter(false)

	out, err := formatter.Format(map[string]int{"total": 3})
	require.NoError(t, err)

	var decoded map[string]int
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, 3, decoded["total"])
}

func TestYAMLFormatter(t *testing.T) {
	formatter := NewYAMLFormatter()

	out, err := formatter.Format(map[string]string{"region": "TN"})
	require.NoError(t, err)
	assert.Contains(t, out, "region: TN")
}

func TestTableData_String(t *testing.T) {
	table := NewTableData("ID", "Brand")
	table.AddRow("1", "Acme")
	table.AddRow("2", "Globex")

	out := table.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "Globex")
}

func TestTableData_Empty(t *testing.T) {
	table := NewTableData("ID", "Brand")
	assert.Equal(t, "No data found", table.String())
}

func TestCreateProjectsTable(t *testing.T) {
	projects := []client.Project{
		{ID: 1, BrandName: "Acme", Region: "TN", Status: "Deck Shared"},
	}

	table := CreateProjectsTable(projects)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "1", table.Rows[0][0])
	assert.Equal(t, "Acme", table.Rows[0][1])
}

// TestCreateMetricsTable проверяет, что количество видео на ревью
// выводится из агрегатов бэкенда, а не приходит отдельным полем.
func TestCreateMetricsTable(t *testing.T) {
	metrics := &client.DashboardMetrics{
		TotalProjects:   12,
		VideosGenerated: 5,
		VideosApproved:  2,
	}

	table := CreateMetricsTable(metrics)
	out := table.String()

	assert.Contains(t, out, "Videos in review")

	for _, row := range table.Rows {
		if row[0] == "Videos in review" {
			assert.Equal(t, "3", row[1])
			return
		}
	}
	t.Fatal("expected 'Videos in review' row")
}

func TestColorFormatter_Disabled(t *testing.T) {
	table := NewTableData("Status")
	table.AddRow("Client approved")

	formatter := NewColorFormatter(NewTableFormatter(), false)
	out, err := formatter.Format(table)
	require.NoError(t, err)
	assert.False(t, strings.Contains(out, "\033["))
}

func TestColorFormatter_Enabled(t *testing.T) {
	table := NewTableData("Status")
	table.AddRow("Client approved")
	table.AddRow("Client rejected")

	formatter := NewColorFormatter(NewTableFormatter(), true)
	out, err := formatter.Format(table)
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "\033["))
}

func TestGetFormatter(t *testing.T) {
	assert.IsType(t, &JSONFormatter{}, GetFormatter(FormatJSON, true, false))
	assert.IsType(t, &YAMLFormatter{}, GetFormatter(FormatYAML, true, false))
	assert.IsType(t, &TableFormatter{}, GetFormatter(FormatTable, true, false))
	// Цвета оборачивают только табличный вывод
	assert.IsType(t, &ColorFormatter{}, GetFormatter(FormatTable, true, true))
	assert.IsType(t, &JSONFormatter{}, GetFormatter(FormatJSON, true, true))
}
