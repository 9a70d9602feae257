package output

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"BrandPulseCLI/internal/client"
)

// TableData представляет данные для табличного вывода
type TableData struct {
	Headers []string
	Rows    [][]string
}

// NewTableData создает новые табличные данные
func NewTableData(headers ...string) *TableData {
	return &TableData{Headers: headers}
}

// AddRow добавляет строку
func (td *TableData) AddRow(cells ...string) {
	td.Rows = append(td.Rows, cells)
}

// String возвращает строковое представление таблицы
func (td *TableData) String() string {
	if len(td.Rows) == 0 {
		return "No data found"
	}

	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	if len(td.Headers) > 0 {
		fmt.Fprintln(w, strings.Join(td.Headers, "\t"))
		separators := make([]string, len(td.Headers))
		for i := range separators {
			separators[i] = strings.Repeat("-", len(td.Headers[i]))
		}
		fmt.Fprintln(w, strings.Join(separators, "\t"))
	}

	for _, row := range td.Rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	w.Flush()
	return builder.String()
}

// CreateProjectsTable создает таблицу проектов
func CreateProjectsTable(projects []client.Project) *TableData {
	table := NewTableData("ID", "Brand", "Region", "City", "Category", "Status", "Salesperson", "Created")

	for _, p := range projects {
		table.AddRow(
			strconv.Itoa(p.ID),
			p.BrandName,
			p.Region,
			p.City,
			p.Category,
			p.Status,
			p.SalespersonName,
			p.CreatedAt,
		)
	}

	return table
}

// CreateProjectTable создает таблицу одного проекта (поле — значение)
func CreateProjectTable(p *client.Project) *TableData {
	table := NewTableData("Field", "Value")
	table.AddRow("ID", strconv.Itoa(p.ID))
	table.AddRow("Brand", p.BrandName)
	table.AddRow("Region", p.Region)
	table.AddRow("City", p.City)
	table.AddRow("Category", p.Category)
	table.AddRow("Status", p.Status)
	table.AddRow("Salesperson", p.SalespersonName)
	table.AddRow("Created", p.CreatedAt)
	if p.UpdatedAt != "" {
		table.AddRow("Updated", p.UpdatedAt)
	}
	return table
}

// CreateMetricsTable создает таблицу метрик дашборда.
// Разбивка по статусам выводится из агрегатов бэкенда:
// видео на ревью = videos_generated - videos_approved.
func CreateMetricsTable(m *client.DashboardMetrics) *TableData {
	table := NewTableData("Metric", "Count")
	table.AddRow("Total projects", strconv.Itoa(m.TotalProjects))
	table.AddRow("Briefs approved", strconv.Itoa(m.BriefsApproved))
	table.AddRow("Videos generated", strconv.Itoa(m.VideosGenerated))
	table.AddRow("Videos approved", strconv.Itoa(m.VideosApproved))
	table.AddRow("Videos in review", strconv.Itoa(m.VideosGenerated-m.VideosApproved))
	table.AddRow("Campaigns completed", strconv.Itoa(m.CampaignsCompleted))
	return table
}

// CreateRegionCountTable создает таблицу количеств по регионам
func CreateRegionCountTable(counts []client.RegionCount) *TableData {
	table := NewTableData("Region", "Count")
	for _, rc := range counts {
		table.AddRow(rc.Region, strconv.Itoa(rc.Count))
	}
	return table
}

// CreateUserTable создает таблицу пользователя
func CreateUserTable(u *client.User) *TableData {
	table := NewTableData("Field", "Value")
	table.AddRow("ID", strconv.Itoa(u.ID))
	table.AddRow("Email", u.Email)
	if u.FullName != "" {
		table.AddRow("Name", u.FullName)
	}
	table.AddRow("Role", string(u.Role))
	table.AddRow("Active", strconv.FormatBool(u.IsActive))
	table.AddRow("Created", u.CreatedAt)
	return table
}
