package cmd

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"BrandPulseCLI/internal/client"
	"BrandPulseCLI/internal/output"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Метрики дашборда",
	Long: `Команды для просмотра агрегированных метрик платформы.
Раздел доступен только роли management.`,
}

// dashboardMetricsCmd представляет команду общих метрик
var dashboardMetricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Показать сводные метрики",
	Long:  `Отображает сводные метрики дашборда за период.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleDashboardMetrics(cmd, args)
	},
}

// dashboardClientsCmd представляет команду брендов по регионам
var dashboardClientsCmd = &cobra.Command{
	Use:   "clients-by-region",
	Short: "Показать бренды по регионам",
	Long:  `Отображает количество уникальных брендов по регионам за период.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleDashboardClients(cmd, args)
	},
}

// dashboardCampaignsCmd представляет команду кампаний по регионам
var dashboardCampaignsCmd = &cobra.Command{
	Use:   "campaigns-by-region",
	Short: "Показать кампании по регионам",
	Long:  `Отображает количество подписанных кампаний по регионам за период.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleDashboardCampaigns(cmd, args)
	},
}

// Скалярные метрики: имя подкоманды совпадает с эндпоинтом бэкенда,
// обработчик для всех общий.
var dashboardCountCmds = []struct {
	use   string
	short string
	fetch func(cmd *cobra.Command, startDate, endDate string) (int, error)
}{
	{
		use:   "briefs-approved",
		short: "Показать количество одобренных брифов",
		fetch: func(cmd *cobra.Command, startDate, endDate string) (int, error) {
			return dashboardClient.BriefsApproved(cmd.Context(), startDate, endDate)
		},
	},
	{
		use:   "videos-generated",
		short: "Показать количество созданных видео",
		fetch: func(cmd *cobra.Command, startDate, endDate string) (int, error) {
			return dashboardClient.VideosGenerated(cmd.Context(), startDate, endDate)
		},
	},
	{
		use:   "videos-approved",
		short: "Показать количество одобренных видео",
		fetch: func(cmd *cobra.Command, startDate, endDate string) (int, error) {
			return dashboardClient.VideosApproved(cmd.Context(), startDate, endDate)
		},
	},
	{
		use:   "campaigns-completed",
		short: "Показать количество завершенных кампаний",
		fetch: func(cmd *cobra.Command, startDate, endDate string) (int, error) {
			return dashboardClient.CampaignsCompleted(cmd.Context(), startDate, endDate)
		},
	},
}

func init() {
	dashboardCmd.AddCommand(dashboardMetricsCmd)
	dashboardCmd.AddCommand(dashboardClientsCmd)
	dashboardCmd.AddCommand(dashboardCampaignsCmd)

	countCmds := make([]*cobra.Command, 0, len(dashboardCountCmds))
	for _, spec := range dashboardCountCmds {
		fetch := spec.fetch
		use := spec.use
		c := &cobra.Command{
			Use:   use,
			Short: spec.short,
			Long:  `Отображает одну метрику дашборда за период.`,
			RunE: func(cmd *cobra.Command, args []string) error {
				return handleDashboardCount(cmd, use, fetch)
			},
		}
		dashboardCmd.AddCommand(c)
		countCmds = append(countCmds, c)
	}

	// Период в формате YYYY-MM-DD, пустые границы не отправляются
	cmds := append([]*cobra.Command{dashboardMetricsCmd, dashboardClientsCmd, dashboardCampaignsCmd}, countCmds...)
	for _, c := range cmds {
		c.Flags().String("start-date", "", "начало периода (YYYY-MM-DD)")
		c.Flags().String("end-date", "", "конец периода (YYYY-MM-DD)")
	}
}

// dateRange читает границы периода из флагов команды
func dateRange(cmd *cobra.Command) (string, string) {
	startDate, _ := cmd.Flags().GetString("start-date")
	endDate, _ := cmd.Flags().GetString("end-date")
	return startDate, endDate
}

func handleDashboardMetrics(cmd *cobra.Command, args []string) error {
	if err := guardView(client.RoleManagement); err != nil {
		return handleError(err, cmd)
	}

	startDate, endDate := dateRange(cmd)

	metrics, err := dashboardClient.Metrics(cmd.Context(), startDate, endDate)
	if err != nil {
		return handleError(err, cmd)
	}

	return printResult(output.CreateMetricsTable(metrics), metrics)
}

func handleDashboardClients(cmd *cobra.Command, args []string) error {
	if err := guardView(client.RoleManagement); err != nil {
		return handleError(err, cmd)
	}

	startDate, endDate := dateRange(cmd)

	counts, err := dashboardClient.ClientsByRegion(cmd.Context(), startDate, endDate)
	if err != nil {
		return handleError(err, cmd)
	}

	return printResult(output.CreateRegionCountTable(counts), counts)
}

func handleDashboardCount(cmd *cobra.Command, name string, fetch func(*cobra.Command, string, string) (int, error)) error {
	if err := guardView(client.RoleManagement); err != nil {
		return handleError(err, cmd)
	}

	startDate, endDate := dateRange(cmd)

	count, err := fetch(cmd, startDate, endDate)
	if err != nil {
		return handleError(err, cmd)
	}

	table := output.NewTableData("Metric", "Count")
	table.AddRow(name, strconv.Itoa(count))

	return printResult(table, map[string]int{strings.ReplaceAll(name, "-", "_"): count})
}

func handleDashboardCampaigns(cmd *cobra.Command, args []string) error {
	if err := guardView(client.RoleManagement); err != nil {
		return handleError(err, cmd)
	}

	startDate, endDate := dateRange(cmd)

	counts, err := dashboardClient.CampaignsByRegion(cmd.Context(), startDate, endDate)
	if err != nil {
		return handleError(err, cmd)
	}

	return printResult(output.CreateRegionCountTable(counts), counts)
}
