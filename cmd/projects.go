package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"BrandPulseCLI/internal/client"
	"BrandPulseCLI/internal/output"
	pkgerrors "BrandPulseCLI/pkg/errors"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Управление проектами",
	Long: `Команды для управления проектами (кампаниями брендов):
список, просмотр, создание, изменение, удаление и экспорт в CSV.

Создание, изменение и удаление доступны только роли marcom.`,
}

// projectsListCmd представляет команду списка проектов
var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Показать список проектов",
	Long:  `Отображает страницу проектов с учетом фильтров.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleProjectsList(cmd, args)
	},
}

// projectsGetCmd представляет команду просмотра проекта
var projectsGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Показать проект",
	Long:  `Отображает проект по его ID.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleProjectsGet(cmd, args)
	},
}

// projectsCreateCmd представляет команду создания проекта
var projectsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Создать новый проект",
	Long:  `Создает новый проект. Доступно только роли marcom.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleProjectsCreate(cmd, args)
	},
}

// projectsUpdateCmd представляет команду изменения проекта
var projectsUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Изменить проект",
	Long: `Изменяет поля проекта по его ID. Передаются только указанные
флаги, остальные поля не меняются. Доступно только роли marcom.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleProjectsUpdate(cmd, args)
	},
}

// projectsDeleteCmd представляет команду удаления проекта
var projectsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Удалить проект",
	Long:  `Удаляет проект по его ID. Доступно только роли marcom.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleProjectsDelete(cmd, args)
	},
}

// projectsExportCmd представляет команду экспорта в CSV
var projectsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Экспортировать проекты в CSV",
	Long: `Выгружает все проекты в CSV файл. Содержимое формирует бэкенд,
клиент сохраняет его как есть.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleProjectsExport(cmd, args)
	},
}

func init() {
	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsGetCmd)
	projectsCmd.AddCommand(projectsCreateCmd)
	projectsCmd.AddCommand(projectsUpdateCmd)
	projectsCmd.AddCommand(projectsDeleteCmd)
	projectsCmd.AddCommand(projectsExportCmd)

	// Фильтры списка
	projectsListCmd.Flags().Int("page", 1, "номер страницы")
	projectsListCmd.Flags().Int("per-page", 20, "размер страницы")
	projectsListCmd.Flags().String("region", "", "фильтр по региону")
	projectsListCmd.Flags().String("status", "", "фильтр по статусу")
	projectsListCmd.Flags().String("category", "", "фильтр по категории")
	projectsListCmd.Flags().String("salesperson", "", "фильтр по продавцу")
	projectsListCmd.Flags().String("brand", "", "фильтр по бренду")

	// Поля создания
	projectsCreateCmd.Flags().String("brand", "", "название бренда")
	projectsCreateCmd.Flags().String("region", "", "регион")
	projectsCreateCmd.Flags().String("city", "", "город")
	projectsCreateCmd.Flags().String("category", "", "категория")
	projectsCreateCmd.Flags().String("salesperson", "", "имя продавца")
	projectsCreateCmd.Flags().String("status", "", "начальный статус")

	// Поля изменения
	projectsUpdateCmd.Flags().String("brand", "", "название бренда")
	projectsUpdateCmd.Flags().String("region", "", "регион")
	projectsUpdateCmd.Flags().String("city", "", "город")
	projectsUpdateCmd.Flags().String("category", "", "категория")
	projectsUpdateCmd.Flags().String("salesperson", "", "имя продавца")
	projectsUpdateCmd.Flags().String("status", "", "статус")

	// Экспорт
	projectsExportCmd.Flags().StringP("file", "f", "projects.csv", "путь к файлу результата")
}

// parseProjectID разбирает ID проекта из аргумента команды
func parseProjectID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.ErrValidation, fmt.Sprintf("неверный ID проекта: %s", arg))
	}
	return id, nil
}

func handleProjectsList(cmd *cobra.Command, args []string) error {
	if err := guardView(); err != nil {
		return handleError(err, cmd)
	}

	page, _ := cmd.Flags().GetInt("page")
	perPage, _ := cmd.Flags().GetInt("per-page")
	region, _ := cmd.Flags().GetString("region")
	status, _ := cmd.Flags().GetString("status")
	category, _ := cmd.Flags().GetString("category")
	salesperson, _ := cmd.Flags().GetString("salesperson")
	brand, _ := cmd.Flags().GetString("brand")

	filters := client.ProjectFilters{
		Page:        page,
		PerPage:     perPage,
		Region:      region,
		Status:      status,
		Category:    category,
		Salesperson: salesperson,
		Brand:       brand,
	}

	list, err := projectClient.List(cmd.Context(), filters)
	if err != nil {
		return handleError(err, cmd)
	}

	if err := printResult(output.CreateProjectsTable(list.Items), list); err != nil {
		return err
	}

	if output.ParseFormat(cfg.Output.Format) == output.FormatTable {
		fmt.Printf("Page %d, %d of %d projects\n", list.Page, len(list.Items), list.Total)
	}

	return nil
}

func handleProjectsGet(cmd *cobra.Command, args []string) error {
	if err := guardView(); err != nil {
		return handleError(err, cmd)
	}

	id, err := parseProjectID(args[0])
	if err != nil {
		return err
	}

	project, err := projectClient.Get(cmd.Context(), id)
	if err != nil {
		return handleError(err, cmd)
	}

	return printResult(output.CreateProjectTable(project), project)
}

func handleProjectsCreate(cmd *cobra.Command, args []string) error {
	if err := guardView(client.RoleMarcom); err != nil {
		return handleError(err, cmd)
	}

	brand, _ := cmd.Flags().GetString("brand")
	region, _ := cmd.Flags().GetString("region")
	city, _ := cmd.Flags().GetString("city")
	category, _ := cmd.Flags().GetString("category")
	salesperson, _ := cmd.Flags().GetString("salesperson")
	status, _ := cmd.Flags().GetString("status")

	if brand == "" || region == "" || city == "" || category == "" || salesperson == "" {
		return pkgerrors.New(pkgerrors.ErrValidation,
			"обязательны флаги --brand, --region, --city, --category, --salesperson")
	}

	req := &client.ProjectCreateRequest{
		BrandName:       brand,
		Region:          region,
		City:            city,
		Category:        category,
		SalespersonName: salesperson,
		Status:          status,
	}

	project, err := projectClient.Create(cmd.Context(), req)
	if err != nil {
		return handleError(err, cmd)
	}

	fmt.Printf("✅ Project %d created\n", project.ID)
	return printResult(output.CreateProjectTable(project), project)
}

func handleProjectsUpdate(cmd *cobra.Command, args []string) error {
	if err := guardView(client.RoleMarcom); err != nil {
		return handleError(err, cmd)
	}

	id, err := parseProjectID(args[0])
	if err != nil {
		return err
	}

	brand, _ := cmd.Flags().GetString("brand")
	region, _ := cmd.Flags().GetString("region")
	city, _ := cmd.Flags().GetString("city")
	category, _ := cmd.Flags().GetString("category")
	salesperson, _ := cmd.Flags().GetString("salesperson")
	status, _ := cmd.Flags().GetString("status")

	req := &client.ProjectUpdateRequest{
		BrandName:       brand,
		Region:          region,
		City:            city,
		Category:        category,
		SalespersonName: salesperson,
		Status:          status,
	}

	if *req == (client.ProjectUpdateRequest{}) {
		return pkgerrors.New(pkgerrors.ErrValidation, "не указано ни одного поля для изменения")
	}

	project, err := projectClient.Update(cmd.Context(), id, req)
	if err != nil {
		return handleError(err, cmd)
	}

	fmt.Printf("✅ Project %d updated\n", project.ID)
	return printResult(output.CreateProjectTable(project), project)
}

func handleProjectsDelete(cmd *cobra.Command, args []string) error {
	if err := guardView(client.RoleMarcom); err != nil {
		return handleError(err, cmd)
	}

	id, err := parseProjectID(args[0])
	if err != nil {
		return err
	}

	if err := projectClient.Delete(cmd.Context(), id); err != nil {
		return handleError(err, cmd)
	}

	fmt.Printf("✅ Project %d deleted\n", id)
	return nil
}

func handleProjectsExport(cmd *cobra.Command, args []string) error {
	if err := guardView(); err != nil {
		return handleError(err, cmd)
	}

	file, _ := cmd.Flags().GetString("file")

	start := time.Now()
	data, err := projectClient.ExportCSV(cmd.Context())
	if err != nil {
		cliMetrics.ExportPerformed(false, 0, time.Since(start))
		return handleError(err, cmd)
	}

	if err := os.WriteFile(file, data, 0644); err != nil {
		cliMetrics.ExportPerformed(false, len(data), time.Since(start))
		return fmt.Errorf("ошибка записи файла экспорта: %w", err)
	}

	cliMetrics.ExportPerformed(true, len(data), time.Since(start))
	fmt.Printf("✅ Exported %d bytes to %s\n", len(data), file)
	return nil
}
