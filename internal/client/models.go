package client

// UserRole представляет роль пользователя в системе
type UserRole string

// Роли, известные бэкенду. Роль определяет, какие разделы доступны.
const (
	RoleMarcom     UserRole = "marcom"
	RoleSales      UserRole = "sales"
	RoleManagement UserRole = "management"
)

// User представляет текущего пользователя
type User struct {
	ID        int      `json:"id"`
	Email     string   `json:"email"`
	FullName  string   `json:"full_name"`
	Role      UserRole `json:"role"`
	IsActive  bool     `json:"is_active"`
	CreatedAt string   `json:"created_at"`
}

// RegisterRequest представляет данные регистрации нового пользователя
type RegisterRequest struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	FullName string   `json:"full_name"`
	Role     UserRole `json:"role"`
}

// Project представляет проект (кампанию бренда)
type Project struct {
	ID              int    `json:"id"`
	UserID          int    `json:"user_id"`
	Region          string `json:"region"`
	City            string `json:"city"`
	SalespersonName string `json:"salesperson_name"`
	BrandName       string `json:"brand_name"`
	Category        string `json:"category"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

// Регионы, категории и статусы конвейера проекта, известные бэкенду
var (
	Regions = []string{"TN", "Kerala", "AP", "Telangana", "Gujarat", "Delhi", "Mumbai"}

	Categories = []string{"FMCG", "Industrial Goods"}

	ProjectStatuses = []string{
		"Brand description generated",
		"Deck in progress",
		"Deck Shared",
		"Client approved",
		"Client rejected",
		"Video production in progress",
		"Video submitted for review",
		"Video approved",
		"Campaign signed up",
	}
)

// ProjectCreateRequest представляет данные создания проекта
type ProjectCreateRequest struct {
	Region          string `json:"region"`
	City            string `json:"city"`
	SalespersonName string `json:"salesperson_name"`
	BrandName       string `json:"brand_name"`
	Category        string `json:"category"`
	Status          string `json:"status,omitempty"`
}

// ProjectUpdateRequest представляет частичное обновление проекта.
// Пустые поля не отправляются и не изменяются на сервере.
type ProjectUpdateRequest struct {
	Region          string `json:"region,omitempty"`
	City            string `json:"city,omitempty"`
	SalespersonName string `json:"salesperson_name,omitempty"`
	BrandName       string `json:"brand_name,omitempty"`
	Category        string `json:"category,omitempty"`
	Status          string `json:"status,omitempty"`
}

// ProjectListResponse представляет страницу списка проектов
type ProjectListResponse struct {
	Items   []Project `json:"items"`
	Total   int       `json:"total"`
	Page    int       `json:"page"`
	PerPage int       `json:"per_page"`
}

// ProjectFilters представляет фильтры списка проектов
type ProjectFilters struct {
	Page        int
	PerPage     int
	Region      string
	Status      string
	Category    string
	Salesperson string
	Brand       string
}

// RegionCount представляет количество по региону
type RegionCount struct {
	Region string `json:"region"`
	Count  int    `json:"count"`
}

// DashboardMetrics представляет агрегированные метрики дашборда.
// Числа считает бэкенд; клиент их не пересчитывает из сырых списков.
type DashboardMetrics struct {
	TotalProjects      int           `json:"total_projects"`
	ClientsByRegion    []RegionCount `json:"clients_by_region"`
	BriefsApproved     int           `json:"briefs_approved"`
	VideosGenerated    int           `json:"videos_generated"`
	VideosApproved     int           `json:"videos_approved"`
	CampaignsCompleted int           `json:"campaigns_completed"`
}
