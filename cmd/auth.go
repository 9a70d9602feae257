package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"BrandPulseCLI/internal/client"
	"BrandPulseCLI/internal/output"
	pkgerrors "BrandPulseCLI/pkg/errors"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Управление аутентификацией",
	Long: `Команды для управления аутентификацией пользователей:
вход, выход, регистрация и проверка статуса сессии.`,
}

// loginCmd представляет команду входа
var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Войти в систему",
	Long: `Выполняет вход пользователя по email и паролю.
Сохраняет пару токенов для последующих команд.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleLogin(cmd, args)
	},
}

// logoutCmd представляет команду выхода
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Выйти из системы",
	Long:  `Завершает сессию и удаляет сохраненные токены.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleLogout(cmd, args)
	},
}

// registerCmd представляет команду регистрации
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Зарегистрировать нового пользователя",
	Long:  `Создает новую учетную запись пользователя в системе.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleRegister(cmd, args)
	},
}

// statusCmd представляет команду статуса сессии
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Проверить статус аутентификации",
	Long:  `Показывает текущий статус сессии и информацию о пользователе.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleAuthStatus(cmd, args)
	},
}

func init() {
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(registerCmd)
	authCmd.AddCommand(statusCmd)

	// Флаги входа
	loginCmd.Flags().StringP("email", "e", "", "email адрес")
	loginCmd.Flags().StringP("password", "p", "", "пароль")

	// Флаги регистрации
	registerCmd.Flags().StringP("email", "e", "", "email адрес")
	registerCmd.Flags().StringP("password", "p", "", "пароль")
	registerCmd.Flags().StringP("name", "n", "", "полное имя")
	registerCmd.Flags().StringP("role", "r", "sales", "роль (marcom, sales, management)")
}

func handleLogin(cmd *cobra.Command, args []string) error {
	var email string
	if len(args) > 0 {
		email = args[0]
	} else {
		email, _ = cmd.Flags().GetString("email")
	}

	password, _ := cmd.Flags().GetString("password")

	if email == "" {
		return pkgerrors.New(pkgerrors.ErrValidation, "email обязателен")
	}

	if password == "" {
		fmt.Print("Enter password: ")
		var pass string
		fmt.Scanln(&pass)
		password = pass
	}

	if err := sess.Login(cmd.Context(), email, password); err != nil {
		return handleError(err, cmd)
	}

	user := sess.CurrentUser()
	fmt.Printf("✅ Successfully logged in as %s (%s)\n", user.Email, user.Role)

	if viper.GetBool("verbose") {
		token := tokens.AccessToken()
		fmt.Printf("Token: %s...\n", token[:min(20, len(token))])
	}

	return nil
}

func handleLogout(cmd *cobra.Command, args []string) error {
	sess.Logout(cmd.Context())

	fmt.Println("✅ Successfully logged out")
	return nil
}

func handleRegister(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	name, _ := cmd.Flags().GetString("name")
	role, _ := cmd.Flags().GetString("role")

	if email == "" {
		return pkgerrors.New(pkgerrors.ErrValidation, "email обязателен")
	}

	if password == "" {
		fmt.Print("Enter password: ")
		var pass string
		fmt.Scanln(&pass)
		password = pass
	}

	req := &client.RegisterRequest{
		Email:    email,
		Password: password,
		FullName: name,
		Role:     client.UserRole(role),
	}

	user, err := authClient.Register(cmd.Context(), req)
	if err != nil {
		return handleError(err, cmd)
	}

	fmt.Printf("✅ Successfully registered user %s\n", user.Email)
	if viper.GetBool("verbose") {
		fmt.Printf("User ID: %d\n", user.ID)
	}

	return nil
}

func handleAuthStatus(cmd *cobra.Command, args []string) error {
	user := sess.CurrentUser()
	if user == nil {
		fmt.Println("❌ Not authenticated")
		return nil
	}

	fmt.Println("✅ Authenticated")
	return printResult(output.CreateUserTable(user), user)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
