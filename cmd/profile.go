package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"BrandPulseCLI/internal/output"
	pkgerrors "BrandPulseCLI/pkg/errors"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Управление профилем пользователя",
	Long:  `Команды для просмотра и изменения профиля текущего пользователя.`,
}

// profileShowCmd представляет команду просмотра профиля
var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Показать профиль",
	Long:  `Отображает профиль текущего пользователя.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleProfileShow(cmd, args)
	},
}

// profileUpdateCmd представляет команду обновления профиля
var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Обновить профиль",
	Long:  `Изменяет полное имя текущего пользователя.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleProfileUpdate(cmd, args)
	},
}

func init() {
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileUpdateCmd)

	profileUpdateCmd.Flags().StringP("full-name", "n", "", "новое полное имя")
}

func handleProfileShow(cmd *cobra.Command, args []string) error {
	if err := guardView(); err != nil {
		return handleError(err, cmd)
	}

	// Профиль читается с сервера, а не из памяти сессии
	user, err := authClient.Me(cmd.Context())
	if err != nil {
		return handleError(err, cmd)
	}

	return printResult(output.CreateUserTable(user), user)
}

func handleProfileUpdate(cmd *cobra.Command, args []string) error {
	if err := guardView(); err != nil {
		return handleError(err, cmd)
	}

	fullName, _ := cmd.Flags().GetString("full-name")
	if fullName == "" {
		return pkgerrors.New(pkgerrors.ErrValidation, "укажите новое имя через --full-name")
	}

	user, err := authClient.UpdateProfile(cmd.Context(), fullName)
	if err != nil {
		return handleError(err, cmd)
	}

	// Сессия держит обновленного пользователя до конца процесса
	sess.SetCurrentUser(user)

	fmt.Println("✅ Profile updated")
	return printResult(output.CreateUserTable(user), user)
}
