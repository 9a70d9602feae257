package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"BrandPulseCLI/internal/client"
)

// TestDecide проверяет таблицу решений охраны разделов: порядок проверок
// фиксирован — загрузка, затем наличие пользователя, затем роль.
func TestDecide(t *testing.T) {
	marcom := &client.User{ID: 1, Role: client.RoleMarcom}
	management := &client.User{ID: 2, Role: client.RoleManagement}

	tests := []struct {
		name      string
		user      *client.User
		isLoading bool
		allowed   []client.UserRole
		want      Decision
	}{
		{
			name:      "loading takes priority over everything",
			user:      nil,
			isLoading: true,
			allowed:   []client.UserRole{client.RoleMarcom},
			want:      ShowLoading,
		},
		{
			name:      "loading even with user present",
			user:      marcom,
			isLoading: true,
			want:      ShowLoading,
		},
		{
			name: "no user goes to login",
			user: nil,
			want: RedirectLogin,
		},
		{
			name:    "no user with role restriction still goes to login",
			user:    nil,
			allowed: []client.UserRole{client.RoleManagement},
			want:    RedirectLogin,
		},
		{
			name:    "wrong role goes home, not to login",
			user:    marcom,
			allowed: []client.UserRole{client.RoleManagement},
			want:    RedirectHome,
		},
		{
			name:    "matching role renders",
			user:    management,
			allowed: []client.UserRole{client.RoleManagement},
			want:    Render,
		},
		{
			name:    "one of several roles renders",
			user:    marcom,
			allowed: []client.UserRole{client.RoleMarcom, client.RoleManagement},
			want:    Render,
		},
		{
			name: "no restriction renders for any role",
			user: marcom,
			want: Render,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.user, tt.isLoading, tt.allowed)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecision_String(t *testing.T) {
	assert.Equal(t, "loading", ShowLoading.String())
	assert.Equal(t, "redirect-login", RedirectLogin.String())
	assert.Equal(t, "redirect-home", RedirectHome.String())
	assert.Equal(t, "render", Render.String())
	assert.Equal(t, "unknown", Decision(99).String())
}
