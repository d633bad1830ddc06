package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/billartiochichi/billar-api/internal/application/auth"
	"github.com/billartiochichi/billar-api/internal/application/dto"
	"github.com/billartiochichi/billar-api/internal/domain"
	"github.com/billartiochichi/billar-api/internal/domain/entity"
	"github.com/billartiochichi/billar-api/internal/infrastructure/memory"
	"github.com/billartiochichi/billar-api/pkg/jwt"
)

func setup(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	st := memory.NewStore()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreto1"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, st.Users().Create(context.Background(), &entity.User{
		ID: "u1", Username: "ana", PasswordHash: string(hash), Role: entity.RoleEmpleado,
	}))
	return auth.NewAuthUseCase(st.Users(), auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "billar-api"})
}

func TestLogin_Correcto(t *testing.T) {
	uc := setup(t)
	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "secreto1"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", out.TokenType)
	assert.Equal(t, "ana", out.User.Username)

	claims, err := jwt.Parse("test-secret", out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, entity.RoleEmpleado, claims.Role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := setup(t)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "mal"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
