package service

import (
	"context"
	"testing"

	"hoku-backend/apperr"
	"hoku-backend/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserFixture(t *testing.T) (*UserService, *fakeUserAccounts, uuid.UUID) {
	users := newFakeUserAccounts()
	hash, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{Name: "Asha", EmailID: "asha@example.com", Password: string(hash)}
	require.NoError(t, users.Create(context.Background(), user))

	svc := NewUserService(
		UserWithStore(users),
		UserWithJWTSecret("test-secret"),
	)
	return svc, users, user.ID
}

func TestLoginIssuesToken(t *testing.T) {
	svc, _, userID := newUserFixture(t)

	result, err := svc.Login(context.Background(), LoginRequest{
		EmailID:  "asha@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.Equal(t, userID, result.User.ID)

	token, err := jwt.Parse(result.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, userID.String(), claims["sub"])
	assert.NotNil(t, claims["exp"])
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newUserFixture(t)

	_, err := svc.Login(context.Background(), LoginRequest{
		EmailID:  "asha@example.com",
		Password: "wrong",
	})
	require.Error(t, err)
	assert.Equal(t, "INVALID_CREDENTIALS", apperr.ReasonOf(err))
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newUserFixture(t)

	_, err := svc.Login(context.Background(), LoginRequest{
		EmailID:  "nobody@example.com",
		Password: "supersecret",
	})
	require.Error(t, err)
	// Same error as a wrong password: no account enumeration.
	assert.Equal(t, "INVALID_CREDENTIALS", apperr.ReasonOf(err))
}

func TestLoginDeactivatedUser(t *testing.T) {
	svc, users, userID := newUserFixture(t)
	require.NoError(t, users.SoftDelete(context.Background(), userID))

	_, err := svc.Login(context.Background(), LoginRequest{
		EmailID:  "asha@example.com",
		Password: "supersecret",
	})
	require.Error(t, err)
	assert.Equal(t, "INVALID_CREDENTIALS", apperr.ReasonOf(err))
}

func TestDeleteUserSoftThenHard(t *testing.T) {
	svc, users, userID := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.DeleteUser(ctx, DeleteUserRequest{UserID: userID})
	require.NoError(t, err)

	// Soft delete hides the user from reads but keeps the row.
	_, err = svc.GetUser(ctx, GetUserRequest{UserID: userID})
	assert.True(t, apperr.IsNotFound(err))
	assert.Contains(t, users.users, userID)

	_, err = svc.DeleteUser(ctx, DeleteUserRequest{UserID: userID, Hard: true})
	require.NoError(t, err)
	assert.NotContains(t, users.users, userID)
}

func TestUpdateProfile(t *testing.T) {
	svc, _, userID := newUserFixture(t)

	name := "Asha R"
	result, err := svc.UpdateProfile(context.Background(), UpdateProfileRequest{
		UserID: userID,
		Update: models.ProfileUpdate{Name: &name},
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha R", result.User.Name)
}
