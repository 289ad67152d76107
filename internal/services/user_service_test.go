package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/korwin-dev/citelinks-be/internal/services"
)

func TestCreateUserFromFields(t *testing.T) {
	db := newTestDB(t)
	users := services.NewUserService(db)
	fields := defaultUserFields()

	created, err := users.CreateUserFromFields(fields)
	require.NoError(t, err)

	stored, err := users.GetUserByEmail(fields["email"])
	require.NoError(t, err)

	// Non-password fields survive the round trip verbatim.
	projection := stored.Project()
	assert.Equal(t, fields["email"], projection.Email)
	assert.Equal(t, fields["email"], projection.Username)
	assert.Equal(t, fields["first_name"], projection.FirstName)
	assert.Equal(t, fields["last_name"], projection.LastName)
	assert.Equal(t, fields["organization"], projection.Organization)
	assert.Equal(t, created.Project(), projection)

	// The stored password verifies against the original plaintext.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(fields["password"])))
	assert.False(t, stored.Verified)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	users := services.NewUserService(db)

	_, err := users.CreateUserFromFields(defaultUserFields())
	require.NoError(t, err)

	_, err = users.CreateUserFromFields(defaultUserFields())
	assert.ErrorIs(t, err, services.ErrUserExists)
}

func TestGetUserOrNone(t *testing.T) {
	db := newTestDB(t)
	users := services.NewUserService(db)
	fields := defaultUserFields()

	_, err := users.CreateUserFromFields(fields)
	require.NoError(t, err)

	found, err := users.GetUserOrNone(fields["email"])
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, fields["email"], found.Email)

	missing, err := users.GetUserOrNone("somebody@else.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAuthenticate(t *testing.T) {
	db := newTestDB(t)
	users := services.NewUserService(db)
	fields := defaultUserFields()

	_, err := users.CreateUserFromFields(fields)
	require.NoError(t, err)

	user, err := users.Authenticate(fields["email"], fields["password"])
	require.NoError(t, err)
	assert.Equal(t, fields["email"], user.Email)

	_, err = users.Authenticate(fields["email"], "wrong password")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = users.Authenticate("nobody@gmail.com", fields["password"])
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestListUsers(t *testing.T) {
	db := newTestDB(t)
	users := services.NewUserService(db)

	list, err := users.ListUsers()
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = users.CreateUserFromFields(defaultUserFields())
	require.NoError(t, err)

	other := defaultUserFields()
	other["email"] = "second@gmail.com"
	_, err = users.CreateUserFromFields(other)
	require.NoError(t, err)

	list, err = users.ListUsers()
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestDeleteUserCascadesToken(t *testing.T) {
	db := newTestDB(t)
	users := services.NewUserService(db)
	tokens := services.NewTokenService(db, users)
	fields := defaultUserFields()

	user, err := users.CreateUserFromFields(fields)
	require.NoError(t, err)

	token, err := tokens.GetToken(fields["email"], fields["password"])
	require.NoError(t, err)

	require.NoError(t, users.DeleteUser(user.ID))

	_, err = tokens.UserForToken(token.Key)
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}
