package services

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/korwin-dev/citelinks-be/internal/models"
)

// UserServiceProvider defines the interface for the user directory.
type UserServiceProvider interface {
	GetUserByID(id string) (models.User, error)
	GetUserByEmail(email string) (models.User, error)
	GetUserOrNone(email string) (*models.User, error)
	CreateUserFromFields(fields map[string]string) (models.User, error)
	ListUsers() ([]models.User, error)
	Authenticate(email, password string) (models.User, error)
	DeleteUser(id string) error
}

// UserService provides business logic for user management.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

const userColumns = "id, email, password_hash, first_name, last_name, organization, verified, created_at"

func scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName,
		&user.LastName, &user.Organization, &user.Verified, &user.CreatedAt)
	return user, err
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	row := s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", id)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// GetUserByEmail retrieves a single user by their email, including the
// password hash.
func (s *UserService) GetUserByEmail(email string) (models.User, error) {
	row := s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE email = ?", email)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// GetUserOrNone looks a user up by email. A missing user is not an error:
// the result is simply nil.
func (s *UserService) GetUserOrNone(email string) (*models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		if err == ErrUserNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// CreateUserFromFields creates a new user from a registration payload,
// hashing the password. Uniqueness of the email is the caller's concern;
// the unique index still backstops races with a storage error.
func (s *UserService) CreateUserFromFields(fields map[string]string) (models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(fields["password"]), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Email:        fields["email"],
		PasswordHash: string(hashedPassword),
		FirstName:    fields["first_name"],
		LastName:     fields["last_name"],
		Organization: fields["organization"],
	}

	stmt, err := s.db.Prepare("INSERT INTO users(id, email, password_hash, first_name, last_name, organization) VALUES(?, ?, ?, ?, ?, ?)")
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Organization)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrUserExists
		}
		return models.User{}, err
	}
	return user, nil
}

// ListUsers retrieves all users, oldest first.
func (s *UserService) ListUsers() ([]models.User, error) {
	rows, err := s.db.Query("SELECT " + userColumns + " FROM users ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName,
			&user.LastName, &user.Organization, &user.Verified, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Authenticate verifies a user's credentials.
func (s *UserService) Authenticate(email, password string) (models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		if err == ErrUserNotFound {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// DeleteUser removes a user from the database. Administrative use only;
// the cascade takes any live token with it.
func (s *UserService) DeleteUser(id string) error {
	_, err := s.db.Exec("DELETE FROM users WHERE id = ?", id)
	return err
}
