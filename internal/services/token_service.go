package services

import (
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/korwin-dev/citelinks-be/internal/models"
)

// TokenServiceProvider defines the interface for the token issuer.
type TokenServiceProvider interface {
	GetToken(email, password string) (models.Token, error)
	UserForToken(key string) (models.User, error)
	DeleteToken(key string) error
}

// TokenService issues and revokes opaque session tokens.
type TokenService struct {
	db    *sql.DB
	users UserServiceProvider
}

// NewTokenService creates a new TokenService.
func NewTokenService(db *sql.DB, users UserServiceProvider) *TokenService {
	return &TokenService{db: db, users: users}
}

// GetToken verifies the credential pair and returns the user's token,
// creating one on first authentication. Returns ErrInvalidCredentials when
// verification fails.
func (s *TokenService) GetToken(email, password string) (models.Token, error) {
	user, err := s.users.Authenticate(email, password)
	if err != nil {
		return models.Token{}, err
	}

	token, err := s.tokenForUser(user.ID)
	if err == nil {
		return token, nil
	}
	if err != sql.ErrNoRows {
		return models.Token{}, err
	}

	token = models.Token{
		Key:    strings.ReplaceAll(uuid.New().String()+uuid.New().String(), "-", ""),
		UserID: user.ID,
	}
	_, err = s.db.Exec("INSERT INTO tokens(key, user_id) VALUES(?, ?)", token.Key, token.UserID)
	if err != nil {
		// A concurrent login can win the insert; the unique index on
		// user_id turns that into a conflict. Re-read the winner.
		if isUniqueViolation(err) {
			return s.tokenForUser(user.ID)
		}
		return models.Token{}, err
	}
	return token, nil
}

// UserForToken resolves a token key to its owning user. Unknown keys map to
// ErrInvalidCredentials.
func (s *TokenService) UserForToken(key string) (models.User, error) {
	var userID string
	row := s.db.QueryRow("SELECT user_id FROM tokens WHERE key = ?", key)
	if err := row.Scan(&userID); err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}
	return s.users.GetUserByID(userID)
}

// DeleteToken invalidates a session. Deleting an unknown key is a no-op.
func (s *TokenService) DeleteToken(key string) error {
	_, err := s.db.Exec("DELETE FROM tokens WHERE key = ?", key)
	return err
}

func (s *TokenService) tokenForUser(userID string) (models.Token, error) {
	var token models.Token
	row := s.db.QueryRow("SELECT key, user_id, created_at FROM tokens WHERE user_id = ?", userID)
	err := row.Scan(&token.Key, &token.UserID, &token.CreatedAt)
	return token, err
}
