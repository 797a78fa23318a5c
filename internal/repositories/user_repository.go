package repositories

import (
	"database/sql"
	"errors"
	"strings"

	"monametro/internal/domain"
	"monametro/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

const userColumns = `id, firstname, lastname, username, email, password_hash, role, wallet_balance, created_at`

func scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.WalletBalance,
		&u.CreatedAt,
	)
	return u, err
}

// GetByEmail looks a user up by case-normalized email.
func (r UserRepository) GetByEmail(email string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	row := r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = ? LIMIT 1`, email)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{Resource: "user"}
		}
		return models.User{}, err
	}
	return u, nil
}

func (r UserRepository) GetByID(id int64) (models.User, error) {
	row := r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ? LIMIT 1`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{Resource: "user"}
		}
		return models.User{}, err
	}
	return u, nil
}

// EmailOrUsernameTaken pre-checks signup uniqueness. The UNIQUE constraints
// remain the real guard against races; a constraint violation on insert is
// mapped to the same conflict by the caller.
func (r UserRepository) EmailOrUsernameTaken(email, username string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var count int
	err := r.DB.QueryRow(`
		SELECT COUNT(*) FROM users WHERE email = ? OR username = ?
	`, email, username).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r UserRepository) Create(u models.User) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO users (firstname, lastname, username, email, password_hash, role, wallet_balance, created_at)
		VALUES (?, ?, ?, ?, ?, ?, 0, NOW())
	`, u.FirstName, u.LastName, u.Username, strings.ToLower(strings.TrimSpace(u.Email)), u.PasswordHash, u.Role)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r UserRepository) WalletBalance(id int64) (float64, error) {
	var balance float64
	err := r.DB.QueryRow(`SELECT wallet_balance FROM users WHERE id = ?`, id).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.NotFoundError{Resource: "user"}
		}
		return 0, err
	}
	return balance, nil
}
