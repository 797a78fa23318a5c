package services

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode"

	"monametro/internal/domain"
	"monametro/internal/domain/models"
	"monametro/internal/repositories"
	"monametro/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AuthService struct {
	Users     repositories.UserRepository
	Secret    []byte
	TokenTTL  time.Duration
	RequestID string
}

type SignUpRequest struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

// TokenClaims is the verified identity carried by a bearer token.
type TokenClaims struct {
	UserID int64
	Role   domain.Role
}

func (s AuthService) SignUp(req SignUpRequest) (models.PublicUser, error) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.FirstName == "" || req.LastName == "" {
		return models.PublicUser{}, domain.ValidationError{Field: "name", Msg: "first and last name are required"}
	}
	if req.Username == "" {
		return models.PublicUser{}, domain.ValidationError{Field: "username", Msg: "username is required"}
	}
	if !emailPattern.MatchString(req.Email) {
		return models.PublicUser{}, domain.ValidationError{Field: "email", Msg: "invalid email address"}
	}
	if err := checkPassword(req.Password); err != nil {
		return models.PublicUser{}, err
	}

	role := domain.RoleUser
	if req.Role != "" {
		parsed, ok := domain.ParseRole(req.Role)
		if !ok {
			return models.PublicUser{}, domain.ValidationError{Field: "role", Msg: "role must be user, admin or driver"}
		}
		role = parsed
	}

	taken, err := s.Users.EmailOrUsernameTaken(req.Email, req.Username)
	if err != nil {
		return models.PublicUser{}, domain.InternalError{Msg: "failed to check existing users", Err: err}
	}
	if taken {
		return models.PublicUser{}, domain.ConflictError{Resource: "user", Msg: "email or username already registered"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.PublicUser{}, domain.InternalError{Msg: "failed to hash password", Err: err}
	}

	user := models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         string(role),
		CreatedAt:    time.Now(),
	}

	id, err := s.Users.Create(user)
	if err != nil {
		// The pre-check races with concurrent signups; the UNIQUE
		// constraints settle it and we report the same conflict.
		if isDuplicateKey(err) {
			return models.PublicUser{}, domain.ConflictError{Resource: "user", Msg: "email or username already registered"}
		}
		return models.PublicUser{}, domain.InternalError{Msg: "failed to create user", Err: err}
	}
	user.ID = id

	utils.LogEvent(s.RequestID, "auth", "signup", "user registered id="+utils.FormatID(id))
	return user.ToPublic(), nil
}

func (s AuthService) SignIn(email, password string) (string, models.PublicUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.Users.GetByEmail(email)
	if err != nil {
		if domain.IsNotFound(err) {
			return "", models.PublicUser{}, domain.AuthError{Msg: "invalid email or password"}
		}
		return "", models.PublicUser{}, domain.InternalError{Msg: "failed to look up user", Err: err}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", models.PublicUser{}, domain.AuthError{Msg: "invalid email or password"}
	}

	token, err := s.IssueToken(user.ID, domain.Role(user.Role))
	if err != nil {
		return "", models.PublicUser{}, domain.InternalError{Msg: "failed to sign token", Err: err}
	}

	utils.LogEvent(s.RequestID, "auth", "signin", "user signed in id="+utils.FormatID(user.ID))
	return token, user.ToPublic(), nil
}

// IssueToken signs an HS256 token carrying user id and role, valid for TokenTTL.
func (s AuthService) IssueToken(userID int64, role domain.Role) (string, error) {
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    string(role),
		"exp":     time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(s.Secret)
}

// VerifyToken validates signature and expiry and extracts identity. Any
// failure yields AuthError with TokenPresented set, which the HTTP layer
// maps to 403.
func (s AuthService) VerifyToken(tokenString string) (TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.Secret, nil
	})
	if err != nil || !token.Valid {
		return TokenClaims{}, domain.AuthError{Msg: "invalid or expired token", TokenPresented: true, Err: err}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenClaims{}, domain.AuthError{Msg: "invalid token claims", TokenPresented: true}
	}

	rawID, ok := claims["user_id"].(float64)
	if !ok || rawID <= 0 {
		return TokenClaims{}, domain.AuthError{Msg: "invalid token claims", TokenPresented: true}
	}
	rawRole, _ := claims["role"].(string)
	role, ok := domain.ParseRole(rawRole)
	if !ok {
		return TokenClaims{}, domain.AuthError{Msg: "invalid token claims", TokenPresented: true}
	}

	return TokenClaims{UserID: int64(rawID), Role: role}, nil
}

// checkPassword enforces the signup policy: at least 8 characters with one
// uppercase letter.
func checkPassword(password string) error {
	if len(password) < 8 {
		return domain.ValidationError{Field: "password", Msg: "must be at least 8 characters"}
	}
	for _, r := range password {
		if unicode.IsUpper(r) {
			return nil
		}
	}
	return domain.ValidationError{Field: "password", Msg: "must contain an uppercase letter"}
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	// MySQL error 1062.
	return strings.Contains(err.Error(), "Duplicate entry") || strings.Contains(err.Error(), "1062")
}
