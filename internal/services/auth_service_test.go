package services

import (
	"testing"
	"time"

	"monametro/internal/domain"
	"monametro/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) (AuthService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	svc := AuthService{
		Users:    repositories.UserRepository{DB: db},
		Secret:   []byte("test-secret"),
		TokenTTL: time.Hour,
	}
	return svc, mock
}

func userRows(t *testing.T, id int64, email, password, role string) *sqlmock.Rows {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return sqlmock.NewRows([]string{
		"id", "firstname", "lastname", "username", "email", "password_hash", "role", "wallet_balance", "created_at",
	}).AddRow(id, "Ava", "Chen", "avac", email, string(hash), role, 100.0, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
}

func TestSignUpNormalizesEmailAndCreatesUser(t *testing.T) {
	svc, mock := newAuthService(t)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("ava@example.com", "avac").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO users").
		WithArgs("Ava", "Chen", "avac", "ava@example.com", sqlmock.AnyArg(), "user").
		WillReturnResult(sqlmock.NewResult(3, 1))

	user, err := svc.SignUp(SignUpRequest{
		FirstName: "Ava",
		LastName:  "Chen",
		Username:  "avac",
		Email:     "Ava@Example.COM",
		Password:  "Sup3rsecret",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)
	assert.Equal(t, "ava@example.com", user.Email)
	assert.Equal(t, "user", user.Role)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSignUpDuplicateEmailConflicts(t *testing.T) {
	svc, mock := newAuthService(t)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("a@b.com", "someone").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := svc.SignUp(SignUpRequest{
		FirstName: "A",
		LastName:  "B",
		Username:  "someone",
		Email:     "A@B.com",
		Password:  "Password1",
	})
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err), "expected conflict, got %v", err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSignUpValidationRejectsBadInputBeforeSQL(t *testing.T) {
	svc, mock := newAuthService(t)

	cases := []SignUpRequest{
		{FirstName: "A", LastName: "B", Username: "x", Email: "not-an-email", Password: "Password1"},
		{FirstName: "A", LastName: "B", Username: "x", Email: "a@b.com", Password: "Short1"},
		{FirstName: "A", LastName: "B", Username: "x", Email: "a@b.com", Password: "alllowercase1"},
		{FirstName: "A", LastName: "B", Username: "x", Email: "a@b.com", Password: "Password1", Role: "superuser"},
		{FirstName: "", LastName: "B", Username: "x", Email: "a@b.com", Password: "Password1"},
	}
	for _, req := range cases {
		_, err := svc.SignUp(req)
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err), "expected validation error for %+v, got %v", req, err)
	}

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSignInLowercasesEmailLookup(t *testing.T) {
	svc, mock := newAuthService(t)

	mock.ExpectQuery("SELECT .+ FROM users WHERE email").
		WithArgs("a@b.com").
		WillReturnRows(userRows(t, 3, "a@b.com", "Password1", "user"))

	token, user, err := svc.SignIn("A@B.com", "Password1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, int64(3), user.ID)
	assert.Equal(t, "2025-01-15", user.MemberSince)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSignInWrongPassword(t *testing.T) {
	svc, mock := newAuthService(t)

	mock.ExpectQuery("SELECT .+ FROM users WHERE email").
		WithArgs("a@b.com").
		WillReturnRows(userRows(t, 3, "a@b.com", "Password1", "user"))

	_, _, err := svc.SignIn("a@b.com", "WrongPassword1")
	require.Error(t, err)
	assert.True(t, domain.IsAuth(err))
}

func TestSignInUnknownEmail(t *testing.T) {
	svc, mock := newAuthService(t)

	mock.ExpectQuery("SELECT .+ FROM users WHERE email").
		WithArgs("ghost@b.com").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "firstname", "lastname", "username", "email", "password_hash", "role", "wallet_balance", "created_at",
		}))

	_, _, err := svc.SignIn("ghost@b.com", "Password1")
	require.Error(t, err)
	assert.True(t, domain.IsAuth(err))
}

func TestTokenRoundTrip(t *testing.T) {
	svc, _ := newAuthService(t)

	token, err := svc.IssueToken(42, domain.RoleDriver)
	require.NoError(t, err)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, domain.RoleDriver, claims.Role)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	svc, _ := newAuthService(t)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": float64(42),
		"role":    "user",
		"exp":     time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.VerifyToken(signed)
	require.Error(t, err)
	assert.True(t, domain.IsAuth(err))
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	svc, _ := newAuthService(t)

	other := AuthService{Secret: []byte("other-secret"), TokenTTL: time.Hour}
	token, err := other.IssueToken(42, domain.RoleUser)
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	require.Error(t, err)
	assert.True(t, domain.IsAuth(err))
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.VerifyToken("not.a.token")
	require.Error(t, err)
	assert.True(t, domain.IsAuth(err))
}
