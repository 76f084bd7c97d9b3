// Package service contains application services for accounts, study content and generation.
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	pkgcrypto "github.com/and161185/studyhub/internal/crypto"
	"github.com/and161185/studyhub/internal/errs"
	"github.com/and161185/studyhub/internal/limiter"
	"github.com/and161185/studyhub/internal/model"
	"github.com/and161185/studyhub/internal/repository"
	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the access token lifetime when none is configured.
const DefaultTokenTTL = 30 * 24 * time.Hour

const passwordSymbols = "!@#$%^&*"

var emailRe = regexp.MustCompile(`.+@.+\..+`)

// RegisterInput carries signup fields. Profile fields are read according to Role.
type RegisterInput struct {
	Email       string
	Username    string
	Password    string
	Role        model.Role
	FirstName   string
	LastName    string
	Permissions []string
}

// AuthService defines signup, signin, token verification and self-deletion.
type AuthService interface {
	// Register validates input, stores a hashed credential and issues a token.
	Register(ctx context.Context, in RegisterInput) (model.Account, model.Tokens, error)
	// Authenticate applies rate-limiting and checks email/password.
	Authenticate(ctx context.Context, email, password, ip string) (model.Account, model.Tokens, error)
	// VerifyToken resolves a bearer token to a live account.
	VerifyToken(ctx context.Context, token string) (model.Account, error)
	// DeleteSelf removes the account and everything it owns.
	DeleteSelf(ctx context.Context, accountID uuid.UUID) error
}

type AuthServiceImpl struct {
	accounts  repository.AccountRepository
	signKey   []byte
	accessTTL time.Duration
	lim       limiter.Limiter
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(accounts repository.AccountRepository, signKey []byte, accessTTL time.Duration, lim limiter.Limiter) *AuthServiceImpl {
	if accessTTL <= 0 {
		accessTTL = DefaultTokenTTL
	}
	if lim == nil {
		lim = limiter.Noop{}
	}
	return &AuthServiceImpl{accounts: accounts, signKey: signKey, accessTTL: accessTTL, lim: lim}
}

// Register creates a new account after validation and uniqueness checks.
func (s *AuthServiceImpl) Register(ctx context.Context, in RegisterInput) (model.Account, model.Tokens, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Username = strings.TrimSpace(in.Username)
	if err := validateRegister(in); err != nil {
		return model.Account{}, model.Tokens{}, err
	}

	emailTaken, usernameTaken, err := s.accounts.Taken(ctx, in.Email, in.Username)
	if err != nil {
		return model.Account{}, model.Tokens{}, fmt.Errorf("check uniqueness: %w", err)
	}
	if emailTaken {
		return model.Account{}, model.Tokens{}, errs.ErrEmailTaken
	}
	if usernameTaken {
		return model.Account{}, model.Tokens{}, errs.ErrUsernameTaken
	}

	hash, err := pkgcrypto.HashPassword(in.Password)
	if err != nil {
		return model.Account{}, model.Tokens{}, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return model.Account{}, model.Tokens{}, err
	}

	a := &model.Account{
		ID:       id,
		Email:    in.Email,
		Username: in.Username,
		PwdHash:  hash,
		Role:     in.Role,
	}
	if in.Role == model.RoleAdmin {
		a.Admin = &model.AdminProfile{Permissions: in.Permissions}
	} else {
		a.User = &model.UserProfile{FirstName: strings.TrimSpace(in.FirstName), LastName: strings.TrimSpace(in.LastName)}
	}

	// Create maps unique violations too, covering a race between Taken and insert.
	if err := s.accounts.Create(ctx, a); err != nil {
		return model.Account{}, model.Tokens{}, err
	}

	tok, err := s.issueAccessToken(a.ID)
	if err != nil {
		return model.Account{}, model.Tokens{}, err
	}
	return *a, tok, nil
}

// Authenticate checks credentials with rate limiting by (email, ip).
func (s *AuthServiceImpl) Authenticate(ctx context.Context, email, password, ip string) (model.Account, model.Tokens, error) {
	email = strings.TrimSpace(email)
	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, email, ipHash)
	if err != nil {
		return model.Account{}, model.Tokens{}, err
	}
	if !allowed {
		return model.Account{}, model.Tokens{}, errs.ErrRateLimited
	}

	a, err := s.accounts.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return model.Account{}, model.Tokens{}, err
	}
	ok := false
	if err == nil {
		// a malformed stored hash is treated as a mismatch
		ok, _ = pkgcrypto.VerifyPassword(password, a.PwdHash)
	}
	if !ok {
		if blocked, _, ferr := s.lim.Failure(ctx, email, ipHash); ferr == nil && blocked {
			return model.Account{}, model.Tokens{}, errs.ErrRateLimited
		}
		// unknown email and wrong password look the same to the caller
		return model.Account{}, model.Tokens{}, errs.ErrInvalidCredentials
	}

	// Success: reset counters (best-effort).
	_ = s.lim.Success(ctx, email, ipHash)

	tok, err := s.issueAccessToken(a.ID)
	if err != nil {
		return model.Account{}, model.Tokens{}, err
	}
	return *a, tok, nil
}

// VerifyToken checks signature, expiry and that the subject still exists.
func (s *AuthServiceImpl) VerifyToken(ctx context.Context, token string) (model.Account, error) {
	if token == "" {
		return model.Account{}, errs.ErrUnauthorized
	}
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signKey, nil
	}, jwt.WithLeeway(30*time.Second), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return model.Account{}, errs.ErrUnauthorized
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return model.Account{}, errs.ErrUnauthorized
	}
	id, err := uuid.FromString(claims.Subject)
	if err != nil {
		return model.Account{}, errs.ErrUnauthorized
	}
	a, err := s.accounts.GetByID(ctx, id)
	if errors.Is(err, errs.ErrNotFound) {
		return model.Account{}, errs.AccountGone()
	}
	if err != nil {
		return model.Account{}, err
	}
	return *a, nil
}

// DeleteSelf removes the caller's account; owned content cascades.
func (s *AuthServiceImpl) DeleteSelf(ctx context.Context, accountID uuid.UUID) error {
	if err := s.accounts.Delete(ctx, accountID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.NotFound("User")
		}
		return err
	}
	return nil
}

// issueAccessToken creates a signed HS256 JWT for the given subject.
func (s *AuthServiceImpl) issueAccessToken(accountID uuid.UUID) (model.Tokens, error) {
	now := time.Now()
	exp := now.Add(s.accessTTL)
	claims := jwt.RegisteredClaims{
		Subject:   accountID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.signKey)
	if err != nil {
		return model.Tokens{}, err
	}
	return model.Tokens{AccessToken: signed, ExpiresAt: exp}, nil
}

func validateRegister(in RegisterInput) error {
	switch {
	case in.Email == "":
		return errs.Invalid("Email is required")
	case !emailRe.MatchString(in.Email):
		return errs.Invalid("Please fill a valid email address")
	case len([]rune(in.Username)) < 3:
		return errs.Invalid("Username must be at least 3 characters long")
	case !in.Role.Valid():
		return errs.Invalid("Role must be USER or ADMIN")
	}
	if in.Role == model.RoleUser {
		if strings.TrimSpace(in.FirstName) == "" {
			return errs.Invalid("First name is required")
		}
		if strings.TrimSpace(in.LastName) == "" {
			return errs.Invalid("Last name is required")
		}
	}
	return checkPassword(in.Password)
}

// checkPassword enforces length >= 8 with an uppercase letter, a digit and a symbol.
func checkPassword(pw string) error {
	if pw == "" {
		return &errs.Error{Kind: errs.ErrWeakPassword, Msg: "Password is required"}
	}
	if len([]rune(pw)) < 8 {
		return &errs.Error{Kind: errs.ErrWeakPassword, Msg: "Password must be at least 8 characters long"}
	}
	var upper, digit, symbol bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	if !upper || !digit || !symbol {
		return &errs.Error{Kind: errs.ErrWeakPassword, Msg: "Password must contain at least one special character, one uppercase letter, and one digit"}
	}
	return nil
}
