package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	dataagg "github.com/RodCinelli/gestao-engparente/internal/data/aggregates"
	"github.com/RodCinelli/gestao-engparente/internal/data/repos"
	types "github.com/RodCinelli/gestao-engparente/internal/domain"
	domainagg "github.com/RodCinelli/gestao-engparente/internal/domain/aggregates"
	"github.com/RodCinelli/gestao-engparente/internal/platform/ctxutil"
	"github.com/RodCinelli/gestao-engparente/internal/platform/dbctx"
	"github.com/RodCinelli/gestao-engparente/internal/platform/logger"
)

const minPasswordLength = 8

// Default development account, created by the create-default-user command.
const (
	DefaultUsername = "Andreteste"
	defaultEmail    = "andre@engparente.com"
	defaultPassword = "teste1234"
)

type RegisterInput struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
}

type LoginResult struct {
	Access  string      `json:"access"`
	Refresh string      `json:"refresh"`
	User    *types.User `json:"user"`
}

// AccessClaims is the payload of an access token. The subject is the user id.
type AccessClaims struct {
	Username string `json:"username"`
	Staff    bool   `json:"staff"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*types.User, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	// Refresh issues a new access token for a live refresh token.
	Refresh(ctx context.Context, refreshToken string) (string, error)
	// Logout revokes refreshToken, or every refresh token of the caller when
	// it is empty.
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context) (*types.User, error)
	ListUsers(ctx context.Context) ([]types.User, error)
	ParseAccessToken(tokenString string) (*ctxutil.RequestData, error)
	EnsureDefaultUser(ctx context.Context) (bool, error)
	AccessTTL() time.Duration
}

type authService struct {
	log           *logger.Logger
	writer        dataagg.Writer
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewAuthService(
	log *logger.Logger,
	writer dataagg.Writer,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		log:           log.With("service", "AuthService"),
		writer:        writer,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

func (as *authService) AccessTTL() time.Duration { return as.accessTTL }

func (as *authService) Register(ctx context.Context, in RegisterInput) (*types.User, error) {
	const op = "auth.register"
	username := strings.TrimSpace(in.Username)
	switch {
	case username == "":
		return nil, domainagg.Validation(op, "username is required")
	case len(in.Password) < minPasswordLength:
		return nil, domainagg.Validation(op, "password must have at least %d characters", minPasswordLength)
	case in.PasswordConfirm != "" && in.PasswordConfirm != in.Password:
		return nil, domainagg.Validation(op, "passwords do not match")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domainagg.NewError(domainagg.CodeInternal, op, "hash password", err)
	}
	u := &types.User{
		Username:  username,
		Email:     strings.TrimSpace(in.Email),
		Password:  string(hash),
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
	}
	err = as.writer.Execute(ctx, op, func(dbc dbctx.Context) error {
		exists, err := as.userRepo.UsernameExists(dbc, username)
		if err != nil {
			return err
		}
		if exists {
			return domainagg.NewError(domainagg.CodeConflict, op, "username already taken", nil)
		}
		return as.userRepo.Create(dbc, u)
	})
	if err != nil {
		return nil, err
	}
	as.log.Info("user registered", "user_id", u.ID, "username", u.Username)
	return u, nil
}

func (as *authService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	const op = "auth.login"
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domainagg.Validation(op, "username and password are required")
	}
	invalid := domainagg.NewError(domainagg.CodeUnauthorized, op, "invalid credentials", nil)

	var res LoginResult
	err := as.writer.Execute(ctx, op, func(dbc dbctx.Context) error {
		u, err := as.userRepo.GetByUsername(dbc, username)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invalid
		}
		if err != nil {
			return err
		}
		if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
			return invalid
		}
		now := as.now()
		if _, err := as.userTokenRepo.DeleteExpired(dbc, now); err != nil {
			return err
		}
		tok := &types.UserToken{
			UserID:       u.ID,
			RefreshToken: newRefreshToken(),
			ExpiresAt:    now.Add(as.refreshTTL),
		}
		if _, err := as.userTokenRepo.Create(dbc, []*types.UserToken{tok}); err != nil {
			return err
		}
		if err := as.userRepo.TouchLastLogin(dbc, u.ID, now); err != nil {
			return err
		}
		access, err := as.signAccessToken(u, now)
		if err != nil {
			return err
		}
		u.LastLogin = &now
		res = LoginResult{Access: access, Refresh: tok.RefreshToken, User: u}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (as *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	const op = "auth.refresh"
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return "", domainagg.Validation(op, "refresh is required")
	}
	dbc := readCtx(ctx)
	tok, err := as.userTokenRepo.GetByRefreshToken(dbc, refreshToken)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", domainagg.NewError(domainagg.CodeUnauthorized, op, "invalid refresh token", nil)
	}
	if err != nil {
		return "", dataagg.MapError(op, err)
	}
	now := as.now()
	if tok.Expired(now) {
		return "", domainagg.NewError(domainagg.CodeUnauthorized, op, "refresh token expired", nil)
	}
	u, err := as.userRepo.GetByID(dbc, tok.UserID)
	if err != nil {
		return "", dataagg.MapError(op, err)
	}
	access, err := as.signAccessToken(u, now)
	return access, dataagg.MapError(op, err)
}

func (as *authService) Logout(ctx context.Context, refreshToken string) error {
	const op = "auth.logout"
	refreshToken = strings.TrimSpace(refreshToken)
	rd := ctxutil.GetRequestData(ctx)
	return as.writer.Execute(ctx, op, func(dbc dbctx.Context) error {
		if refreshToken != "" {
			tok, err := as.userTokenRepo.GetByRefreshToken(dbc, refreshToken)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			return as.userTokenRepo.DeleteByIDs(dbc, []uuid.UUID{tok.ID})
		}
		if rd == nil || rd.UserID == 0 {
			return domainagg.NewError(domainagg.CodeUnauthorized, op, "not authenticated", nil)
		}
		return as.userTokenRepo.DeleteByUserIDs(dbc, []uint{rd.UserID})
	})
}

func (as *authService) Me(ctx context.Context) (*types.User, error) {
	const op = "auth.me"
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == 0 {
		return nil, domainagg.NewError(domainagg.CodeUnauthorized, op, "not authenticated", nil)
	}
	u, err := as.userRepo.GetByID(readCtx(ctx), rd.UserID)
	return u, dataagg.MapError(op, err)
}

func (as *authService) ListUsers(ctx context.Context) ([]types.User, error) {
	const op = "auth.list_users"
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || !rd.IsStaff {
		return nil, domainagg.NewError(domainagg.CodeUnauthorized, op, "staff only", nil)
	}
	rows, err := as.userRepo.List(readCtx(ctx))
	return rows, dataagg.MapError(op, err)
}

func (as *authService) ParseAccessToken(tokenString string) (*ctxutil.RequestData, error) {
	const op = "auth.parse_token"
	claims := &AccessClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(as.now))
	if err != nil {
		return nil, domainagg.NewError(domainagg.CodeUnauthorized, op, "invalid token", err)
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return nil, domainagg.NewError(domainagg.CodeUnauthorized, op, "invalid token subject", err)
	}
	return &ctxutil.RequestData{
		UserID:   uint(id),
		Username: claims.Username,
		IsStaff:  claims.Staff,
		Token:    tokenString,
	}, nil
}

func (as *authService) EnsureDefaultUser(ctx context.Context) (bool, error) {
	exists, err := as.userRepo.UsernameExists(readCtx(ctx), DefaultUsername)
	if err != nil {
		return false, dataagg.MapError("auth.default_user", err)
	}
	if exists {
		return false, nil
	}
	_, err = as.Register(ctx, RegisterInput{
		Username:  DefaultUsername,
		Email:     defaultEmail,
		Password:  defaultPassword,
		FirstName: "André",
		LastName:  "Teste",
	})
	return err == nil, err
}

func (as *authService) signAccessToken(u *types.User, now time.Time) (string, error) {
	claims := AccessClaims{
		Username: u.Username,
		Staff:    u.IsStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(u.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

// newRefreshToken returns 64 hex characters from two random UUIDs.
func newRefreshToken() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}
