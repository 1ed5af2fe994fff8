package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/quizmind-backend/internal/data/db"
	"github.com/yungbote/quizmind-backend/internal/data/repos"
	types "github.com/yungbote/quizmind-backend/internal/domain"
	"github.com/yungbote/quizmind-backend/internal/platform/ctxutil"
	"github.com/yungbote/quizmind-backend/internal/platform/dbctx"
	"github.com/yungbote/quizmind-backend/internal/platform/logger"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 32
	minPasswordLength = 8
	// bcrypt ignores input past 72 bytes.
	maxPasswordBytes = 72
)

type JWTClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *types.User
}

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*types.User, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Logout(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	AccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	credentials   CredentialVerifier
	jwtSecretKey  []byte
	accessTTL     time.Duration
	now           func() time.Time
	// dummyHash keeps unknown-user logins as slow as wrong-password ones.
	dummyHash string
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	credentials CredentialVerifier,
	jwtSecretKey string,
	accessTTL time.Duration,
) (AuthService, error) {
	serviceLog := log.With("service", "AuthService")
	if strings.TrimSpace(jwtSecretKey) == "" {
		return nil, fmt.Errorf("jwt secret key required")
	}
	if accessTTL <= 0 {
		accessTTL = 24 * time.Hour
	}
	dummy, err := credentials.Hash(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("prepare credential verifier: %w", err)
	}
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		credentials:   credentials,
		jwtSecretKey:  []byte(jwtSecretKey),
		accessTTL:     accessTTL,
		now:           func() time.Time { return time.Now().UTC() },
		dummyHash:     dummy,
	}, nil
}

func (as *authService) AccessTTL() time.Duration { return as.accessTTL }

func (as *authService) Register(ctx context.Context, username, email, password string) (*types.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateRegistration(username, email, password); err != nil {
		return nil, err
	}
	hashed, err := as.credentials.Hash(password)
	if err != nil {
		return nil, err
	}
	now := as.now()
	u := &types.User{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		Password:  hashed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := as.userRepo.Create(dbctx.New(ctx), []*types.User{u}); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrDuplicateUser
		}
		as.log.Error("create user failed", "error", err)
		return nil, fmt.Errorf("create user: %w", err)
	}
	as.log.Info("user registered", "user_id", u.ID)
	return u, nil
}

func validateRegistration(username, email, password string) error {
	if n := utf8.RuneCountInString(username); n < minUsernameLength || n > maxUsernameLength {
		return invalidArgument("username must be %d to %d characters", minUsernameLength, maxUsernameLength)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || !strings.EqualFold(addr.Address, email) || !strings.Contains(email, ".") {
		return invalidArgument("email is not a valid address")
	}
	if len(password) < minPasswordLength {
		return invalidArgument("password must be at least %d characters", minPasswordLength)
	}
	if len(password) > maxPasswordBytes {
		return invalidArgument("password must be at most %d bytes", maxPasswordBytes)
	}
	return nil
}

func (as *authService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	users, err := as.userRepo.GetByUsernames(dbctx.New(ctx), []string{username})
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 {
		as.credentials.Verify(password, as.dummyHash)
		return nil, ErrInvalidCredentials
	}
	u := users[0]
	if !as.credentials.Verify(password, u.Password) {
		as.log.Info("login rejected", "user_id", u.ID)
		return nil, ErrInvalidCredentials
	}

	now := as.now()
	expiresAt := now.Add(as.accessTTL)
	userToken := &types.UserToken{
		ID:        uuid.New(),
		UserID:    u.ID,
		ExpiresAt: expiresAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	signed, err := as.generateAccessToken(u, userToken.ID, now, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	userToken.AccessToken = signed

	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, err := as.userTokenRepo.FullDeleteExpiredByUserIDs(dbc, []uuid.UUID{u.ID}, now); err != nil {
			return fmt.Errorf("delete expired tokens: %w", err)
		}
		if _, err := as.userTokenRepo.Create(dbc, []*types.UserToken{userToken}); err != nil {
			return fmt.Errorf("create user token: %w", err)
		}
		return nil
	})
	if err != nil {
		as.log.Warn("login token persistence failed", "user_id", u.ID, "error", err)
		return nil, err
	}
	as.log.Info("user logged in", "user_id", u.ID)
	return &LoginResult{AccessToken: signed, ExpiresAt: expiresAt, User: u}, nil
}

func (as *authService) Logout(ctx context.Context) error {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.TokenID == uuid.Nil {
		as.log.Warn("Request data not set in context")
		return ErrUnauthorized
	}
	if err := as.userTokenRepo.FullDeleteByIDs(dbctx.New(ctx), []uuid.UUID{rd.TokenID}); err != nil {
		return fmt.Errorf("delete user token: %w", err)
	}
	as.log.Info("user logged out", "user_id", rd.UserID)
	return nil
}

func (as *authService) generateAccessToken(u *types.User, tokenID uuid.UUID, issuedAt, expiresAt time.Time) (string, error) {
	claims := JWTClaims{
		Username: u.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID.String(),
			Subject:   u.ID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(as.jwtSecretKey)
}

// SetContextFromToken verifies tokenString and that its row has not been revoked,
// then attaches the caller to ctx.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, ErrUnauthorized
	}
	claims := &JWTClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return as.jwtSecretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(as.now))
	if err != nil || !parsed.Valid {
		as.log.Debug("token rejected", "error", err)
		return ctx, ErrUnauthorized
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, ErrUnauthorized
	}
	tokenID, err := uuid.Parse(claims.ID)
	if err != nil {
		return ctx, ErrUnauthorized
	}

	found, err := as.userTokenRepo.GetByIDs(dbctx.New(ctx), []uuid.UUID{tokenID})
	if err != nil {
		return ctx, fmt.Errorf("load user token: %w", err)
	}
	if len(found) == 0 {
		return ctx, ErrUnauthorized
	}
	row := found[0]
	if row.UserID != userID || row.AccessToken != tokenString || !row.ExpiresAt.After(as.now()) {
		return ctx, ErrUnauthorized
	}

	return ctxutil.WithCaller(ctx, userID, claims.Username, tokenID), nil
}
