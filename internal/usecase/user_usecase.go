package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"online-food/internal/domain/model"
	repo "online-food/internal/repository"
)

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// bcryptハッシュと平文の突き合わせ
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// ログイン成功時のアクセストークン発行（JWT実装はmainで注入）
type TokenIssuer interface {
	Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error)
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// 入力の形式チェック（validatorパッケージが実装）
type AuthValidator interface {
	ValidateRegister(ctx context.Context, name string, email string, password string, role string) error
	ValidateLogin(ctx context.Context, email string, password string) error
}

type UserUsecase struct {
	userRepo  repo.UserRepository
	validator AuthValidator
	hasher    PasswordHasher
	verifier  PasswordVerifier
	issuer    TokenIssuer
	clock     Clock
}

// DI
func NewUserUsecase(
	userRepo repo.UserRepository,
	validator AuthValidator,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	issuer TokenIssuer,
	clock Clock,
) *UserUsecase {
	return &UserUsecase{
		userRepo:  userRepo,
		validator: validator,
		hasher:    hasher,
		verifier:  verifier,
		issuer:    issuer,
		clock:     clock,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	User      model.User `json:"user"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
}

func (u *UserUsecase) Register(ctx context.Context, in RegisterInput) (model.User, error) {
	if err := u.validator.ValidateRegister(ctx, in.Name, in.Email, in.Password, in.Role); err != nil {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "validation error")
	}

	email := strings.TrimSpace(in.Email)

	// email重複チェック
	_, err := u.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return model.User{}, NewHTTPError(http.StatusConflict, "email already exists")
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 平文は保存しない
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	role := model.Role(in.Role)
	if role == "" {
		role = model.RoleCustomer
	}

	now := u.clock.Now()
	user := &model.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		//同時登録でユニーク制約に当たった場合
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return model.User{}, NewHTTPError(http.StatusConflict, "email already exists")
		}
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return *user, nil
}

func (u *UserUsecase) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	if err := u.validator.ValidateLogin(ctx, in.Email, in.Password); err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusBadRequest, "validation error")
	}

	user, err := u.userRepo.FindByEmail(ctx, strings.TrimSpace(in.Email))
	if errors.Is(err, repo.ErrNotFound) {
		//存在の有無は漏らさない
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !u.verifier.Verify(in.Password, user.PasswordHash) {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}

	now := u.clock.Now()
	token, expiresAt, err := u.issuer.Issue(user.ID, user.Role, now)
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return LoginOutput{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (u *UserUsecase) GetByID(ctx context.Context, userID int64) (model.User, error) {
	if userID <= 0 {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.User{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return user, nil
}

func (u *UserUsecase) ListAll(ctx context.Context) ([]model.User, error) {
	users, err := u.userRepo.ListAll(ctx)
	if err != nil {
		return []model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return users, nil
}

func (u *UserUsecase) Delete(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.userRepo.Delete(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
