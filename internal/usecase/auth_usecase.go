package usecase

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// アクセストークンを発行する約束。実装は cmd/api 側。
type TokenIssuer interface {
	Issue(user model.User, now time.Time) (string, error)
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

type AuthUsecase struct {
	users      repo.UserRepository
	issuer     TokenIssuer
	clock      Clock
	bcryptCost int
}

func NewAuthUsecase(users repo.UserRepository, issuer TokenIssuer, clock Clock, bcryptCost int) *AuthUsecase {
	return &AuthUsecase{users: users, issuer: issuer, clock: clock, bcryptCost: bcryptCost}
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

type AuthOutput struct {
	User  UserSummary `json:"user"`
	Token string      `json:"token"`
}

// 会員登録。email 重複は 409。
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (AuthOutput, error) {
	email := strings.TrimSpace(in.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return AuthOutput{}, ErrValidation("invalid email")
	}
	if len(in.Password) < 6 {
		return AuthOutput{}, ErrValidation("password must be at least 6 characters")
	}
	name := strings.TrimSpace(in.Name)
	if len(name) < 2 {
		return AuthOutput{}, ErrValidation("name must be at least 2 characters")
	}

	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return AuthOutput{}, ErrEmailExists()
	} else if err != repo.ErrNotFound {
		return AuthOutput{}, ErrInternal()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.bcryptCost)
	if err != nil {
		return AuthOutput{}, ErrInternal()
	}

	user := model.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         model.RoleUser,
	}
	if err := u.users.Create(ctx, &user); err != nil {
		return AuthOutput{}, ErrInternal()
	}

	return u.issueFor(user)
}

type LoginInput struct {
	Email    string
	Password string
}

// ログイン。存在しないemailもパスワード不一致も同じ 401。
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (AuthOutput, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return AuthOutput{}, ErrInvalidCredentials()
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err == repo.ErrNotFound {
		return AuthOutput{}, ErrInvalidCredentials()
	}
	if err != nil {
		return AuthOutput{}, ErrInternal()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return AuthOutput{}, ErrInvalidCredentials()
	}

	return u.issueFor(user)
}

func (u *AuthUsecase) issueFor(user model.User) (AuthOutput, error) {
	token, err := u.issuer.Issue(user, u.clock.Now())
	if err != nil {
		return AuthOutput{}, ErrInternal()
	}
	return AuthOutput{
		User:  UserSummary{ID: user.ID, Email: user.Email, Name: user.Name},
		Token: token,
	}, nil
}
