package service

import (
	"context"
	"errors"
	"time"

	"github.com/Sriraja07/BillSys/internal/config"
	"github.com/Sriraja07/BillSys/internal/dto"
	"github.com/Sriraja07/BillSys/internal/model"
	"github.com/Sriraja07/BillSys/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid mobile number or password")

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	ListUsers(ctx context.Context) (*dto.UserListResponse, error)
	DeleteUser(ctx context.Context, id uint) error
	ChangePassword(ctx context.Context, userID uint, req dto.ChangePasswordRequest) error
	ResetPassword(ctx context.Context, userID uint, req dto.ResetPasswordRequest) error
}

type authService struct {
	repo repository.UserRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByMobile(ctx, req.MobileNumber)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.tokenPair(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token invalid or expired")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("malformed token")
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, errors.New("malformed token")
	}

	user, err := s.repo.FindByID(ctx, uint(userID))
	if err != nil {
		return nil, errors.New("user not found")
	}
	return s.tokenPair(user)
}

func (s *authService) tokenPair(user *model.User) (*dto.LoginResponse, error) {
	access, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refresh, err := s.generateToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         userToResponse(user),
	}, nil
}

func (s *authService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if _, err := s.repo.FindByMobile(ctx, req.MobileNumber); err == nil {
		return nil, errors.New("mobile number already registered")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		MobileNumber: req.MobileNumber,
		Name:         req.Name,
		Role:         req.Role,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	resp := userToResponse(user)
	return &resp, nil
}

func (s *authService) ListUsers(ctx context.Context) (*dto.UserListResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.UserListResponse{Data: make([]dto.UserResponse, 0, len(users))}
	for i := range users {
		resp.Data = append(resp.Data, userToResponse(&users[i]))
		switch users[i].Role {
		case "admin":
			resp.Stats.TotalAdmins++
		case "employee":
			resp.Stats.TotalEmployees++
		case "owner":
			resp.Stats.TotalOwners++
		}
	}
	resp.Stats.TotalUsers = len(users)
	return resp, nil
}

// DeleteUser removes a login. The last admin cannot be deleted.
func (s *authService) DeleteUser(ctx context.Context, id uint) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("user not found")
	}
	if user.Role == "admin" {
		admins, err := s.repo.CountByRole(ctx, "admin")
		if err != nil {
			return err
		}
		if admins <= 1 {
			return errors.New("cannot delete the last admin user")
		}
	}
	return s.repo.Delete(ctx, id)
}

func (s *authService) ChangePassword(ctx context.Context, userID uint, req dto.ChangePasswordRequest) error {
	if req.ConfirmPassword != "" && req.ConfirmPassword != req.NewPassword {
		return errors.New("password confirmation does not match")
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return errors.New("user not found")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return errors.New("current password is incorrect")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 12)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	return s.repo.Update(ctx, user)
}

// ResetPassword sets a new password without the current one; it is gated to
// user administrators by the router.
func (s *authService) ResetPassword(ctx context.Context, userID uint, req dto.ResetPasswordRequest) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return errors.New("user not found")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 12)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	return s.repo.Update(ctx, user)
}

func (s *authService) generateToken(user *model.User, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"mobile":  user.MobileNumber,
		"role":    user.Role,
		"exp":     time.Now().Add(duration).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func userToResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:           u.ID,
		MobileNumber: u.MobileNumber,
		Name:         u.Name,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt.Format("2006-01-02"),
	}
}
