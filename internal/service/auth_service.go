package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"safecam-data/internal/domain"
	"safecam-data/internal/models"
)

// UserStore 用户持久化依赖
type UserStore interface {
	UsernameExists(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthService 注册/登录服务接口
// 只覆盖旧版 API 的边界行为；凭据按 sha256 摘要存储，不做会话管理。
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (int64, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}

// authService 实现
type authService struct {
	users  UserStore
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(users UserStore, logger *zap.Logger) AuthService {
	return &authService{
		users:  users,
		logger: logger,
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// LoginResult 登录结果
type LoginResult struct {
	UserID int64  `json:"user_id"`
	Token  string `json:"token"`
}

// HashPassword 计算密码摘要
// 摘要只依赖密码本身，不混入账号等其他字段。
func HashPassword(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return sum[:]
}

// Register 注册新用户；用户名已存在时返回 Conflict
func (s *authService) Register(ctx context.Context, req RegisterRequest) (int64, error) {
	if req.Username == "" || req.Password == "" {
		return 0, domain.NewError(domain.ErrMissingField, "missing username or password")
	}

	exists, err := s.users.UsernameExists(ctx, req.Username)
	if err != nil {
		return 0, domain.WrapPersistence("database error", err)
	}
	if exists {
		return 0, domain.NewError(domain.ErrConflict, "username already exists")
	}

	// 旧版字段缺省规则：邮箱 <user>@example.com，昵称同用户名，角色 teacher
	email := req.Email
	if email == "" {
		email = fmt.Sprintf("%s@example.com", req.Username)
	}
	fullName := req.FullName
	if fullName == "" {
		fullName = req.Username
	}
	role := req.Role
	if role == "" {
		role = "teacher"
	}

	id, err := s.users.Create(ctx, &models.User{
		Username:     req.Username,
		PasswordHash: HashPassword(req.Password),
		Email:        email,
		FullName:     fullName,
		Role:         role,
	})
	if err != nil {
		return 0, domain.WrapPersistence("database error", err)
	}

	s.logger.Info("user registered", zap.String("username", req.Username), zap.Int64("user_id", id))
	return id, nil
}

// Login 校验凭据，成功时签发一次性 token
func (s *authService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.NewError(domain.ErrMissingField, "missing username or password")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, domain.WrapPersistence("database error", err)
	}
	if user == nil {
		return nil, domain.NewError(domain.ErrUnauthorized, "invalid username or password")
	}

	hash := HashPassword(password)
	if subtle.ConstantTimeCompare(user.PasswordHash, hash) != 1 {
		return nil, domain.NewError(domain.ErrUnauthorized, "invalid username or password")
	}

	return &LoginResult{
		UserID: user.ID,
		Token:  uuid.NewString(),
	}, nil
}
