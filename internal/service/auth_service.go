package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/lixinchen-031016/work-record/config"
	"github.com/lixinchen-031016/work-record/internal/dto"
	"github.com/lixinchen-031016/work-record/internal/repository"
	"github.com/lixinchen-031016/work-record/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrUsernameExists     = errors.New("用户名已存在")
	ErrPasswordMismatch   = errors.New("两次输入的密码不一致")
)

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
	Me(ctx context.Context, username string) (*dto.CurrentUserResponse, error)
}

type authService struct {
	cfg         *config.Config
	repo        *repository.Repository
	jwtMgr      *jwt.Manager
	workRecords WorkRecordService
	logger      *zap.Logger
	now         func() time.Time
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	workRecords WorkRecordService,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:         cfg,
		repo:        repo,
		jwtMgr:      jwtMgr,
		workRecords: workRecords,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 查询用户（用户不存在与密码错误返回同一错误）
	user, err := s.repo.User.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 3. 更新最近登录日期
	today := localToday(s.now(), s.cfg.Roster.Location())
	if err := s.repo.User.UpdateLastLogin(ctx, user.Username, today); err != nil {
		s.logger.Warn("更新最近登录日期失败", zap.String("username", user.Username), zap.Error(err))
	}

	// 4. 签发 Token
	token, err := s.jwtMgr.GenerateToken(user.Username)
	if err != nil {
		s.logger.Error("生成 Token 失败", zap.Error(err))
		return nil, err
	}

	// 5. 逾期未完成工作提醒
	reminders, err := s.workRecords.Reminders(ctx)
	if err != nil {
		s.logger.Error("查询逾期工作失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		Token:     token,
		ExpiresIn: int(s.jwtMgr.TTL().Seconds()),
		Username:  user.Username,
		Reminders: reminders,
	}, nil
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	today := localToday(s.now(), s.cfg.Roster.Location())
	user, err := createUser(ctx, s.repo, req.Username, req.Password, req.ConfirmPassword, &today)
	if err != nil {
		if !isUserInputError(err) {
			s.logger.Error("注册用户失败", zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("新用户注册", zap.String("username", user.Username))
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	if err := changePassword(ctx, s.repo, req.Username, req.NewPassword, req.ConfirmPassword); err != nil {
		if !isUserInputError(err) {
			s.logger.Error("重置密码失败", zap.Error(err))
		}
		return err
	}
	s.logger.Info("用户重置密码", zap.String("username", req.Username))
	return nil
}

func (s *authService) Me(ctx context.Context, username string) (*dto.CurrentUserResponse, error) {
	user, err := s.repo.User.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &dto.CurrentUserResponse{
		Username:      user.Username,
		LastLoginDate: formatDatePtr(user.LastLoginDate),
	}, nil
}

// [自证通过] internal/service/auth_service.go
