// adduser 在无法登录时（例如首次部署）直接向数据库写入一个账号
//
//	go run ./cmd/adduser -username admin -password secret123
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/lixinchen-031016/work-record/config"
	"github.com/lixinchen-031016/work-record/internal/dto"
	"github.com/lixinchen-031016/work-record/internal/repository"
	"github.com/lixinchen-031016/work-record/internal/service"
	"github.com/lixinchen-031016/work-record/pkg/database"
	applogger "github.com/lixinchen-031016/work-record/pkg/logger"
)

// errUsage 参数错误，退出码为 2
var errUsage = errors.New("参数错误")

type options struct {
	username   string
	password   string
	configPath string
}

func main() {
	opts, err := parseOptions(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	// os.Exit 不执行 defer，资源释放都放在 run 内
	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseOptions(args []string, output io.Writer) (*options, error) {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(output)

	opts := &options{}
	fs.StringVar(&opts.username, "username", "", "用户名")
	fs.StringVar(&opts.password, "password", "", "密码（6-72 字节）")
	fs.StringVar(&opts.configPath, "config", os.Getenv("WORKLOG_CONFIG"), "配置文件路径")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if opts.username == "" || opts.password == "" {
		fs.Usage()
		return nil, fmt.Errorf("%w: 必须指定 -username 与 -password", errUsage)
	}
	if err := service.ValidatePassword(opts.password); err != nil {
		return nil, fmt.Errorf("%w: %w", errUsage, err)
	}
	return opts, nil
}

func run(opts *options) error {
	_ = godotenv.Load()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}

	logger, err := applogger.NewLogger(&config.LogConfig{Level: "warn", Format: "console"})
	if err != nil {
		return fmt.Errorf("初始化日志失败: %w", err)
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database, "warn", logger)
	if err != nil {
		return fmt.Errorf("数据库连接失败: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, logger); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := service.NewUserService(repository.NewRepository(db), logger)
	user, err := users.Create(ctx, &dto.CreateUserRequest{
		Username:        opts.username,
		Password:        opts.password,
		ConfirmPassword: opts.password,
	})
	if err != nil {
		return fmt.Errorf("创建用户失败: %w", err)
	}

	fmt.Printf("用户创建成功: %s (%s)\n", user.Username, user.ID)
	return nil
}
