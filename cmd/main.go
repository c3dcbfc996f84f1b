package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"globassets_dev_v1_202608/internal/controller"
	"globassets_dev_v1_202608/internal/middleware"
	"globassets_dev_v1_202608/internal/model"
	"globassets_dev_v1_202608/internal/repository"
	"globassets_dev_v1_202608/internal/router"
	"globassets_dev_v1_202608/internal/service"
	"globassets_dev_v1_202608/internal/task"
	"globassets_dev_v1_202608/internal/wizard"
	"globassets_dev_v1_202608/pkg/database"
	"globassets_dev_v1_202608/pkg/estate"
)

// @title Globassets BFF API
// @version 1.0
// @description Globassets 房产挂牌向导与代理服务
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. 初始化数据库
	db := initDatabase()

	// 2. 初始化依赖
	deps := initDependencies(db)

	// 3. 启动定时任务
	taskManager := initTasks(deps)
	defer taskManager.Stop()

	// 4. 初始化路由
	r := gin.Default()
	router.InitRoutes(r,
		deps.Controllers.Auth,
		deps.Controllers.Wizard,
		deps.Controllers.Property,
		deps.Controllers.Catalog,
		deps.Controllers.Profile,
		deps.Controllers.Admin,
		deps.SubmitLimiter,
	)

	// 5. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB            *gorm.DB
	Repos         *Repositories
	Services      *Services
	Controllers   *Controllers
	WizardStore   *wizard.Store
	SubmitLimiter *middleware.SubmitLimiter
}

// Repositories 仓库集合
type Repositories struct {
	SysUser       repository.SysUserRepository
	Catalog       repository.CatalogRepository
	SubmissionLog repository.SubmissionLogRepository
}

// Services 服务集合
type Services struct {
	Auth     *service.AuthService
	Wizard   *service.WizardService
	Property *service.PropertyService
	Catalog  *service.CatalogService
	Profile  *service.ProfileService
	Admin    *service.AdminService
	Storage  service.StorageProvider
}

// Controllers 控制器集合
type Controllers struct {
	Auth     *controller.AuthController
	Wizard   *controller.WizardController
	Property *controller.PropertyController
	Catalog  *controller.CatalogController
	Profile  *controller.ProfileController
	Admin    *controller.AdminController
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	dsn := getEnv("DATABASE_DSN",
		"host=localhost user=postgres password=postgres dbname=globassets port=5432 sslmode=disable TimeZone=UTC")

	return database.InitDB(dsn,
		// Manager
		&model.SysUser{},
		// Catalog 镜像
		&model.StateMirror{}, &model.RegionMirror{},
		&model.RoomTypeMirror{}, &model.FeatureMirror{},
		// 提交审计
		&model.SubmissionLog{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		SysUser:       repository.NewSysUserRepository(db),
		Catalog:       repository.NewCatalogRepository(db),
		SubmissionLog: repository.NewSubmissionLogRepository(db),
	}

	// -------- 远端客户端 --------
	apiClient := estate.NewClient(&estate.Config{
		BaseURL: getEnv("GLOBASSETS_BASE_URL", "https://api.globassets.com"),
		Debug:   getEnv("HTTP_DEBUG", "") == "1",
	})

	// -------- JWT 配置 --------
	if secret := getEnv("JWT_SECRET", ""); secret != "" {
		cfg := middleware.DefaultJWTConfig()
		cfg.SecretKey = secret
		middleware.SetJWTConfig(cfg)
	}

	// -------- 存储 --------
	storage, err := service.NewStorageProvider(&service.StorageConfig{
		Provider:  getEnv("STORAGE_PROVIDER", "presigned"),
		Bucket:    getEnv("AWS_BUCKET", ""),
		Region:    getEnv("AWS_REGION", ""),
		AccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		Endpoint:  getEnv("STORAGE_ENDPOINT", ""),
		BasePath:  getEnv("STORAGE_BASE_PATH", ""),
	}, apiClient)
	if err != nil {
		log.Fatalf("存储初始化失败: %v", err)
	}

	// -------- 内存状态 --------
	wizardStore := wizard.NewStore(2 * time.Hour)
	sessionManager := service.NewSessionManager()
	submitLimiter := middleware.NewSubmitLimiter(0.5, 2)

	// -------- 业务服务 --------
	services := &Services{Storage: storage}
	services.Auth = service.NewAuthService(apiClient, sessionManager, repos.SysUser,
		getEnv("GLOBASSETS_SVC_EMAIL", ""),
		getEnv("GLOBASSETS_SVC_PASSWORD", ""),
	)
	services.Wizard = service.NewWizardService(wizardStore, apiClient, storage, repos.SubmissionLog)
	services.Property = service.NewPropertyService(apiClient)
	services.Catalog = service.NewCatalogService(apiClient, repos.Catalog)
	services.Profile = service.NewProfileService(apiClient, storage)
	services.Admin = service.NewAdminService(apiClient, repos.SysUser)

	// 兜底创建后台管理员账号
	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := services.Auth.EnsureOperator(ctx,
			getEnv("ADMIN_USERNAME", ""),
			getEnv("ADMIN_PASSWORD", ""),
			model.SysRoleAdmin,
		); err != nil {
			log.Printf("警告: 管理员账号初始化失败: %v", err)
		}
		cancel()
	}

	// -------- Controller 层 --------
	controllers := &Controllers{
		Auth:     controller.NewAuthController(services.Auth),
		Wizard:   controller.NewWizardController(services.Wizard, services.Auth),
		Property: controller.NewPropertyController(services.Property, services.Auth),
		Catalog:  controller.NewCatalogController(services.Catalog, services.Auth),
		Profile:  controller.NewProfileController(services.Profile, services.Auth),
		Admin:    controller.NewAdminController(services.Admin, services.Wizard, services.Auth),
	}

	return &Dependencies{
		DB:            db,
		Repos:         repos,
		Services:      services,
		Controllers:   controllers,
		WizardStore:   wizardStore,
		SubmitLimiter: submitLimiter,
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) *task.TaskManager {
	tm := task.NewTaskManager(&task.TaskManagerDeps{
		CatalogService: deps.Services.Catalog,
		AuthService:    deps.Services.Auth,
		WizardStore:    deps.WizardStore,
		SubmitLimiter:  deps.SubmitLimiter,
	}, nil)
	tm.Start()
	return tm
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
