package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"globassets_dev_v1_202608/internal/controller"
	"globassets_dev_v1_202608/internal/middleware"
	"globassets_dev_v1_202608/internal/model"

	_ "globassets_dev_v1_202608/docs"
)

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine,
	authCtl *controller.AuthController,
	wizardCtl *controller.WizardController,
	propertyCtl *controller.PropertyController,
	catalogCtl *controller.CatalogController,
	profileCtl *controller.ProfileController,
	adminCtl *controller.AdminController,
	submitLimiter *middleware.SubmitLimiter) {

	// 1. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. 健康检查
	r.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 3. API 路由组
	api := r.Group("/api/v1")
	{
		// auth 鉴权组（开放接口）
		auth := api.Group("/auth")
		{
			auth.POST("/login", authCtl.Login)
			auth.POST("/register", authCtl.Register)
			auth.POST("/operator/login", authCtl.OperatorLogin)

			// 以下需要本服务 Token
			authed := auth.Group("", middleware.JWTAuth())
			{
				authed.POST("/logout", authCtl.Logout)
				authed.POST("/refresh-remote", authCtl.RefreshRemote)
			}
		}

		// 以下全部需要本服务 Token + 审计上下文
		authed := api.Group("", middleware.JWTAuth(), middleware.AuditContext())

		// wizard 挂牌向导
		wz := authed.Group("/wizard")
		{
			wz.POST("", wizardCtl.StartCreate)
			wz.POST("/edit", wizardCtl.StartEdit)
			wz.GET("/:id", wizardCtl.Get)
			wz.DELETE("/:id", wizardCtl.Abandon)
			wz.PATCH("/:id/form", wizardCtl.PatchForm)
			wz.POST("/:id/next", wizardCtl.Advance)
			wz.POST("/:id/back", wizardCtl.Retreat)
			wz.POST("/:id/images", wizardCtl.StageImages)
			wz.DELETE("/:id/images/:index", wizardCtl.UnstageImage)
			wz.POST("/:id/images/mark-delete", wizardCtl.MarkImageDelete)
			// 提交会触发一串远端调用，单会话限流
			wz.POST("/:id/submit", middleware.RateLimitSubmit(submitLimiter), wizardCtl.Submit)
		}

		// properties 房源
		props := authed.Group("/properties")
		{
			props.GET("", propertyCtl.Browse)
			props.GET("/mine", propertyCtl.MyProperties)
			props.GET("/owner/:username", propertyCtl.ByOwner)
			props.GET("/:id", propertyCtl.GetByID)
			props.DELETE("/:id", propertyCtl.Delete)
			props.PATCH("/:id/active", propertyCtl.ToggleActive)
			props.PATCH("/:id/verified", propertyCtl.ToggleVerified)
		}

		// catalog 目录
		catalog := authed.Group("/catalog")
		{
			catalog.GET("/states", catalogCtl.States)
			catalog.GET("/states/:state_id/regions", catalogCtl.Regions)
			catalog.POST("/regions", catalogCtl.CreateRegion)
			catalog.GET("/room-types", catalogCtl.RoomTypes)
			catalog.GET("/features", catalogCtl.Features)
		}

		// profile 主页与仪表盘
		profile := authed.Group("/profile")
		{
			profile.GET("", profileCtl.MyProfile)
			profile.POST("", profileCtl.CreateProfile)
			profile.PATCH("", profileCtl.UpdateProfile)
			profile.POST("/image", profileCtl.UploadProfileImage)
			profile.GET("/directory", profileCtl.Directory)
			profile.GET("/public/:username", profileCtl.PublicProfile)
			profile.GET("/dashboard", profileCtl.Dashboard)
		}

		// admin 后台（操作员/管理员角色）
		admin := authed.Group("/admin", middleware.RequireRole(model.SysRoleOperator, model.SysRoleAdmin))
		{
			admin.GET("/dashboard", adminCtl.DashboardOverview)
			admin.GET("/users", adminCtl.UserDashboard)
			admin.GET("/submissions", adminCtl.ListSubmissions)

			// 操作员账号管理仅管理员可用
			ops := admin.Group("/operators", middleware.RequireRole(model.SysRoleAdmin))
			{
				ops.GET("", adminCtl.ListOperators)
				ops.PATCH("/:id/status", adminCtl.SetOperatorStatus)
			}
		}
	}
}
