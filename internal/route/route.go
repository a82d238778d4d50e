package route

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"terminal-terrace/exercise-service/config"
	_ "terminal-terrace/exercise-service/docs"
	"terminal-terrace/exercise-service/internal/auth"
	"terminal-terrace/exercise-service/internal/exercise"
	"terminal-terrace/exercise-service/internal/login"
	"terminal-terrace/exercise-service/internal/me"
	"terminal-terrace/exercise-service/internal/register"
	"terminal-terrace/exercise-service/internal/user"
	"terminal-terrace/exercise-service/internal/validate"
)

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

func initRoute(r *gin.Engine, db *gorm.DB, authService *auth.AuthService, users *user.UserService, conf *config.AppConfig) {
	// Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		register.RegisterRoutes(authGroup, users)
		login.RegisterRoutes(authGroup, authService, conf.JWT.TokenTTL())
		me.RegisterRoutes(authGroup, authService)

		validate.RegisterRoutes(apiV1.Group("/validate"), users)

		exercise.RegisterRoutes(apiV1, db, authService)
	}
}

// SetupRouter 组装路由；签名密钥缺失时返回错误
func SetupRouter(db *gorm.DB, conf *config.AppConfig) (*gin.Engine, error) {
	tokens, err := auth.NewTokenManager(conf.JWT.Secret)
	if err != nil {
		return nil, err
	}
	users := user.NewUserService(db)
	authService := auth.NewAuthService(users, tokens, conf.JWT.TokenTTL())

	if conf.Server.Mode != "" {
		gin.SetMode(conf.Server.Mode)
	}
	r := gin.Default()

	allowedOrigins := conf.Server.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = defaultOrigins
	}

	// 设置跨域请求
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	initRoute(r, db, authService, users, conf)

	return r, nil
}
