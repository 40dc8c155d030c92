package bootstrap

import (
	"database/sql"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/gigflow/gigflow-backend/config"
	httpapi "github.com/gigflow/gigflow-backend/internal/api/http"
	apimw "github.com/gigflow/gigflow-backend/internal/api/http/middleware"
	authhttp "github.com/gigflow/gigflow-backend/internal/auth/http"
	authmw "github.com/gigflow/gigflow-backend/internal/auth/middleware"
	"github.com/gigflow/gigflow-backend/internal/auth/revocation"
	"github.com/gigflow/gigflow-backend/internal/auth/token"
	"github.com/gigflow/gigflow-backend/internal/categories"
	projecthttp "github.com/gigflow/gigflow-backend/internal/projects/http"
	projectrepo "github.com/gigflow/gigflow-backend/internal/projects/repository"
	projectservice "github.com/gigflow/gigflow-backend/internal/projects/service"
	"github.com/gigflow/gigflow-backend/internal/samplework"
	"github.com/gigflow/gigflow-backend/internal/skills"
	userhttp "github.com/gigflow/gigflow-backend/internal/users/http"
	userrepo "github.com/gigflow/gigflow-backend/internal/users/repository"
	userservice "github.com/gigflow/gigflow-backend/internal/users/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Config      *config.Config
	DB          *sql.DB
	Redis       *redis.Client
	Issuer      *token.Issuer
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), apimw.RequestID())
	r.Use(cors.New(corsConfig(dep.Config.Server.CORSOrigins)))

	httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis).RegisterRoutes(r)

	userSvc := userservice.NewUserService(userrepo.NewUserRepository(dep.DB))

	// Both stay untyped nil without Redis so the handlers can tell.
	var (
		revChecker authmw.RevocationChecker
		revoker    authhttp.Revoker
	)
	if dep.Redis != nil {
		store := revocation.NewStore(dep.Redis)
		revChecker, revoker = store, store
	}

	api := r.Group("/api/v1")
	api.Use(authmw.Authenticate(dep.Issuer, revChecker, userSvc))

	limiter := apimw.NewIPRateLimiter(dep.Config.Auth.LoginRateLimit, dep.Config.Auth.LoginBurst)
	authhttp.New(dep.Issuer, revoker, userSvc, userSvc).Register(api.Group("/auth"), limiter.Middleware())

	categorySvc := categories.NewService(
		categories.NewRepo(dep.DB),
		categories.NewCache(dep.Redis, dep.Config.Redis.CacheTTL),
	)
	categories.NewHandler(categorySvc).Register(api.Group("/categories", authmw.StaffOrReadOnly()))
	skills.NewHandler(skills.NewRepo(dep.DB)).Register(api.Group("/skills", authmw.StaffOrReadOnly()))

	userhttp.New(userSvc).Register(api.Group("/users"))

	projectSvc := projectservice.NewProjectService(projectrepo.NewProjectRepository(dep.DB))
	projecthttp.New(projectSvc).Register(api.Group("/projects"))

	samplework.NewHandler(samplework.NewService(samplework.NewRepo(dep.DB))).Register(api.Group("/sample-works"))

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", apimw.HeaderRequestID},
		ExposeHeaders: []string{apimw.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
