package handlers

import (
	"time"

	"github.com/finledger/ledger-backend/internal/core/domain"
	portssvc "github.com/finledger/ledger-backend/internal/core/ports/services"
	"github.com/finledger/ledger-backend/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using
// interfaces.
func RegisterRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	registerCustomValidations()

	r.Use(cors.Default())

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	rate := limiter.Rate{Period: time.Minute, Limit: 300}
	limiterInstance := limiter.New(memory.NewStore(), rate)

	// Every ledger operation is tenant-scoped; the tenant middleware rejects
	// requests the upstream gateway did not annotate.
	v1 := r.Group("/api/v1",
		middleware.RateLimit(limiterInstance),
		middleware.TenantContextMiddleware(),
	)

	registerAccountRoutes(v1, services.Account)
	registerJournalRoutes(v1, services.Posting)
}

// registerCustomValidations wires the "accounttype" binding tag used by the
// account DTOs.
func registerCustomValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("accounttype", func(fl validator.FieldLevel) bool {
			return domain.AccountType(fl.Field().String()).Valid()
		})
	}
}
