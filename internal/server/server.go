// Package server is the HTTP surface of the engine: thin gin handlers over
// the domain services, plus health and metrics endpoints.
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/edupointlabs/edupoint/internal/config"
	"github.com/edupointlabs/edupoint/internal/observability"

	contractdomain "github.com/edupointlabs/edupoint/internal/contract/domain"
	enrollmentdomain "github.com/edupointlabs/edupoint/internal/enrollment/domain"
	payrolldomain "github.com/edupointlabs/edupoint/internal/payroll/domain"
	ratedomain "github.com/edupointlabs/edupoint/internal/rateconfig/domain"
	rosterdomain "github.com/edupointlabs/edupoint/internal/roster/domain"
	studentdomain "github.com/edupointlabs/edupoint/internal/student/domain"
	wsdomain "github.com/edupointlabs/edupoint/internal/worksession/domain"
)

type Server struct {
	engine *gin.Engine
	log    *zap.Logger
	cfg    *config.Config

	contractSvc contractdomain.Service
	studentSvc  studentdomain.Service
	rosterSvc   rosterdomain.Service
	wsSvc       wsdomain.Service
	payrollSvc  payrolldomain.Service
	rateSvc     ratedomain.Service
	enrollSvc   enrollmentdomain.Service
	metrics     *observability.Metrics
}

type ServerParam struct {
	fx.In

	Engine  *gin.Engine
	Log     *zap.Logger
	Config  *config.Config
	Metrics *observability.Metrics

	ContractSvc contractdomain.Service
	StudentSvc  studentdomain.Service
	RosterSvc   rosterdomain.Service
	WSSvc       wsdomain.Service
	PayrollSvc  payrolldomain.Service
	RateSvc     ratedomain.Service
	EnrollSvc   enrollmentdomain.Service
}

func NewEngine(cfg *config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	return engine
}

func NewServer(p ServerParam) *Server {
	return &Server{
		engine: p.Engine,
		log:    p.Log.Named("server"),
		cfg:    p.Config,

		contractSvc: p.ContractSvc,
		studentSvc:  p.StudentSvc,
		rosterSvc:   p.RosterSvc,
		wsSvc:       p.WSSvc,
		payrollSvc:  p.PayrollSvc,
		rateSvc:     p.RateSvc,
		enrollSvc:   p.EnrollSvc,
		metrics:     p.Metrics,
	}
}

func (s *Server) RegisterRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})))

	api := s.engine.Group("/api")

	api.POST("/contracts", s.CreateContract)
	api.GET("/contracts", s.ListContracts)
	api.GET("/contracts/:id", s.GetContract)
	api.POST("/contracts/:id/status", s.UpdateContractStatus)

	api.POST("/students", s.RegisterStudent)
	api.GET("/students", s.ListStudents)
	api.GET("/students/:id", s.GetStudent)
	api.GET("/students/:id/classification", s.ClassifyStudent)
	api.POST("/students/:id/attendance", s.RecordAttendance)
	api.POST("/students/:id/payment-date", s.SetNextPaymentDate)
	api.POST("/students/:id/contract-payment", s.RecordContractPayment)
	api.GET("/students/:id/enrollments", s.EnrollmentHistory)
	api.POST("/enrollments/adjust", s.AdjustEnrollment)

	api.GET("/roster", s.RosterAll)
	api.GET("/classes/:id/roster", s.ClassRoster)

	api.POST("/work-sessions", s.CreateWorkSession)
	api.GET("/work-sessions", s.ListWorkSessions)
	api.POST("/work-sessions/:id/confirm", s.ConfirmWorkSession)
	api.POST("/work-sessions/:id/reject", s.RejectWorkSession)
	api.POST("/work-sessions/confirm-all", s.ConfirmAllWorkSessions)
	api.PATCH("/work-sessions/:id", s.CorrectWorkSession)

	api.GET("/payroll/summary", s.PayrollSummary)

	api.POST("/salary-rules", s.CreateSalaryRule)
	api.GET("/staff/:id/salary-rules", s.ListSalaryRules)
	api.GET("/rate-tiers/:type", s.ListRateTiers)
	api.PUT("/rate-tiers/:type", s.ReplaceRateTiers)
}

// RunHTTP starts the listener under the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, s *Server) {
	srv := &http.Server{Addr: s.cfg.Addr, Handler: s.engine}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.log.Info("http server starting", zap.String("addr", s.cfg.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					s.log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
