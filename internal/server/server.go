package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/collectra/internal/config"
	"github.com/smallbiznis/collectra/internal/customer"
	customerdomain "github.com/smallbiznis/collectra/internal/customer/domain"
	"github.com/smallbiznis/collectra/internal/debtwork"
	debtworkdomain "github.com/smallbiznis/collectra/internal/debtwork/domain"
	"github.com/smallbiznis/collectra/internal/invoice"
	invoicedomain "github.com/smallbiznis/collectra/internal/invoice/domain"
	"github.com/smallbiznis/collectra/internal/receivables"
	receivablesdomain "github.com/smallbiznis/collectra/internal/receivables/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	customer.Module,
	invoice.Module,
	debtwork.Module,
	receivables.Module,
	fx.Provide(NewHTTPMetrics),
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, log *zap.Logger, httpMetrics *HTTPMetrics) *gin.Engine {
	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log, RequestLoggerConfig{
		Debug:           cfg.IsDev(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(MetricsMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(cfg config.Config, log *zap.Logger, httpMetrics *HTTPMetrics) *gin.Engine {
	return NewEngine(cfg, log, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine         *gin.Engine
	cfg            config.Config
	customerSvc    customerdomain.Service
	invoiceSvc     invoicedomain.Service
	debtWorkSvc    debtworkdomain.Service
	receivablesSvc receivablesdomain.Service
}

type ServerParams struct {
	fx.In

	Engine         *gin.Engine
	Cfg            config.Config
	CustomerSvc    customerdomain.Service
	InvoiceSvc     invoicedomain.Service
	DebtWorkSvc    debtworkdomain.Service
	ReceivablesSvc receivablesdomain.Service
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:         p.Engine,
		cfg:            p.Cfg,
		customerSvc:    p.CustomerSvc,
		invoiceSvc:     p.InvoiceSvc,
		debtWorkSvc:    p.DebtWorkSvc,
		receivablesSvc: p.ReceivablesSvc,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")

	api.POST("/customers", s.CreateCustomer)
	api.GET("/customers", s.ListCustomers)
	api.GET("/customers/:customer_id", s.GetCustomer)
	api.PATCH("/customers/:customer_id", s.UpdateCustomer)
	api.DELETE("/customers/:customer_id", s.DeleteCustomer)

	api.POST("/customers/:customer_id/invoices", s.CreateInvoice)
	api.GET("/customers/:customer_id/invoices", s.ListInvoices)

	api.POST("/customers/:customer_id/debt-work", s.CreateDebtWorkRecord)
	api.GET("/customers/:customer_id/debt-work", s.GetDebtWorkHistory)
	api.GET("/customers/:customer_id/debt-work/:record_id", s.GetDebtWorkRecord)
	api.PATCH("/customers/:customer_id/debt-work/:record_id", s.UpdateDebtWorkRecord)
	api.DELETE("/customers/:customer_id/debt-work/:record_id", s.DeleteDebtWorkRecord)

	api.GET("/reports/aging", s.AgingReport)
}
