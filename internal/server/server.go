package server

import (
	"log/slog"
	"printwear-storefront/internal/handler"
	authmw "printwear-storefront/internal/middleware"
	"printwear-storefront/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo            *echo.Echo
	adminToken      string
	webhookHandler  *handler.WebhookHandler
	checkoutHandler *handler.CheckoutHandler
	productHandler  *handler.ProductHandler
	adminHandler    *handler.AdminHandler
	signupHandler   *handler.SignupHandler
}

func NewServer(
	fulfillmentService service.FulfillmentService,
	checkoutService service.CheckoutService,
	catalogService service.CatalogService,
	signupService service.SignupService,
	adminToken string,
	log *slog.Logger,
) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogMethod: true,
		LogURI:    true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"err", v.Error,
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:            e,
		adminToken:      adminToken,
		webhookHandler:  handler.NewWebhookHandler(fulfillmentService),
		checkoutHandler: handler.NewCheckoutHandler(checkoutService),
		productHandler:  handler.NewProductHandler(catalogService),
		adminHandler:    handler.NewAdminHandler(catalogService),
		signupHandler:   handler.NewSignupHandler(signupService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	api.GET("/products", s.productHandler.ListProducts)
	api.GET("/products/:slug", s.productHandler.GetProduct)
	api.POST("/checkout", s.checkoutHandler.CreateSession)
	api.POST("/email-signup", s.signupHandler.EmailSignup)

	// -------- stripe webhooks --------
	stripe := api.Group("/stripe")
	stripe.POST("/webhook", s.webhookHandler.StripeWebhook)

	// -------- admin --------
	admin := api.Group("/admin", authmw.AdminAuth(s.adminToken))
	admin.POST("/sync-products", s.adminHandler.SyncProducts)
	admin.GET("/shops", s.adminHandler.ListShops)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
