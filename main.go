package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"droppoint-partner-api/internal/config"
	"droppoint-partner-api/internal/dal"
	"droppoint-partner-api/internal/handler"
	"droppoint-partner-api/internal/idgen"
	"droppoint-partner-api/internal/logger"
	"droppoint-partner-api/internal/middleware"
	"droppoint-partner-api/internal/mq"
)

func main() {
	// load config env
	config.Init()
	logger.Init()

	// init infra
	dal.InitMainDB()
	dal.InitRedis()
	dal.InitRabbitMQ()

	// idgen
	idgen.Init(1)

	// start consumers
	go mq.StartConsumers()

	// http server
	if config.C.Server.Mode != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Recover(), middleware.RequestLogger())

	ah := handler.NewAuthHandler()
	dh := handler.NewDashboardHandler()
	ph := handler.NewPortalHandler()
	ih := handler.NewInternalHandler()

	auth := r.Group("/auth")
	{
		auth.GET("/google", ah.GoogleLogin)
		auth.GET("/google/callback", ah.GoogleCallback)
	}

	v1 := r.Group("/api/v1")
	{
		v1.POST("/login", ah.Login)
		v1.POST("/logout", ah.Logout)

		// open onboarding application
		v1.POST("/hosting-requests", ph.CreateHostingRequest)

		p := v1.Group("", middleware.SessionAuth())
		{
			p.GET("/dashboard", dh.Dashboard)
			p.GET("/stats", dh.Stats)
			p.GET("/ledger/entries", dh.LedgerEntries)
			p.GET("/payouts", dh.Payouts)
			p.GET("/revenue/rules", dh.ActiveRules)
			p.GET("/revenue/rules/history", dh.RuleHistory)
			p.POST("/tickets", ph.CreateTicket)
			p.GET("/tickets", ph.ListTickets)
		}
	}

	internal := r.Group("/internal/v1", middleware.InternalAuth())
	{
		internal.POST("/ledger/entries", ih.AppendEntry)
		internal.PUT("/partners/:id/revenue-rules", ih.UpdateRules)
		internal.POST("/partners/:id/payouts/run", ih.RunPayout)
		internal.POST("/partners/:id/rent/accrue", ih.AccrueRent)
		internal.POST("/partners/:id/stats/recompute", ih.RecomputeStats)
		internal.GET("/partners/:id/stats/verify", ih.VerifyStats)
	}

	addr := ":" + config.C.Server.Port
	log.Printf("listening %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
