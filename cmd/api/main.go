package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/oficinaplus/oficina-api/internal/cache"
	"github.com/oficinaplus/oficina-api/internal/config"
	"github.com/oficinaplus/oficina-api/internal/db"
	"github.com/oficinaplus/oficina-api/internal/middleware"
	"github.com/oficinaplus/oficina-api/internal/routes"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	database := db.NewDB(cfg)
	rdb := cache.NewRedis(cfg)

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())
	r.LoadHTMLGlob("web/templates/*.html")
	r.Static("/static", "./web/static")

	routes.RegisterRoutes(r, database, rdb, cfg)

	log.Printf("listening on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
