package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"mockchat/api/middleware"
	"mockchat/api/routes"
	"mockchat/config"
	"mockchat/db"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	err := config.LoadConfig(configPath)
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	log.Println("Starting server...")

	database, err := db.Connect(&config.AppConfig)
	if err != nil {
		panic("Failed to connect to the database: " + err.Error())
	}

	if err := db.EnsureReservedAccounts(database); err != nil {
		panic("Failed to seed reserved accounts: " + err.Error())
	}

	router := gin.Default()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.PrometheusMiddleware("mockchat"))

	routes.PublicApi(router, database)

	addr := fmt.Sprintf("%s:%d", config.AppConfig.Backend.Host, config.AppConfig.Backend.Port)
	if config.AppConfig.Backend.Port == 0 {
		addr = ":8080"
	}
	if err := router.Run(addr); err != nil {
		panic(err)
	}
}
