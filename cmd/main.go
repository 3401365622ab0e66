package main

import (
	"os"

	"safebaby/config"
	"safebaby/logger"
	"safebaby/routes"
	"safebaby/utils"
)

func main() {
	logger.Init()
	defer logger.Close()

	config.InitDB()
	utils.InitS3()
	utils.InitMailer()

	r := routes.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		logger.Fatal("server exited: " + err.Error())
	}
}
