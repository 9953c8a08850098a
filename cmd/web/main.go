package main

import (
	"kalavpp_backend/internal/app"
	"kalavpp_backend/internal/logger"
)

func main() {
	if err := app.Run(); err != nil {
		logger.Fatal("server exited with error", "error", err.Error())
	}
}
