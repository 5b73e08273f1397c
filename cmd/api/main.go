package main

import (
	"os"

	"github.com/kerem/classora/internal/pkg/logger"
	"github.com/kerem/classora/internal/server"
)

// @title           Classora API
// @version         1.0
// @description     Academic catalog backend for departments, subjects, classes and enrollments.

// @contact.name   API Support
// @contact.email  support@classora.app

// @license.name  MIT

// @host      localhost:8080
// @BasePath  /api/v1
func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}
