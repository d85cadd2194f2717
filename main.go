package main

import (
	"github.com/facet-unt/departamentos-api/app"
	"github.com/facet-unt/departamentos-api/utils/logger"
	"go.uber.org/zap"
)

func main() {
	// setup and run app
	if err := app.SetupAndRunServer(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
