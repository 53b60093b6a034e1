package main

import (
	"os"

	"github.com/sahilchouksey/academic-portfolio/app"
	"github.com/sirupsen/logrus"
)

func main() {
	// setup and run app
	if err := app.SetupAndRunServer(); err != nil {
		logrus.WithError(err).Error("server stopped")
		os.Exit(1)
	}
}
