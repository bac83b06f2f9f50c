package main

import (
	"medibook/internal/gateway"
	"medibook/pkg/app"
	"medibook/pkg/config"
)

const serviceName = "gateway"

func main() {
	cfg := config.Load(serviceName)

	router, err := gateway.NewRouter(cfg)
	if err != nil {
		cfg.Log.Fatal("Failed to build gateway routes", "error", err)
	}

	application := app.NewApplication(cfg)
	application.SetGateway(router)
	application.Run()
}
