package main

import (
	"os"

	"wp-lite/pkg/config"
	app "wp-lite/services/generator/internal/app"

	_ "wp-lite/services/generator/docs" // Swagger docs
)

// @title           Generator Service API
// @version         1.0
// @description     AI content and header image generation for the WP Lite CMS editor
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8003
// @BasePath  /functions/v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if os.Getenv("SERVER_PORT") == "" {
		cfg.ServerPort = "8003"
	}

	// OpenAI and storage credentials are read per request, not here.
	application, err := app.NewApp(cfg)
	if err != nil {
		panic(err)
	}

	if err := application.Run(); err != nil {
		panic(err)
	}

	application.Wait()

	if err := application.Shutdown(); err != nil {
		panic(err)
	}
}
