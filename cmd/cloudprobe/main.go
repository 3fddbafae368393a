package main

import (
	"fmt"
	"os"

	"github.com/SIDx15/CloudProbe/internal/adapter/driven/config"
	"github.com/SIDx15/CloudProbe/internal/adapter/driven/export"
	"github.com/SIDx15/CloudProbe/internal/adapter/driven/gcp"
	"github.com/SIDx15/CloudProbe/internal/adapter/driven/llm"
	"github.com/SIDx15/CloudProbe/internal/adapter/driving/cli"
	"github.com/SIDx15/CloudProbe/internal/application/usecase"
	"github.com/SIDx15/CloudProbe/pkg/console"
	"github.com/SIDx15/CloudProbe/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// Inicializa os repositórios
	gcpRepo := gcp.NewGCPRepository()
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	// Inicializa o caso de uso
	probeUseCase := usecase.NewProbeUseCase(
		gcpRepo,
		exportRepo,
		configRepo,
		consoleImpl,
		llm.NewLLMRepository,
	)

	// Define o caso de uso no aplicativo CLI
	app.SetProbeUseCase(probeUseCase)

	// Executa o aplicativo
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
