package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/SIDx15/CloudProbe/pkg/version"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
         /$$$$$$  /$$                           /$$ /$$$$$$$                     /$$
        /$$__  $$| $$                          | $$| $$__  $$                   | $$
       | $$  \__/| $$  /$$$$$$  /$$   /$$  /$$$$$$$| $$  \ $$ /$$$$$$   /$$$$$$ | $$$$$$$   /$$$$$$
       | $$      | $$ /$$__  $$| $$  | $$ /$$__  $$| $$$$$$$//$$__  $$ /$$__  $$| $$__  $$ /$$__  $$
       | $$      | $$| $$  \ $$| $$  | $$| $$  | $$| $$____/| $$  \__/| $$  \ $$| $$  \ $$| $$$$$$$$
       | $$    $$| $$| $$  | $$| $$  | $$| $$  | $$| $$     | $$      | $$  | $$| $$  | $$| $$_____/
       |  $$$$$$/| $$|  $$$$$$/|  $$$$$$/|  $$$$$$$| $$     | $$      |  $$$$$$/| $$$$$$$/|  $$$$$$$
        \______/ |__/ \______/  \______/  \_______/|__/     |__/       \______/ |_______/  \_______/
       `
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()
	green := color.New(color.FgGreen, color.Bold).SprintFunc()

	fmt.Println(blue(banner))

	// Obtem a string formatada da versão através do pacote version
	formattedVersion := version.FormatVersion()
	fmt.Println(green(fmt.Sprintf("CloudProbe - GCP Logging Assistant (v%s)", formattedVersion)))
}
