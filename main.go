package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/sirupsen/logrus"

	"github.com/ytget/img2png/internal/config"
	"github.com/ytget/img2png/internal/platform"
	"github.com/ytget/img2png/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.img2png"
	AppName = "Image URL to PNG Converter"

	WindowWidth  = 640
	WindowHeight = 480
)

func main() {
	fmt.Printf("img2png v%s starting...\n", version)

	log := logrus.WithField("version", version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewOceanTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	settings := config.NewSettings(myApp)
	if err := platform.CreateDirectoryIfNotExists(settings.GetDownloadDirectory()); err != nil {
		log.WithError(err).Warn("Output directory not available yet")
	}

	ui.NewRootUI(myWindow, myApp, log)

	myWindow.ShowAndRun()
}
