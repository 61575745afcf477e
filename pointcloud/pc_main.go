package main

import (
	"flag"
	"os"
	"runtime"

	"github.com/gekko3d/cloudview"
	"github.com/gekko3d/cloudview/pointcloud/pc/app"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	os.Exit(run())
}

// run returns the process exit code: 0 after a clean shutdown, -1 when
// startup fails.
func run() int {
	configPath := flag.String("config", "", "TOML config file, reloaded on change")
	debug := flag.Bool("debug", false, "Enable debug logging and HUD timings")
	flag.Parse()

	logger := cloudview.NewDefaultLogger("pointcloud", *debug)

	settings := cloudview.DefaultConfig()
	if *configPath != "" {
		var err error
		settings, err = cloudview.LoadConfig(*configPath)
		if err != nil {
			logger.Errorf("%v", err)
			return -1
		}
	}
	if *debug {
		settings.Debug = true
	}
	logger.SetDebug(settings.Debug)

	window, err := cloudview.CreateWindow(settings.Window.Width, settings.Window.Height, settings.Window.Title)
	if err != nil {
		logger.Errorf("%v", err)
		return -1
	}

	application := app.NewApp(settings, logger)
	application.Window = window
	if err := application.Init(); err != nil {
		logger.Errorf("init: %v", err)
		application.Close()
		return -1
	}

	if *configPath != "" {
		application.Watcher, err = cloudview.WatchConfig(*configPath, logger)
		if err != nil {
			logger.Warnf("config changes will not be picked up: %v", err)
		}
	}

	application.Run()
	return 0
}
