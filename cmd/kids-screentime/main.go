package main

import (
	"log"
	"net/http"
	"os"
	"runtime"
	"time"

	"kids-screentime/internal/config"
	"kids-screentime/internal/controllers"
	"kids-screentime/internal/logger"
	"kids-screentime/internal/models"
	"kids-screentime/internal/services"
	"kids-screentime/internal/shutdown"
	"kids-screentime/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const (
	AppID      = "org.screentime.kids-explorer"
	AppVersion = "1.0.0"
)

// Application wires configuration, the dataset layer and the Fyne shell.
type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	logger  logger.Logger
	config  *config.Config

	controller *controllers.MainController
	view       *views.MainView

	datasetService *services.DatasetService
	repository     *models.DatasetRepository

	shutdown *shutdown.Manager
}

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("Configuration failed: %v", err)
	}

	application := NewApplication(cfg)

	stopListening := application.shutdown.Listen(func(os.Signal) {
		application.shutdown.Shutdown()
		fyne.Do(func() {
			application.view.Shutdown()
			application.fyneApp.Quit()
		})
	})
	defer stopListening()

	application.Run()
	application.logger.Info("Application", "terminated", nil)
}

// NewApplication creates and wires every component.
func NewApplication(cfg *config.Config) *Application {
	appLogger := newLogger(cfg.Log)

	fyneApp := app.NewWithID(AppID)
	app.SetMetadata(fyne.AppMetadata{
		ID:      AppID,
		Name:    views.WindowTitle,
		Version: AppVersion,
	})

	window := fyneApp.NewWindow(views.WindowTitle)
	window.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))
	window.CenterOnScreen()
	window.SetMaster()

	appLogger.Info("Application", "starting", map[string]interface{}{
		"version":     AppVersion,
		"go_version":  runtime.Version(),
		"dataset_url": cfg.Dataset.URL,
		"timeout":     cfg.Fetch.Timeout.String(),
		"log_level":   cfg.Log.Level,
	})

	shutdownMgr := shutdown.NewManager(appLogger)

	repository := models.NewDatasetRepository()
	client := &http.Client{Timeout: cfg.Fetch.Timeout}
	datasetService := services.NewDatasetService(repository, client, cfg.Dataset.URL, cfg.Fetch.Timeout, appLogger)

	controller := controllers.NewMainController(shutdownMgr.Context(), datasetService, repository, appLogger)
	view := views.NewMainView(fyneApp, window, appLogger)
	controller.SetMainView(view)

	shutdownMgr.Register("repository", repository)
	shutdownMgr.Register("controller", controller)

	application := &Application{
		fyneApp:        fyneApp,
		window:         window,
		logger:         appLogger,
		config:         cfg,
		controller:     controller,
		view:           view,
		datasetService: datasetService,
		repository:     repository,
		shutdown:       shutdownMgr,
	}
	application.setupWindowEvents()

	return application
}

// Run shows the window and blocks in the Fyne event loop.
func (a *Application) Run() {
	a.view.Show()
	go a.startStateMonitoring()
	a.fyneApp.Run()
}

func (a *Application) setupWindowEvents() {
	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "window close requested", nil)
		a.view.Shutdown()
		a.shutdown.Shutdown()
		a.window.Close()
	})
}

// startStateMonitoring periodically logs dataset and runtime state.
func (a *Application) startStateMonitoring() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	ctx := a.shutdown.Context()
	for {
		select {
		case <-ticker.C:
			a.logState()
		case <-ctx.Done():
			return
		}
	}
}

func (a *Application) logState() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	state := a.controller.GetApplicationState()
	a.logger.Debug("Application", "state", map[string]interface{}{
		"has_data":        state.HasData,
		"records":         state.Records,
		"loads":           state.Loads,
		"source":          state.Source,
		"go_memory_mb":    memStats.Alloc / 1024 / 1024,
		"goroutine_count": runtime.NumGoroutine(),
	})
}

func newLogger(cfg config.LogConfig) logger.Logger {
	level := logger.ParseLevel(cfg.Level)

	base := logger.NewConsoleLogger(level)
	if cfg.JSON {
		base = logger.NewJSONLogger(level)
	}
	return base.WithContext(map[string]interface{}{
		"app":     AppID,
		"version": AppVersion,
	})
}
