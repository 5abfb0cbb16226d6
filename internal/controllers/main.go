package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"kids-screentime/internal/analysis"
	"kids-screentime/internal/charts"
	"kids-screentime/internal/logger"
	"kids-screentime/internal/models"
	"kids-screentime/internal/reports"
	"kids-screentime/internal/services"
)

const (
	warningTitle      = "Warning"
	errorTitle        = "Error"
	successTitle      = "Success"
	noDataMessage     = "Load a CSV file first!"
	noNumericMessage  = "No numeric columns for correlation analysis."
	loadFailurePrefix = "Could not load dataset"
	noDatasetStatus   = "No dataset loaded"
)

// ErrNoDataLoaded is returned by report actions invoked before a successful load.
var ErrNoDataLoaded = errors.New("no dataset loaded")

// View is the surface the controller drives. The Fyne main view implements it.
type View interface {
	SetLoadHandler(handler func())
	SetLocalLoadHandler(handler func(source string, r io.ReadCloser))
	SetReportHandler(id reports.ID, handler func())

	ShowInfo(title, message string)
	ShowWarning(title, message string)
	ShowError(title, message string)
	ShowChart(chart *charts.Chart)
	SetStatus(status string)
}

// MainController owns the loaded dataset and dispatches the window's actions.
type MainController struct {
	ctx            context.Context
	datasetService *services.DatasetService
	repository     *models.DatasetRepository
	logger         logger.Logger

	mainView View

	// loads are serialized so a table is only ever swapped whole
	loadMu sync.Mutex
}

// NewMainController creates the controller. ctx bounds every fetch.
func NewMainController(ctx context.Context, ds *services.DatasetService, repo *models.DatasetRepository, log logger.Logger) *MainController {
	return &MainController{
		ctx:            ctx,
		datasetService: ds,
		repository:     repo,
		logger:         log,
	}
}

// SetMainView associates the view and wires its actions to this controller
func (mc *MainController) SetMainView(view View) {
	mc.mainView = view
	mc.setupViewEventHandlers()
	mc.mainView.SetStatus(noDatasetStatus)
}

func (mc *MainController) setupViewEventHandlers() {
	mc.mainView.SetLoadHandler(func() { _ = mc.LoadDataset() })
	mc.mainView.SetLocalLoadHandler(func(source string, r io.ReadCloser) { _ = mc.LoadLocal(source, r) })

	for _, rep := range reports.All() {
		id := rep.ID
		mc.mainView.SetReportHandler(id, func() { _ = mc.RunReport(id) })
	}
}

// LoadDataset fetches the remote dataset. It always attempts the fetch; a
// failure leaves the current table in place.
func (mc *MainController) LoadDataset() error {
	mc.loadMu.Lock()
	defer mc.loadMu.Unlock()

	mc.logger.Info("Controller", "load requested", map[string]interface{}{
		"source": mc.datasetService.RemoteURL(),
	})

	table, err := mc.datasetService.LoadRemote(mc.ctx)
	if err != nil {
		mc.mainView.ShowError(errorTitle, fmt.Sprintf("%s:\n%v", loadFailurePrefix, err))
		return err
	}

	mc.onLoaded(table, fmt.Sprintf("Dataset loaded from GitHub!\n%d records.", table.Len()))
	return nil
}

// LoadLocal parses a CSV chosen from disk. r is closed before returning.
func (mc *MainController) LoadLocal(source string, r io.ReadCloser) error {
	defer r.Close()

	mc.loadMu.Lock()
	defer mc.loadMu.Unlock()

	mc.logger.Info("Controller", "local load requested", map[string]interface{}{
		"source": source,
	})

	table, err := mc.datasetService.LoadReader(mc.ctx, source, r)
	if err != nil {
		mc.mainView.ShowError(errorTitle, fmt.Sprintf("%s:\n%v", loadFailurePrefix, err))
		return err
	}

	mc.onLoaded(table, fmt.Sprintf("Dataset loaded from %s!\n%d records.", source, table.Len()))
	return nil
}

func (mc *MainController) onLoaded(table *models.Table, message string) {
	mc.mainView.SetStatus(fmt.Sprintf("%d records loaded from %s", table.Len(), table.Source))
	mc.mainView.ShowInfo(successTitle, message)
}

// RunReport runs one report against the current table and presents the
// outcome. Without a table it only shows the load warning.
func (mc *MainController) RunReport(id reports.ID) error {
	rep, err := reports.Get(id)
	if err != nil {
		mc.logger.Error("Controller", err, nil)
		return err
	}

	table := mc.repository.GetTable()
	if table == nil {
		mc.logger.Warning("Controller", "report requested without data", map[string]interface{}{
			"report": rep.Name,
		})
		mc.mainView.ShowWarning(warningTitle, noDataMessage)
		return ErrNoDataLoaded
	}

	startTime := time.Now()
	result, err := rep.Execute(table)
	if err != nil {
		mc.logger.Error("Controller", err, map[string]interface{}{
			"report": rep.Name,
		})
		mc.mainView.ShowError(errorTitle, userMessage(rep, err))
		return err
	}

	mc.logger.Debug("Controller", "report completed", map[string]interface{}{
		"report":      rep.Name,
		"chart":       result.IsChart(),
		"duration_ms": time.Since(startTime).Milliseconds(),
	})

	if result.IsChart() {
		mc.mainView.ShowChart(result.Chart)
	} else {
		mc.mainView.ShowInfo(result.Title, result.Message)
	}
	return nil
}

// userMessage maps a report failure to the dialog text.
func userMessage(rep reports.Report, err error) string {
	var missing *analysis.MissingColumnError
	switch {
	case errors.As(err, &missing):
		return missing.Error()
	case errors.Is(err, analysis.ErrNoNumericColumns):
		return noNumericMessage
	default:
		return fmt.Sprintf("%s:\n%v", rep.FailurePrefix, err)
	}
}

// GetApplicationState returns a snapshot for logging and status display.
func (mc *MainController) GetApplicationState() ApplicationState {
	stats := mc.repository.GetStats()
	return ApplicationState{
		HasData:  stats.HasData,
		Source:   stats.Source,
		Records:  stats.Records,
		Loads:    stats.LoadCount,
		LastLoad: stats.LoadTime,
	}
}

// ApplicationState represents the current state of the application
type ApplicationState struct {
	HasData  bool
	Source   string
	Records  int
	Loads    int
	LastLoad time.Time
}

// Shutdown releases the loaded dataset.
func (mc *MainController) Shutdown() {
	mc.loadMu.Lock()
	defer mc.loadMu.Unlock()

	mc.repository.Shutdown()
	mc.logger.Info("Controller", "shutdown completed", nil)
}
