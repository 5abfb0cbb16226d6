package views

import (
	"errors"
	"image/png"
	"io"
	"strings"

	"kids-screentime/internal/charts"
	"kids-screentime/internal/logger"
	"kids-screentime/internal/reports"
	"kids-screentime/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const (
	WindowTitle = "Indian Kids Screentime 2025"

	LoadCaption = "📂 Load Screentime CSV"
)

// ReportCaptions holds the button caption of each report, in display order.
var ReportCaptions = []struct {
	ID      reports.ID
	Caption string
}{
	{reports.BasicStats, "📊 Show Basic Stats"},
	{reports.DeviceDistribution, "📱 Device Usage Chart"},
	{reports.GenderDistribution, "🚻 Gender Distribution Chart"},
	{reports.ScreenTimeByAge, "📈 Screen Time by Age"},
	{reports.Correlation, "🔍 Correlation Analysis"},
}

const buttonWidth = 320

// MainView is the single application window: a stack of action buttons and a
// status line.
type MainView struct {
	app    fyne.App
	window fyne.Window
	logger logger.Logger

	mainContainer *fyne.Container
	loadButton    *widget.Button
	reportButtons map[reports.ID]*widget.Button
	statusBar     *components.StatusBar
	chartWindows  []fyne.Window

	// Event handlers - connected to controller
	loadHandler      func()
	localLoadHandler func(source string, r io.ReadCloser)
	reportHandlers   map[reports.ID]func()
}

// NewMainView builds the window content and menu.
func NewMainView(app fyne.App, window fyne.Window, log logger.Logger) *MainView {
	view := &MainView{
		app:            app,
		window:         window,
		logger:         log,
		reportButtons:  make(map[reports.ID]*widget.Button),
		reportHandlers: make(map[reports.ID]func()),
	}

	view.initializeComponents()
	view.buildLayout()
	view.setupMenus()

	return view
}

func (mv *MainView) initializeComponents() {
	mv.loadButton = widget.NewButton(LoadCaption, func() {
		if mv.loadHandler != nil {
			mv.loadHandler()
		}
	})

	for _, rc := range ReportCaptions {
		id := rc.ID
		mv.reportButtons[id] = widget.NewButton(rc.Caption, func() {
			if handler := mv.reportHandlers[id]; handler != nil {
				handler()
			}
		})
	}

	mv.statusBar = components.NewStatusBar("")
}

func (mv *MainView) buildLayout() {
	stack := container.NewVBox(mv.fixedWidth(mv.loadButton))
	for _, rc := range ReportCaptions {
		stack.Add(mv.fixedWidth(mv.reportButtons[rc.ID]))
	}

	mv.mainContainer = container.NewBorder(
		nil,
		mv.statusBar.GetContainer(),
		nil,
		nil,
		container.NewCenter(stack),
	)
	mv.window.SetContent(mv.mainContainer)
}

func (mv *MainView) fixedWidth(b *widget.Button) fyne.CanvasObject {
	return container.NewGridWrap(fyne.NewSize(buttonWidth, b.MinSize().Height), b)
}

func (mv *MainView) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Local CSV…", mv.showFileOpen),
		fyne.NewMenuItem("Load Remote Dataset", func() {
			if mv.loadHandler != nil {
				mv.loadHandler()
			}
		}),
	)
	mv.window.SetMainMenu(fyne.NewMainMenu(fileMenu))
}

func (mv *MainView) showFileOpen() {
	open := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			mv.ShowError("Error", err.Error())
			return
		}
		if reader == nil {
			return
		}
		if mv.localLoadHandler == nil {
			reader.Close()
			return
		}
		mv.localLoadHandler(reader.URI().Path(), reader)
	}, mv.window)
	open.SetFilter(storage.NewExtensionFileFilter([]string{".csv"}))
	open.Show()
}

// Event handler setters - called by controller

// SetLoadHandler sets the handler for the load button
func (mv *MainView) SetLoadHandler(handler func()) {
	mv.loadHandler = handler
}

// SetLocalLoadHandler sets the handler for files picked from disk
func (mv *MainView) SetLocalLoadHandler(handler func(source string, r io.ReadCloser)) {
	mv.localLoadHandler = handler
}

// SetReportHandler sets the handler for one report button
func (mv *MainView) SetReportHandler(id reports.ID, handler func()) {
	mv.reportHandlers[id] = handler
}

// UI update methods - called by controller

// ShowInfo displays an information dialog
func (mv *MainView) ShowInfo(title, message string) {
	dialog.ShowInformation(title, message, mv.window)
}

// ShowWarning displays a warning dialog
func (mv *MainView) ShowWarning(title, message string) {
	dialog.ShowInformation(title, message, mv.window)
}

// ShowError displays an error dialog
func (mv *MainView) ShowError(title, message string) {
	d := dialog.NewError(errors.New(message), mv.window)
	d.Show()
}

// SetStatus updates the status line
func (mv *MainView) SetStatus(status string) {
	mv.statusBar.SetStatus(status)
}

// ShowChart opens the chart in its own window.
func (mv *MainView) ShowChart(chart *charts.Chart) {
	w := mv.app.NewWindow(chart.Title)

	img := canvas.NewImageFromImage(chart.Image)
	img.FillMode = canvas.ImageFillContain
	width, height := chart.Size()
	img.SetMinSize(fyne.NewSize(float32(width)/2, float32(height)/2))

	save := widget.NewButton("Save PNG…", func() {
		mv.exportChartPNG(w, chart)
	})

	w.SetContent(container.NewBorder(nil, container.NewHBox(layout.NewSpacer(), save), nil, nil, img))
	w.Resize(fyne.NewSize(float32(width), float32(height)+save.MinSize().Height))
	w.SetOnClosed(func() { mv.forgetChartWindow(w) })

	mv.chartWindows = append(mv.chartWindows, w)
	mv.statusBar.SetChartCount(len(mv.chartWindows))
	w.Show()

	mv.logger.Debug("View", "chart window opened", map[string]interface{}{
		"title":  chart.Title,
		"width":  width,
		"height": height,
	})
}

func (mv *MainView) exportChartPNG(parent fyne.Window, chart *charts.Chart) {
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := png.Encode(wc, chart.Image); err != nil {
			mv.logger.Error("View", err, map[string]interface{}{"title": chart.Title})
			dialog.ShowError(err, parent)
		}
	}, parent)
	fs.SetFileName(ChartFileName(chart.Title))
	fs.Show()
}

func (mv *MainView) forgetChartWindow(w fyne.Window) {
	for i, cw := range mv.chartWindows {
		if cw == w {
			mv.chartWindows = append(mv.chartWindows[:i], mv.chartWindows[i+1:]...)
			mv.statusBar.SetChartCount(len(mv.chartWindows))
			return
		}
	}
}

// ChartFileName turns a chart title into a default PNG file name.
func ChartFileName(title string) string {
	name := strings.ToLower(strings.TrimSpace(title))
	name = strings.Join(strings.Fields(name), "_")
	if name == "" {
		name = "chart"
	}
	return name + ".png"
}

// Show displays the view
func (mv *MainView) Show() {
	mv.window.Show()
}

// Shutdown closes any chart windows still open. Must run on the Fyne thread.
func (mv *MainView) Shutdown() {
	windows := append([]fyne.Window(nil), mv.chartWindows...)
	for _, w := range windows {
		w.Close()
	}
	mv.chartWindows = nil
	mv.statusBar.SetChartCount(0)
}

// GetWindow returns the main window
func (mv *MainView) GetWindow() fyne.Window {
	return mv.window
}
