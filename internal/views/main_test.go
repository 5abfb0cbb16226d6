package views

import (
	"image"
	"io"
	"testing"

	"kids-screentime/internal/charts"
	"kids-screentime/internal/logger"
	"kids-screentime/internal/reports"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestView(t *testing.T) (*MainView, fyne.App) {
	t.Helper()
	a := test.NewTempApp(t)
	w := a.NewWindow(WindowTitle)
	t.Cleanup(w.Close)
	return NewMainView(a, w, logger.NewNop()), a
}

func TestMainView_Captions(t *testing.T) {
	v, _ := newTestView(t)

	assert.Equal(t, "📂 Load Screentime CSV", v.loadButton.Text)
	want := map[reports.ID]string{
		reports.BasicStats:         "📊 Show Basic Stats",
		reports.DeviceDistribution: "📱 Device Usage Chart",
		reports.GenderDistribution: "🚻 Gender Distribution Chart",
		reports.ScreenTimeByAge:    "📈 Screen Time by Age",
		reports.Correlation:        "🔍 Correlation Analysis",
	}
	require.Len(t, v.reportButtons, len(want))
	for id, caption := range want {
		assert.Equal(t, caption, v.reportButtons[id].Text)
	}
	assert.Len(t, ReportCaptions, len(reports.All()))
	assert.Equal(t, WindowTitle, v.GetWindow().Title())
}

func TestMainView_ButtonsDispatch(t *testing.T) {
	v, _ := newTestView(t)

	loads := 0
	v.SetLoadHandler(func() { loads++ })
	ran := map[reports.ID]int{}
	for _, rc := range ReportCaptions {
		id := rc.ID
		v.SetReportHandler(id, func() { ran[id]++ })
	}

	test.Tap(v.loadButton)
	test.Tap(v.loadButton)
	for _, rc := range ReportCaptions {
		test.Tap(v.reportButtons[rc.ID])
	}

	assert.Equal(t, 2, loads)
	for _, rc := range ReportCaptions {
		assert.Equal(t, 1, ran[rc.ID], "report %d", rc.ID)
	}
}

func TestMainView_TapWithoutHandlers(t *testing.T) {
	v, _ := newTestView(t)

	assert.NotPanics(t, func() {
		test.Tap(v.loadButton)
		test.Tap(v.reportButtons[reports.Correlation])
	})
}

func TestMainView_LocalLoadHandler(t *testing.T) {
	v, _ := newTestView(t)

	var got string
	v.SetLocalLoadHandler(func(source string, r io.ReadCloser) { got = source })
	v.localLoadHandler("/tmp/kids.csv", nil)

	assert.Equal(t, "/tmp/kids.csv", got)
}

func TestMainView_StatusAndDialogs(t *testing.T) {
	v, _ := newTestView(t)

	v.SetStatus("2 records loaded from test")
	assert.Equal(t, "2 records loaded from test", v.statusBar.GetStatus())

	v.ShowWarning("Warning", "Load a CSV file first!")
	assert.NotNil(t, v.window.Canvas().Overlays().Top())

	assert.NotPanics(t, func() {
		v.ShowInfo("Basic Statistics", "Total Records: 2")
		v.ShowError("Error", "Missing column: Age")
	})
}

func TestMainView_ChartWindows(t *testing.T) {
	v, a := newTestView(t)
	before := len(a.Driver().AllWindows())

	v.ShowChart(&charts.Chart{Title: "Gender Distribution", Image: image.NewRGBA(image.Rect(0, 0, 64, 48))})
	v.ShowChart(&charts.Chart{Title: "Correlation Heatmap", Image: image.NewRGBA(image.Rect(0, 0, 80, 60))})

	assert.Len(t, v.chartWindows, 2)
	assert.Equal(t, "2 charts open", v.statusBar.GetChartInfo())
	assert.Equal(t, before+2, len(a.Driver().AllWindows()))

	v.Shutdown()
	assert.Empty(t, v.chartWindows)
	assert.Equal(t, "No charts open", v.statusBar.GetChartInfo())
}

func TestChartFileName(t *testing.T) {
	assert.Equal(t, "primary_device_usage.png", ChartFileName("Primary Device Usage"))
	assert.Equal(t, "average_screen_time_by_age.png", ChartFileName("  Average Screen  Time by Age "))
	assert.Equal(t, "chart.png", ChartFileName(""))
}
