package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const noChartsText = "No charts open"

// StatusBar shows the dataset status and how many chart windows are open.
// Its methods must be called on the Fyne thread.
type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	chartInfo   *widget.Label
}

func NewStatusBar(initial string) *StatusBar {
	sb := &StatusBar{}
	sb.createComponents(initial)
	sb.buildLayout()
	return sb
}

func (sb *StatusBar) createComponents(initial string) {
	sb.statusLabel = widget.NewLabel(initial)
	sb.statusLabel.Truncation = fyne.TextTruncateEllipsis
	sb.chartInfo = widget.NewLabel(noChartsText)
}

func (sb *StatusBar) buildLayout() {
	sb.container = container.NewBorder(
		widget.NewSeparator(),
		nil,
		nil,
		sb.chartInfo,
		sb.statusLabel,
	)
}

// SetStatus updates the main status message
func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

func (sb *StatusBar) GetStatus() string {
	return sb.statusLabel.Text
}

// SetChartCount updates the open chart window counter.
func (sb *StatusBar) SetChartCount(n int) {
	switch n {
	case 0:
		sb.chartInfo.SetText(noChartsText)
	case 1:
		sb.chartInfo.SetText("1 chart open")
	default:
		sb.chartInfo.SetText(fmt.Sprintf("%d charts open", n))
	}
}

func (sb *StatusBar) GetChartInfo() string {
	return sb.chartInfo.Text
}

// GetContainer returns the status bar container
func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
