package components

import (
	"fmt"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// DataPanel displays the cache contents pushed by the controller.
type DataPanel struct {
	container *fyne.Container
	display   *widget.Entry
}

// NewDataPanel creates a new data panel component
func NewDataPanel() *DataPanel {
	dp := &DataPanel{}
	dp.createComponents()
	dp.buildLayout()
	return dp
}

// createComponents initializes the display area
func (dp *DataPanel) createComponents() {
	dp.display = widget.NewMultiLineEntry()
	dp.display.Disable()
	dp.display.SetText(FormatData("", nil))
}

// buildLayout constructs the panel layout
func (dp *DataPanel) buildLayout() {
	dp.container = container.NewBorder(
		widget.NewLabel("Data Display"),
		nil, nil, nil,
		dp.display,
	)
}

// SetData renders a data update. A mapping renders as the full cache
// listing; nil renders as "no data".
func (dp *DataPanel) SetData(key string, value interface{}) {
	fyne.Do(func() {
		dp.display.SetText(FormatData(key, value))
	})
}

// GetContainer returns the panel container
func (dp *DataPanel) GetContainer() *fyne.Container {
	return dp.container
}

// FormatData renders a data update as display text. A map value is treated
// as the whole cache; nil is the explicit "no value" marker.
func FormatData(key string, value interface{}) string {
	if m, ok := value.(map[string]interface{}); ok {
		if len(m) == 0 {
			return "no data"
		}

		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var b strings.Builder
		b.WriteString("cached data:\n\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "%s: %v\n", k, m[k])
		}
		return b.String()
	}

	if value == nil {
		return "no data"
	}
	return fmt.Sprintf("%s: %v", key, value)
}
