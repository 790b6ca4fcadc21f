package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/img2png/internal/model"
)

// QueueRow renders one queued URL with its status and a remove button
type QueueRow struct {
	widget.BaseWidget

	item         model.QueueItem
	localization *Localization

	statusLabel *widget.Label
	urlLabel    *widget.Label
	detailLabel *widget.Label
	removeBtn   *widget.Button

	onRemove func(id string)
}

// NewQueueRow creates an empty row; call Update to bind an item
func NewQueueRow(localization *Localization, onRemove func(id string)) *QueueRow {
	r := &QueueRow{
		localization: localization,
		onRemove:     onRemove,
	}
	r.ExtendBaseWidget(r)

	r.statusLabel = widget.NewLabel(DashPlaceholder)
	r.urlLabel = widget.NewLabel("")
	r.urlLabel.Truncation = fyne.TextTruncateEllipsis
	r.detailLabel = widget.NewLabel("")
	r.detailLabel.Truncation = fyne.TextTruncateEllipsis
	r.detailLabel.Importance = widget.LowImportance
	r.detailLabel.Hide()
	r.removeBtn = widget.NewButton(IconClose, func() {
		if r.onRemove != nil && r.item.ID != "" {
			r.onRemove(r.item.ID)
		}
	})
	r.removeBtn.Importance = widget.LowImportance
	return r
}

// Update binds the row to item
func (r *QueueRow) Update(item model.QueueItem, busy bool) {
	r.item = item
	r.statusLabel.SetText(statusIcon(item.Status) + " " + item.Status.String())
	r.urlLabel.SetText(item.URL)

	detail := item.Error
	if detail == "" && item.OutputPath != "" {
		detail = item.OutputPath
	}
	r.detailLabel.SetText(detail)
	if detail == "" {
		r.detailLabel.Hide()
	} else {
		r.detailLabel.Show()
	}

	if busy {
		r.removeBtn.Disable()
	} else {
		r.removeBtn.Enable()
	}
}

// CreateRenderer implements fyne.Widget
func (r *QueueRow) CreateRenderer() fyne.WidgetRenderer {
	status := container.NewGridWrap(fyne.NewSize(StatusLabelWidth, r.statusLabel.MinSize().Height), r.statusLabel)
	body := container.NewVBox(r.urlLabel, r.detailLabel)
	return widget.NewSimpleRenderer(container.NewBorder(nil, nil, status, r.removeBtn, body))
}

func statusIcon(status model.TaskStatus) string {
	switch {
	case status == model.TaskStatusCompleted:
		return IconDone
	case status == model.TaskStatusError:
		return IconError
	case status.IsActive():
		return IconWorking
	default:
		return IconPending
	}
}
