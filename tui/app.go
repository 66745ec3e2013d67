package tui

import (
	"fmt"
	"time"

	"github.com/bassamadnan/triage/inquiry"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// urgencyFilters is the cycle the f key walks through; "" shows everything.
var urgencyFilters = []string{"", "High", "Medium", "Low"}

// Browser is a read-only viewer for the archive sheet.
type Browser struct {
	*tview.Application
	rootPages     *tview.Pages
	dashboardFlex *tview.Flex
	entryList     *EntryListView
	previewPane   *PreviewPane
	focusedView   *FocusedEntryView
	statusBar     *tview.TextView

	sheetTitle string
	filterIdx  int
}

func NewBrowser(sheetTitle string, entries []inquiry.ArchiveEntry) *Browser {
	b := &Browser{
		Application: tview.NewApplication(),
		sheetTitle:  sheetTitle,
	}

	b.entryList = NewEntryListView(b)
	b.previewPane = NewPreviewPane()
	b.focusedView = NewFocusedEntryView()

	b.dashboardFlex = tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(b.entryList.List, 0, 1, true).
		AddItem(b.previewPane, 0, 3, false)
	b.dashboardFlex.SetBackgroundColor(tcell.ColorDefault)

	b.statusBar = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	b.statusBar.SetBackgroundColor(tcell.ColorDefault)

	mainLayoutWithStatus := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(b.dashboardFlex, 0, 1, true).
		AddItem(b.statusBar, 1, 0, false)
	mainLayoutWithStatus.SetBackgroundColor(tcell.ColorDefault)

	b.rootPages = tview.NewPages().
		AddPage(PageDashboard, mainLayoutWithStatus, true, true).
		AddPage(PageFocusedEntry, b.focusedView, true, false)

	b.Application.SetRoot(b.rootPages, true).EnableMouse(true)
	b.setGlobalKeybindings()

	b.previewPane.SetWelcomeMessage(sheetTitle)
	b.entryList.SetEntries(entries)
	b.setStandardStatusMessage()
	return b
}

func (b *Browser) Run() error {
	b.Application.SetFocus(b.entryList.List)
	return b.Application.Run()
}

func (b *Browser) setGlobalKeybindings() {
	b.Application.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		currentPage, _ := b.rootPages.GetFrontPage()
		if event.Key() == tcell.KeyCtrlC || event.Rune() == 'q' || event.Rune() == 'Q' {
			b.Stop()
			return nil
		}
		if currentPage == PageFocusedEntry && event.Key() == tcell.KeyEscape {
			b.ShowDashboardView()
			return nil
		}
		if currentPage == PageDashboard && isFilterKey(event) {
			b.cycleFilter()
			return nil
		}
		return event
	})
}

func isFilterKey(event *tcell.EventKey) bool {
	return event.Key() == tcell.KeyRune && (event.Rune() == 'f' || event.Rune() == 'F')
}

func (b *Browser) cycleFilter() {
	b.filterIdx = (b.filterIdx + 1) % len(urgencyFilters)
	b.entryList.ApplyFilter(urgencyFilters[b.filterIdx])
	b.setStandardStatusMessage()
}

func (b *Browser) setStandardStatusMessage() {
	filter := urgencyFilters[b.filterIdx]
	if filter == "" {
		filter = "all"
	}
	b.statusBar.SetText(fmt.Sprintf(" [::d]%s | %s | %d of %d inquiries | filter: %s | [::b]Q[::-]:Quit [::b]F[::-]:Filter [::b]Ent[::-]:Full [::b]Esc[::-]:Back",
		tview.Escape(b.sheetTitle), time.Now().Format("15:04:05"),
		len(b.entryList.visibleEntries), len(b.entryList.allEntries), filter))
}

func (b *Browser) UpdatePreviewPane(entry inquiry.ArchiveEntry) {
	b.previewPane.SetEntryContent(entry)
}

func (b *Browser) ShowWelcomeMessageInPreview() {
	b.previewPane.SetWelcomeMessage(b.sheetTitle)
}

func (b *Browser) ShowFocusedEntryView(entry inquiry.ArchiveEntry) {
	b.focusedView.SetEntryContent(entry)
	b.rootPages.SwitchToPage(PageFocusedEntry)
	b.Application.SetFocus(b.focusedView.textView)
}

func (b *Browser) ShowDashboardView() {
	b.rootPages.SwitchToPage(PageDashboard)
	b.Application.SetFocus(b.entryList.List)
}
