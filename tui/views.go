package tui

import (
	"fmt"
	"strings"

	"github.com/bassamadnan/triage/inquiry"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	PageDashboard    = "dashboard"
	PageFocusedEntry = "focusedEntry"
)

type EntryListView struct {
	*tview.List
	app            *Browser
	allEntries     []inquiry.ArchiveEntry
	visibleEntries []inquiry.ArchiveEntry
}

func NewEntryListView(app *Browser) *EntryListView {
	list := tview.NewList().
		ShowSecondaryText(true).
		SetSecondaryTextColor(tcell.ColorDimGray)
	list.SetBackgroundColor(tcell.ColorDefault)
	list.SetSelectedStyle(tcell.StyleDefault.
		Foreground(tcell.ColorWhite).
		Background(tcell.ColorSteelBlue).
		Attributes(tcell.AttrBold))
	list.SetBorder(true).SetTitle("Inquiries")

	elv := &EntryListView{List: list, app: app}

	list.SetChangedFunc(func(index int, _ string, _ string, _ rune) {
		if index >= 0 && index < len(elv.visibleEntries) {
			elv.app.UpdatePreviewPane(elv.visibleEntries[index])
		}
	})
	list.SetSelectedFunc(func(index int, _ string, _ string, _ rune) {
		if index >= 0 && index < len(elv.visibleEntries) {
			elv.app.ShowFocusedEntryView(elv.visibleEntries[index])
		}
	})
	return elv
}

// SetEntries replaces the list contents, newest archive row first.
func (elv *EntryListView) SetEntries(entries []inquiry.ArchiveEntry) {
	elv.allEntries = newestFirst(entries)
	elv.ApplyFilter("")
}

// ApplyFilter shows only entries with the given urgency; "" shows everything.
func (elv *EntryListView) ApplyFilter(urgency string) {
	elv.visibleEntries = filterByUrgency(elv.allEntries, urgency)
	elv.updateListItems()
}

func (elv *EntryListView) updateListItems() {
	elv.List.Clear()
	for _, entry := range elv.visibleEntries {
		elv.List.AddItem(listMainText(entry), listSecondaryText(entry), 0, nil)
	}
	if elv.List.GetItemCount() == 0 {
		elv.app.ShowWelcomeMessageInPreview()
		return
	}
	elv.List.SetCurrentItem(0)
	elv.app.UpdatePreviewPane(elv.visibleEntries[0])
}

func listMainText(entry inquiry.ArchiveEntry) string {
	name := entry.Name
	if name == "" {
		name = "(no name)"
	}
	return fmt.Sprintf("[%s]●[-] [white]%s", urgencyColor(entry.Urgency), tview.Escape(truncate(name, 25)))
}

func listSecondaryText(entry inquiry.ArchiveEntry) string {
	return fmt.Sprintf("[::d]%s · %s\n%s", tview.Escape(truncate(entry.Urgency, 10)), tview.Escape(truncate(entry.Timestamp, 20)), strings.Repeat("─", 20))
}

func newestFirst(entries []inquiry.ArchiveEntry) []inquiry.ArchiveEntry {
	out := make([]inquiry.ArchiveEntry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	return out
}

func filterByUrgency(entries []inquiry.ArchiveEntry, urgency string) []inquiry.ArchiveEntry {
	if urgency == "" {
		return append([]inquiry.ArchiveEntry(nil), entries...)
	}
	var out []inquiry.ArchiveEntry
	for _, e := range entries {
		if strings.EqualFold(strings.TrimSpace(e.Urgency), urgency) {
			out = append(out, e)
		}
	}
	return out
}

// entryDetails renders an entry as tview markup.
func entryDetails(entry inquiry.ArchiveEntry, width int) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("[::b]Name:[::-] %s\n", tview.Escape(entry.Name)))
	builder.WriteString(fmt.Sprintf("[::b]Email:[::-] %s\n", tview.Escape(entry.Email)))
	builder.WriteString(fmt.Sprintf("[::b]Submitted:[::-] %s\n", tview.Escape(entry.Timestamp)))
	builder.WriteString(fmt.Sprintf("[::b]Urgency:[::-] [%s]%s[-]\n", urgencyColor(entry.Urgency), tview.Escape(entry.Urgency)))
	builder.WriteString(fmt.Sprintf("[::b]Status:[::-] %s\n\n", tview.Escape(entry.Status)))
	builder.WriteString(strings.Repeat("─", width) + "\n\n")
	builder.WriteString(tview.Escape(strings.ReplaceAll(entry.Summary, "\r\n", "\n")))
	return builder.String()
}

type PreviewPane struct {
	*tview.TextView
}

func NewPreviewPane() *PreviewPane {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(true)
	tv.SetBackgroundColor(tcell.ColorDefault)
	tv.SetBorder(true).SetTitle("Preview")
	return &PreviewPane{TextView: tv}
}

func (pp *PreviewPane) SetEntryContent(entry inquiry.ArchiveEntry) {
	pp.SetText(entryDetails(entry, 60)).ScrollToBeginning()
	pp.SetTitle(fmt.Sprintf("Preview: %s", tview.Escape(truncate(entry.Name, 40))))
}

func (pp *PreviewPane) SetWelcomeMessage(sheetTitle string) {
	pp.SetText(fmt.Sprintf("\n[lightblue::b]triage[-::-]\n\nNo inquiry selected or %q is empty.\n\n[::d]Navigate with ↑ ↓ keys.\nPress Enter to open in full view.\nPress F to filter by urgency.\nPress Q or Ctrl+C to quit.[::-]", tview.Escape(sheetTitle))).
		ScrollToBeginning()
	pp.SetTitle("Home")
}

type FocusedEntryView struct {
	*tview.Frame
	textView *tview.TextView
}

func NewFocusedEntryView() *FocusedEntryView {
	textView := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(true)
	textView.SetBackgroundColor(tcell.ColorDefault)

	frame := tview.NewFrame(textView).
		AddText("", true, tview.AlignCenter, tcell.ColorYellow).
		AddText("Press Esc to go back", false, tview.AlignCenter, tcell.ColorDimGray)
	frame.SetBorder(true).SetBackgroundColor(tcell.ColorDefault)

	return &FocusedEntryView{Frame: frame, textView: textView}
}

func (fev *FocusedEntryView) SetEntryContent(entry inquiry.ArchiveEntry) {
	fev.textView.SetText(entryDetails(entry, 70)).ScrollToBeginning()
	fev.Frame.Clear().
		AddText(fmt.Sprintf("Inquiry: %s", truncate(entry.Name, 60)), true, tview.AlignCenter, tcell.ColorYellow).
		AddText("Press Esc to go back", false, tview.AlignCenter, tcell.ColorDimGray).
		SetPrimitive(fev.textView)
}
