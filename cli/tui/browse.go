package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mssd/mssd-console/internal/pipeline"
)

// Column describes one table column.
type Column struct {
	Title string
	Width int
}

// Row is one listed record, flattened for display. Cells line up with the
// browse columns and double as the text-search fields.
type Row struct {
	ID    int64
	Cells []string
}

// Loader fetches the full collection for the browse screen.
type Loader func(ctx context.Context) ([]Row, error)

// Filter is one selectable categorical filter over the listed rows.
type Filter struct {
	Label string
	Pred  pipeline.Predicate[Row]
}

// maxPageButtons is the width of the page-number strip.
const maxPageButtons = 5

type (
	rowsMsg struct {
		rows []Row
	}
	loadErrMsg struct {
		err error
	}
	searchMsg struct {
		term string
		gen  uint64
	}
)

type browseKeyMap struct {
	Search    key.Binding
	Clear     key.Binding
	NextPage  key.Binding
	PrevPage  key.Binding
	FirstPage key.Binding
	LastPage  key.Binding
	Sort      key.Binding
	Filter    key.Binding
	Refresh   key.Binding
	Quit      key.Binding
}

func defaultBrowseKeyMap() browseKeyMap {
	return browseKeyMap{
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Clear:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		NextPage:  key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n/→", "next page")),
		PrevPage:  key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("p/←", "prev page")),
		FirstPage: key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first page")),
		LastPage:  key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last page")),
		Sort:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle sort")),
		Filter:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "cycle filter")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// BrowseModel is the shared list screen: every collection renders through
// the same search/sort/paginate pipeline.
type BrowseModel struct {
	ctx     context.Context
	title   string
	columns []Column
	load    Loader

	pipe      *pipeline.Pipeline[Row]
	searcher  *pipeline.Searcher
	searchCh  chan searchMsg
	done      chan struct{}
	closed    bool
	sortCol   int // -1 keeps fetch order
	filters   []Filter
	filterIdx int // -1 shows everything

	table     table.Model
	input     textinput.Model
	spin      spinner.Model
	keys      browseKeyMap
	loading   bool
	searching bool
	err       error
	width     int
}

// NewBrowse builds a browse screen over one collection.
func NewBrowse(ctx context.Context, title string, columns []Column, pageSize int, load Loader) *BrowseModel {
	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{Title: c.Title, Width: c.Width}
	}
	tbl := table.New(table.WithColumns(cols), table.WithFocused(true))

	input := textinput.New()
	input.Placeholder = "Rechercher..."
	input.CharLimit = 80

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := &BrowseModel{
		ctx:       ctx,
		title:     title,
		columns:   columns,
		load:      load,
		pipe:      pipeline.New(pageSize, func(r Row) []string { return r.Cells }),
		searchCh:  make(chan searchMsg, 8),
		done:      make(chan struct{}),
		sortCol:   -1,
		filterIdx: -1,
		table:     tbl,
		input:     input,
		spin:      spin,
		keys:      defaultBrowseKeyMap(),
		loading:   true,
	}
	m.searcher = pipeline.NewSearcher(pipeline.DefaultSearchWait, func(term string, gen uint64) {
		m.searchCh <- searchMsg{term: term, gen: gen}
	})
	return m
}

// SetFilters installs the cycleable filters for this collection.
func (m *BrowseModel) SetFilters(filters []Filter) {
	m.filters = filters
}

// Init starts the spinner, the initial fetch and the search listener.
func (m *BrowseModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.fetch(), m.awaitSearch())
}

func (m *BrowseModel) fetch() tea.Cmd {
	return func() tea.Msg {
		rows, err := m.load(m.ctx)
		if err != nil {
			return loadErrMsg{err: err}
		}
		return rowsMsg{rows: rows}
	}
}

// awaitSearch waits for the next debounced search completion. The done
// channel unblocks the pending command on quit so its goroutine exits.
func (m *BrowseModel) awaitSearch() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-m.searchCh:
			return msg
		case <-m.done:
			return nil
		}
	}
}

// Close cancels the pending search dispatch and releases the listener.
func (m *BrowseModel) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.searcher.Close()
	close(m.done)
}

// Update handles one message.
func (m *BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case rowsMsg:
		m.loading = false
		m.err = nil
		m.pipe.SetSource(msg.rows)
		m.pipe.StepBackIfEmpty()
		m.syncTable()
		return m, nil

	case loadErrMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case searchMsg:
		// Latest-wins: a completion for an older keystroke is dropped.
		if m.searcher.IsCurrent(msg.gen) {
			m.pipe.SetTerm(msg.term)
			m.syncTable()
		}
		return m, m.awaitSearch()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		if m.loading {
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *BrowseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "esc":
			m.searching = false
			m.input.Blur()
			m.input.SetValue("")
			m.searcher.Type("")
			return m, nil
		case "enter":
			m.searching = false
			m.input.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			m.searcher.Type(m.input.Value())
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Clear):
		m.input.SetValue("")
		m.pipe.SetTerm("")
		m.syncTable()
		return m, nil
	case key.Matches(msg, m.keys.NextPage):
		if m.pipe.NextPage() {
			m.syncTable()
		}
		return m, nil
	case key.Matches(msg, m.keys.PrevPage):
		if m.pipe.PrevPage() {
			m.syncTable()
		}
		return m, nil
	case key.Matches(msg, m.keys.FirstPage):
		if m.pipe.GoToPage(1) {
			m.syncTable()
		}
		return m, nil
	case key.Matches(msg, m.keys.LastPage):
		if m.pipe.GoToPage(m.pipe.View().Window.TotalPages()) {
			m.syncTable()
		}
		return m, nil
	case key.Matches(msg, m.keys.Sort):
		m.cycleSort()
		return m, nil
	case key.Matches(msg, m.keys.Filter):
		m.cycleFilter()
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, tea.Batch(m.spin.Tick, m.fetch())
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// cycleSort advances fetch-order -> column 0 -> column 1 -> ... -> fetch order.
func (m *BrowseModel) cycleSort() {
	m.sortCol++
	if m.sortCol >= len(m.columns) {
		m.sortCol = -1
		m.pipe.SetSort(nil)
	} else {
		col := m.sortCol
		m.pipe.SetSort(pipeline.Alphabetical(func(r Row) string {
			if col < len(r.Cells) {
				return r.Cells[col]
			}
			return ""
		}))
	}
	m.syncTable()
}

// cycleFilter advances everything -> filter 0 -> filter 1 -> ... -> everything.
func (m *BrowseModel) cycleFilter() {
	if len(m.filters) == 0 {
		return
	}
	m.filterIdx++
	if m.filterIdx >= len(m.filters) {
		m.filterIdx = -1
		m.pipe.SetFilter("browse", nil)
	} else {
		m.pipe.SetFilter("browse", m.filters[m.filterIdx].Pred)
	}
	m.syncTable()
}

func (m *BrowseModel) syncTable() {
	view := m.pipe.View()
	rows := make([]table.Row, len(view.Items))
	for i, r := range view.Items {
		rows[i] = table.Row(r.Cells)
	}
	m.table.SetRows(rows)
}

// View renders the screen.
func (m *BrowseModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	if m.searching || m.input.Value() != "" {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	if m.filterIdx >= 0 {
		b.WriteString(mutedStyle.Render("Filtre: "+m.filters[m.filterIdx].Label) + "\n")
	}

	switch {
	case m.loading:
		b.WriteString(m.spin.View() + " Chargement...\n")
	case m.err != nil:
		b.WriteString(errorStyle.Render("Erreur: "+m.err.Error()) + "\n")
	default:
		view := m.pipe.View()
		if len(view.Items) == 0 {
			b.WriteString(mutedStyle.Render("Aucun résultat") + "\n")
		} else {
			b.WriteString(m.table.View() + "\n")
		}
		b.WriteString(m.renderPager(view.Window))
	}

	b.WriteString(helpStyle.Render("/ search · f filter · s sort · n/p pages · r refresh · q quit"))
	return b.String()
}

// renderPager draws the bounded page strip with first/last anchors and
// ellipsis markers, plus the item range summary.
func (m *BrowseModel) renderPager(w pipeline.PageWindow) string {
	controls := w.Controls(maxPageButtons)
	if len(controls.Pages) == 0 {
		if w.TotalItems > 0 {
			return mutedStyle.Render(fmt.Sprintf("%d élément(s)", w.TotalItems)) + "\n"
		}
		return ""
	}

	parts := make([]string, 0, len(controls.Pages)+4)
	if controls.ShowFirst {
		parts = append(parts, pageStyle.Render("1"))
	}
	if controls.FirstEllipsis {
		parts = append(parts, mutedStyle.Render("…"))
	}
	for _, page := range controls.Pages {
		if page == w.CurrentPage {
			parts = append(parts, pageActiveStyle.Render(fmt.Sprintf("%d", page)))
		} else {
			parts = append(parts, pageStyle.Render(fmt.Sprintf("%d", page)))
		}
	}
	if controls.LastEllipsis {
		parts = append(parts, mutedStyle.Render("…"))
	}
	if controls.ShowLast {
		parts = append(parts, pageStyle.Render(fmt.Sprintf("%d", w.TotalPages())))
	}

	strip := lipgloss.JoinHorizontal(lipgloss.Center, parts...)
	summary := mutedStyle.Render(
		fmt.Sprintf("Affichage %d - %d sur %d éléments", controls.StartItem, controls.EndItem, w.TotalItems))
	return strip + "\n" + summary + "\n"
}
