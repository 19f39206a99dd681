package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ferrous-labs/deckdex-cli/internal/core/domain"
)

// searchResultsMsg carries the outcome of an asynchronous search.
type searchResultsMsg struct {
	query string
	hits  []domain.SlideHit
	err   error
}

// deckCountMsg carries the library size for the footer.
type deckCountMsg struct {
	count int
}

// App is the interactive slide search view following the Elm
// architecture. It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *Styles

	input textinput.Model

	// query is the last executed search query.
	query string

	// hits holds the current search results.
	hits []domain.SlideHit

	// selected is the index of the highlighted hit.
	selected int

	// deckCount is the library size shown in the footer, -1 until
	// known.
	deckCount int

	err    error
	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a query and press Enter"
	ti.Focus()

	return &App{
		ports:     ports,
		ctx:       context.Background(),
		styles:    DefaultStyles(),
		input:     ti,
		deckCount: -1,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tea.SetWindowTitle("deckdex - Slide Search"),
		a.loadDeckCount(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case searchResultsMsg:
		a.query = msg.query
		a.hits = msg.hits
		a.selected = 0
		a.err = msg.err
		return a, nil

	case deckCountMsg:
		a.deckCount = msg.count
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return a, tea.Quit

		case "enter":
			query := strings.TrimSpace(a.input.Value())
			if query == "" {
				return a, nil
			}
			return a, a.search(query)

		case "down":
			if len(a.hits) > 0 {
				a.selected = (a.selected + 1) % len(a.hits)
			}
			return a, nil

		case "up":
			if len(a.hits) > 0 {
				a.selected = (a.selected - 1 + len(a.hits)) % len(a.hits)
			}
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Deckdex Slide Search"))
	b.WriteString("\n")
	b.WriteString(a.styles.QueryBox.Render(a.input.View()))
	b.WriteString("\n")

	switch {
	case a.err != nil:
		b.WriteString(a.styles.Error.Render("Error: " + a.err.Error()))
	case a.query == "":
		b.WriteString(a.styles.Muted.Render("No search yet."))
	case len(a.hits) == 0:
		b.WriteString(a.styles.Muted.Render(fmt.Sprintf("No slides match %q.", a.query)))
	default:
		b.WriteString(a.renderHits())
	}

	b.WriteString("\n")
	b.WriteString(a.styles.Muted.Render(a.footer()))
	return b.String()
}

// Query returns the last executed search query.
func (a *App) Query() string { return a.query }

// Hits returns the current search results.
func (a *App) Hits() []domain.SlideHit { return a.hits }

// SelectedIndex returns the index of the highlighted hit.
func (a *App) SelectedIndex() int { return a.selected }

// Err returns the last error that occurred.
func (a *App) Err() error { return a.err }

// search returns a command that runs the query off the update loop.
func (a *App) search(query string) tea.Cmd {
	return func() tea.Msg {
		hits, err := a.ports.Retrieval.Search(a.ctx, query, domain.SearchOptions{})
		return searchResultsMsg{query: query, hits: hits, err: err}
	}
}

// loadDeckCount returns a command that fetches the library size.
func (a *App) loadDeckCount() tea.Cmd {
	if a.ports.Library == nil {
		return nil
	}
	return func() tea.Msg {
		decks, err := a.ports.Library.List(a.ctx)
		if err != nil {
			return deckCountMsg{count: -1}
		}
		return deckCountMsg{count: len(decks)}
	}
}

// renderHits renders the result list and the selected slide's text.
func (a *App) renderHits() string {
	var b strings.Builder
	for i, hit := range a.hits {
		line := fmt.Sprintf("%s  %s  (%.3f)", hit.SlideLocalID, hit.Title, hit.Distance)
		if i == a.selected {
			b.WriteString(a.styles.Selected.Render("▸ " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	hit := a.hits[a.selected]
	detail := hit.Text
	if len(hit.Tags) > 0 {
		detail += "\n\n" + a.styles.Muted.Render("Tags: "+hit.Tags.String())
	}
	b.WriteString(a.styles.Detail.Render(detail))
	return b.String()
}

// footer builds the status line.
func (a *App) footer() string {
	parts := []string{"enter: search", "↑/↓: select", "esc: quit"}
	if a.deckCount >= 0 {
		parts = append(parts, fmt.Sprintf("%d deck(s) in library", a.deckCount))
	}
	return strings.Join(parts, "  ·  ")
}
