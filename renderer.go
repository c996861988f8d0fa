package autocomplete

import (
	"strings"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/mattn/go-runewidth"
)

const (
	pointerGlyph = "❯"
	ellipsis     = "…"
	errorMarker  = ">> "
)

// View implements tea.Model.
//
// The layout is the question line followed by one body block: the searching
// message, the Source error, the no-result message or the candidate page.
// A validation or Filter error is appended last.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.viewQuestion())

	if m.sel.Status == Answered {
		b.WriteString(m.styles.answer.Render(m.answer.String()))
		b.WriteString("\n")
		return b.String()
	}

	if body := m.viewBody(); body != "" {
		b.WriteString("\n")
		b.WriteString(body)
	}
	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.error.Render(errorMarker + m.notice))
	}
	return b.String()
}

// viewQuestion renders "? message " plus, while active, the dimmed default,
// the first-render hint or the line being edited.
func (m Model) viewQuestion() string {
	var b strings.Builder
	b.WriteString(m.styles.prefix.Render("?"))
	b.WriteString(" ")
	b.WriteString(m.styles.message.Render(m.config.Message))
	b.WriteString(" ")

	if m.sel.Status == Answered {
		return b.String()
	}

	if m.sel.Mode == SuggestOnly && m.config.Default != "" {
		b.WriteString(m.styles.hint.Render("(" + m.config.Default + ")"))
		b.WriteString(" ")
	}

	if m.pristine && m.input.Value() == "" {
		hint := "(Use arrow keys or type to search"
		if m.sel.Mode == SuggestOnly {
			hint += ", tab to autocomplete"
		}
		b.WriteString(m.styles.hint.Render(hint + ")"))
		return b.String()
	}

	b.WriteString(m.input.View())
	return b.String()
}

func (m Model) viewBody() string {
	switch {
	case m.search.Searching:
		return "  " + m.styles.hint.Render(m.config.SearchingMessage)
	case m.searchErr != nil:
		return m.styles.error.Render(errorMarker + m.searchErr.Error())
	case len(m.sel.Candidates) == 0:
		// Nothing is reported until a search has come back.
		if m.search.resolved == 0 || m.config.NoResultMessage == "" {
			return ""
		}
		return "  " + m.styles.warning.Render(m.config.NoResultMessage)
	default:
		return m.viewList()
	}
}

// viewList renders the page containing the highlighted candidate.
func (m Model) viewList() string {
	candidates := m.sel.Candidates

	p := paginator.New()
	p.Type = paginator.Dots
	p.PerPage = m.config.PageSize
	p.ActiveDot = m.styles.pointer.Render("•")
	p.InactiveDot = m.styles.hint.Render("•")
	p.SetTotalPages(len(candidates))
	p.Page = m.sel.Highlighted / p.PerPage
	start, end := p.GetSliceBounds(len(candidates))

	// Pointer column plus a space.
	width := max(m.width-runewidth.StringWidth(pointerGlyph)-1, 1)

	lines := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		name := runewidth.Truncate(candidates[i].Name, width, ellipsis)
		if i == m.sel.Highlighted {
			lines = append(lines, m.styles.pointer.Render(pointerGlyph)+" "+m.styles.selected.Render(name))
			continue
		}
		lines = append(lines, "  "+m.styles.candidate.Render(name))
	}
	if p.TotalPages > 1 {
		lines = append(lines, "  "+p.View())
	}
	return strings.Join(lines, "\n")
}
