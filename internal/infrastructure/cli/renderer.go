package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/doeshing/smartai-go/internal/domain"
)

var (
	answerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)

	sourceStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// styled reports whether stdout is an interactive terminal. Piped output
// gets plain text.
func styled() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// RenderAnswer prints the final answer with its provenance line.
func RenderAnswer(w io.Writer, resp domain.AskResponse) {
	body := strings.TrimSpace(resp.Response)

	footer := "source: " + string(resp.Source)
	if resp.Source == domain.SourceCache {
		footer = fmt.Sprintf("cached %s", humanize.Time(resp.CachedAt))
	} else if resp.ModelUsed != "" {
		footer = "answered by " + resp.ModelUsed
	}

	if !styled() {
		fmt.Fprintln(w, body)
		fmt.Fprintln(w)
		fmt.Fprintln(w, footer)
		return
	}

	fmt.Fprintln(w, answerBoxStyle.Render(body))
	fmt.Fprintln(w, sourceStyle.Render(footer))
}

// RenderSuggestions prints the three suggestion groups.
func RenderSuggestions(w io.Writer, s domain.Suggestions) {
	renderGroup(w, "Related questions", s.RelatedQuestions)
	renderGroup(w, "Power options", s.PowerOptions)
	renderGroup(w, "Approaches", s.Approaches)
}

func renderGroup(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, heading(title))
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}

// RenderAnalysis prints the suggestion groups an infrastructure analysis
// produced, skipping empty ones.
func RenderAnalysis(w io.Writer, analysis domain.InfraAnalysis) {
	renderGroup(w, "Security", analysis.Security)
	renderGroup(w, "Performance", analysis.Performance)
	renderGroup(w, "Reliability", analysis.Reliability)
	renderGroup(w, "Scalability", analysis.Scalability)
	renderGroup(w, "Image size", analysis.Size)
	renderGroup(w, "Layer caching", analysis.Caching)
	renderGroup(w, "Best practices", analysis.BestPractices)
	fmt.Fprintln(w)
}

// RenderHistory prints history entries newest-last with humanized ages.
func RenderHistory(w io.Writer, entries []domain.HistoryEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No history yet.")
		return
	}
	for i, entry := range entries {
		fmt.Fprintf(w, "%d. %s (%s)\n", i+1, entry.Question, humanize.Time(entry.Timestamp))
		fmt.Fprintf(w, "   %s\n", firstLine(entry.Answer))
	}
}

// RenderHistoryEntry prints one full entry, answer included.
func RenderHistoryEntry(w io.Writer, entry domain.HistoryEntry) {
	fmt.Fprintln(w, heading(entry.Question))
	fmt.Fprintln(w, sourceText(humanize.Time(entry.Timestamp)))
	fmt.Fprintln(w)
	fmt.Fprintln(w, entry.Answer)
}

// RenderReport prints the doctor report with one glyph per check.
func RenderReport(w io.Writer, report domain.HealthReport) {
	for _, check := range report.Checks {
		fmt.Fprintf(w, "%s %-22s %s\n", statusGlyph(check.Status), check.Name, check.Detail)
	}
	fmt.Fprintln(w)
	if report.Healthy() {
		fmt.Fprintln(w, okText("Everything looks good."))
	} else {
		fmt.Fprintln(w, failText("Some checks failed; run `smartai configure` to set missing keys."))
	}
}

func statusGlyph(status domain.CheckStatus) string {
	switch status {
	case domain.CheckOK:
		return okText("[ok]  ")
	case domain.CheckWarn:
		return warnText("[warn]")
	default:
		return failText("[fail]")
	}
}

func heading(text string) string {
	if !styled() {
		return text
	}
	return headingStyle.Render(text)
}

func sourceText(text string) string {
	if !styled() {
		return text
	}
	return sourceStyle.Render(text)
}

func okText(text string) string {
	if !styled() {
		return text
	}
	return okStyle.Render(text)
}

func warnText(text string) string {
	if !styled() {
		return text
	}
	return warnStyle.Render(text)
}

func failText(text string) string {
	if !styled() {
		return text
	}
	return failStyle.Render(text)
}

func firstLine(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
	}
	if len(text) > 100 {
		text = text[:97] + "..."
	}
	return text
}
