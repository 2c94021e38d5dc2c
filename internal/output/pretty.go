package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hamed0406/nethealth/internal/domain"
)

func RenderPretty(result domain.CheckResult) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Render("nethealth")
	lineStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	onlineStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	offlineStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	lines := []string{title, ""}

	groups := make([]string, 0, len(result.Checks))
	for name := range result.Checks {
		groups = append(groups, name)
	}
	sort.Strings(groups)

	for _, name := range groups {
		g := result.Checks[name]
		verdict := onlineStyle.Render("PASS")
		if !g.Success {
			verdict = offlineStyle.Render("FAIL")
		}
		line := fmt.Sprintf("%s %-4s %d/%d", verdict, strings.ToUpper(name), g.SuccessCount, g.TotalCount)
		lines = append(lines, lineStyle.Render(line))
	}

	lines = append(lines, "")
	summary := fmt.Sprintf("offline confidence=%.1f%% passed=%d/%d",
		result.Confidence, result.PassedChecks, result.TotalChecks)
	if result.Status {
		summary = "online " + summary[len("offline "):]
		lines = append(lines, onlineStyle.Render(summary))
	} else {
		lines = append(lines, offlineStyle.Render(summary))
	}

	if len(result.FailedReasons) > 0 {
		lines = append(lines, "Failures:")
		for _, reason := range result.FailedReasons {
			lines = append(lines, "- "+reason)
		}
	}

	return strings.Join(lines, "\n")
}
