package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/terraincognita07/blossom/internal/services"
)

// RenderSnapshot lays out a snapshot as three stacked terminal panes.
func RenderSnapshot(snapshot services.Snapshot) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		title.Render("Blossom · "+snapshot.Today),
		pane.Render(cycleSection(snapshot.Cycle)),
		pane.Render(wellnessSection(snapshot.Wellness)),
		pane.Render(insightSection(snapshot.Insights, snapshot.PrimaryStory)),
	)
}

func cycleSection(overview services.CycleOverview) string {
	lines := []string{title.Render("Cycle")}
	if overview.Analysis.IsUntracked {
		return strings.Join(append(lines, muted.Render(overview.Insight)), "\n")
	}

	summary := overview.Summary
	lines = append(lines,
		fmt.Sprintf("Day %s · %s", value.Render(fmt.Sprint(summary.CurrentDay)), phaseStyle(summary.Phase).Render(summary.Phase)),
		overview.Insight,
	)
	if overview.Guidance != "" {
		lines = append(lines, muted.Render(overview.Guidance))
	}

	if summary.HasEnoughData {
		lines = append(lines, fmt.Sprintf(
			"Last %d days · average %d days · variability %.1f · %s",
			summary.LastCycleLength,
			summary.AverageCycleLength,
			summary.Variability,
			summary.Status,
		))
	} else {
		lines = append(lines, muted.Render("Log another full period to see cycle length trends."))
	}

	history := overview.Analysis.CycleHistory
	if count := len(history); count > 0 {
		starts := make([]string, 0, count)
		for _, event := range history {
			starts = append(starts, event.StartDate)
		}
		lines = append(lines, muted.Render("Period starts: "+strings.Join(starts, ", ")))
	}
	return strings.Join(lines, "\n")
}

func wellnessSection(score services.WellnessScore) string {
	lines := []string{
		title.Render("Wellness"),
		fmt.Sprintf("Score %s/100", scoreStyle(score.Total).Render(fmt.Sprint(score.Total))),
		componentLine("Symptoms", score.SymptomImprovement, score.Details.SymptomImprovement),
		componentLine("Self-care", score.SelfCareConsistency, score.Details.SelfCareConsistency),
		componentLine("Emotional", score.EmotionalWellbeing, score.Details.EmotionalWellbeing),
	}
	if !score.HasEnoughData {
		lines = append(lines, muted.Render("Needs a week of entries for a personal score."))
	}
	return strings.Join(lines, "\n")
}

func componentLine(label string, score int, detail string) string {
	return fmt.Sprintf("%-10s %3d  %s", label, score, muted.Render(detail))
}

func insightSection(insights []services.Insight, primary string) string {
	lines := []string{title.Render("Insights")}
	if primary != "" {
		lines = append(lines, value.Render(primary))
	}
	for _, insight := range insights {
		if insight.Story == primary {
			continue
		}
		lines = append(lines, fmt.Sprintf("• %s %s", insight.Story, muted.Render("("+string(insight.Category)+")")))
	}
	return strings.Join(lines, "\n")
}
