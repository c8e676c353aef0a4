// ABOUTME: System performance panel fed by the client's request metrics
// ABOUTME: Latency history, error rate and status code breakdown

package dashboard

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/client"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/tui/icons"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/tui/styles"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/tui/widgets"
	"github.com/charmbracelet/lipgloss"
)

// Latency thresholds in milliseconds for sparkline coloring
const (
	slowMillis     = 300
	verySlowMillis = 1000
)

// Performance renders snap for the admin performance view
func Performance(snap client.MetricsSnapshot, backend string, width int) string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("System performance"))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("%s, since %s", backend, snap.Since.Format(time.Kitchen))))
	sb.WriteString("\n")

	if snap.Requests == 0 {
		sb.WriteString(styles.Help.Render("No requests recorded yet"))
		return sb.String()
	}

	config := widgets.DefaultMetricBlockConfig()
	level := widgets.StatusFromPercent(snap.ErrorRate, 1, 5)
	blocks := lipgloss.JoinHorizontal(lipgloss.Top,
		widgets.MetricBlockWithSparkline(icons.Gauge, "Latency", millis(snap.Last), snap.LatencyMillis,
			fmt.Sprintf("p50 %s p95 %s", millis(snap.P50), millis(snap.P95)), config),
		" ",
		widgets.CountBlock(icons.Refresh, "Requests", snap.Requests, fmt.Sprintf("%d failed", snap.Failures), config),
	)
	sb.WriteString(blocks)
	sb.WriteString("\n\n")

	sb.WriteString(widgets.StatusText(fmt.Sprintf("Error rate %.1f%%", snap.ErrorRate), level))
	sb.WriteString("\n\n")

	sparkWidth := max(10, min(60, width-10))
	sb.WriteString("Recent  ")
	sb.WriteString(widgets.SparklineWithThresholds(snap.LatencyMillis, sparkWidth, slowMillis, verySlowMillis,
		styles.Primary, styles.Warning, styles.Danger))
	sb.WriteString("\n\n")

	sb.WriteString(styles.ValueStyle.Render("Responses"))
	sb.WriteString("\n")
	sb.WriteString(statusLines(snap.Statuses))

	return sb.String()
}

func statusLines(statuses map[int]int) string {
	codes := make([]int, 0, len(statuses))
	for code := range statuses {
		codes = append(codes, code)
	}
	sort.Ints(codes)

	var lines []string
	for _, code := range codes {
		label := fmt.Sprintf("%d", code)
		if code == 0 {
			label = "network"
		}
		lines = append(lines, fmt.Sprintf("  %-8s %d", label, statuses[code]))
	}
	return strings.Join(lines, "\n")
}

func millis(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%dms", d.Milliseconds())
}
