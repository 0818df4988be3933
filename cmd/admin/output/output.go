// Package output renders admin CLI results for a terminal.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"walletadmin/internal/domain/activity"
	"walletadmin/internal/domain/notification"
	"walletadmin/internal/domain/overview"
)

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
	colorPrimary = lipgloss.Color("#7C3AED")

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	primaryStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
)

// JSON writes v indented, for --json
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Status colours a status label the way the dashboard does
func Status(color activity.ColorKey, label string) string {
	switch color {
	case activity.ColorGreen:
		return successStyle.Render(label)
	case activity.ColorYellow:
		return warningStyle.Render(label)
	case activity.ColorRed:
		return errorStyle.Render(label)
	default:
		return mutedStyle.Render(label)
	}
}

func section(w io.Writer, title string) {
	fmt.Fprintln(w, primaryStyle.Render(title))
	fmt.Fprintln(w, mutedStyle.Render(strings.Repeat("═", lipgloss.Width(title))))
}

// Records prints grouped request or transaction rows
func Records(w io.Writer, groups []activity.DateGroup[overview.RecordView]) {
	if len(groups) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No records match."))
		return
	}
	for _, g := range groups {
		section(w, g.Label)
		for _, r := range g.Items {
			fmt.Fprintf(w, "  #%-6d %-22s %-10s %14s  %-22s %s\n",
				r.ID, truncate(r.UserName, 22), r.Type, r.Amount, truncate(r.Account, 22), Status(r.Color, r.Status))
		}
		fmt.Fprintln(w)
	}
}

// Users prints one line per user row
func Users(w io.Writer, rows []overview.UserRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No users match."))
		return
	}
	section(w, fmt.Sprintf("Users (%d)", len(rows)))
	for _, u := range rows {
		fmt.Fprintf(w, "  #%-6d %-22s %-28s %-24s %12s  %s\n",
			u.ID, truncate(u.Name, 22), truncate(u.Email, 28), truncate(u.PrimaryAccount, 24), u.TotalBalance.StringFixed(2), Status(u.Color, u.Status))
	}
}

// Activity prints a user's grouped notifications with their recovered fields
func Activity(w io.Writer, groups []activity.DateGroup[overview.ActivityItem]) {
	if len(groups) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No activity."))
		return
	}
	for _, g := range groups {
		section(w, g.Label)
		for _, item := range g.Items {
			title := item.Title
			if !item.Read {
				title = primaryStyle.Render(title)
			}
			fmt.Fprintf(w, "  [%s] %s  %s\n", item.Icon, title, mutedStyle.Render(item.CreatedAt.Format("15:04")))
			if line := fieldsLine(item.Fields); line != "" {
				fmt.Fprintf(w, "         %s\n", line)
			}
		}
		fmt.Fprintln(w)
	}
}

// Fields prints every extracted key, showing unmatched ones as a dash
func Fields(w io.Writer, fields notification.Fields, keys []string) {
	for _, k := range keys {
		v := fields[k]
		if v == nil {
			fmt.Fprintf(w, "%-15s %s\n", k+":", mutedStyle.Render("-"))
			continue
		}
		fmt.Fprintf(w, "%-15s %s\n", k+":", successStyle.Render(*v))
	}
}

// Backlog prints the pending counters
func Backlog(w io.Writer, b overview.Backlog) {
	style := successStyle
	if b.Total() > 0 {
		style = warningStyle
	}
	fmt.Fprintf(w, "Pending requests: %s\n", style.Render(fmt.Sprint(b.PendingRequests)))
	fmt.Fprintf(w, "Pending history:  %s\n", style.Render(fmt.Sprint(b.PendingHistory)))
}

func fieldsLine(fields notification.Fields) string {
	var parts []string
	for _, k := range []string{notification.FieldBankName, notification.FieldAccountNumber, notification.FieldCurrency} {
		if v := fields[k]; v != nil {
			parts = append(parts, k+"="+*v)
		}
	}
	return strings.Join(parts, " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
