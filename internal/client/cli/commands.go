package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/phishwatch/internal/client/guard"
)

// command is one REPL verb. path is the page the command belongs to and is
// checked against the route guard before run; "" means always allowed.
type command struct {
	name  string
	path  string
	usage string
	help  string
	run   func(a *App, ctx context.Context, args []string) error
}

func commandTable() []command {
	return []command{
		{"login", guard.LoginPath, "login [email]", "log in", (*App).login},
		{"signup", "/signup", "signup [email]", "create an account (needs admin approval)", (*App).signup},
		{"forgot-password", "/forgot-password", "forgot-password [email]", "email a password reset link", (*App).forgotPassword},
		{"reset-password", "/reset-password", "reset-password [token]", "set a new password with a reset token", (*App).resetPassword},
		{"logout", "", "logout", "log out", (*App).logout},
		{"whoami", "", "whoami", "show the current session", (*App).whoami},
		{"health", "", "health", "check the backend", (*App).health},

		{"dashboard", "/dashboard", "dashboard", "summary, trend chart and spike alert", (*App).dashboard},
		{"tips", "/dashboard", "tips", "list awareness tips", (*App).tips},
		{"logs", "/email-logs", "logs", "reload and list detection logs", (*App).listLogs},
		{"filter", "/email-logs", "filter [status=all|phishing|safe] [min=0..1] [max=0..1] [from=DATE to=DATE]", "filter the logs", (*App).filter},
		{"clear", "/email-logs", "clear", "reset all filters", (*App).clearFilters},
		{"trend", "/email-logs", "trend", "daily phishing ratio of the filtered logs", (*App).trend},
		{"export", "/reports", "export [name]", "export the filtered logs as CSV", (*App).export},
		{"exports", "/exports", "exports", "list earlier exports", (*App).exportHistory},

		{"predict", "/predict", "predict <url>", "classify a URL", (*App).predict},
		{"rescan", "/predict", "rescan <url>", "classify a URL again, bypassing the cache", (*App).rescan},
		{"quarantine", "/quarantine", "quarantine", "list quarantined emails", (*App).quarantine},
		{"feedback", "/quarantine", "feedback <id> phishing|safe", "correct a verdict", (*App).feedback},
		{"scan-inbox", "/scan-inbox", "scan-inbox", "scan the connected inbox", (*App).scanInbox},
		{"scan-eml", "/upload-email", "scan-eml <path>", "scan an .eml file", (*App).scanEML},
		{"chat", "/chat", "chat <message>", "ask the security assistant", (*App).chat},

		{"tip-add", "/admin/tips", "tip-add [text]", "add a tip", (*App).addTip},
		{"tip-edit", "/admin/tips", "tip-edit <id> [text]", "change a tip", (*App).editTip},
		{"tip-rm", "/admin/tips", "tip-rm <id>", "delete a tip", (*App).removeTip},
		{"users", "/admin/users", "users", "list accounts", (*App).users},
		{"approve", "/admin/users", "approve <id>", "approve a pending account", (*App).approve},
		{"reject", "/admin/users", "reject <id>", "reject and delete an account", (*App).reject},
	}
}

// help lists the commands the current session may run.
func (a *App) help(ctx context.Context) {
	a.printf("Available commands:\n")
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, c := range commandTable() {
		if c.path != "" && !a.guard.Allow(ctx, c.path).Allowed {
			continue
		}
		fmt.Fprintf(tw, "  %s\t%s\n", c.usage, c.help)
	}
	fmt.Fprintf(tw, "  help\tshow this list\n")
	fmt.Fprintf(tw, "  exit | quit\tleave the program\n")
	_ = tw.Flush()
}
