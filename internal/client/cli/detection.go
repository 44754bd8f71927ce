package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/phishwatch/internal/client/client"
	"github.com/dmitrijs2005/phishwatch/internal/client/models"
	"github.com/dmitrijs2005/phishwatch/internal/common"
	"github.com/dmitrijs2005/phishwatch/internal/filex"
)

const snippetWidth = 60

func verdict(phishing bool) string {
	if phishing {
		return "Phishing"
	}
	return "Safe"
}

func usageError(usage string) error {
	return fmt.Errorf("%w: usage: %s", common.ErrValidation, usage)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not a valid id", common.ErrValidation, s)
	}
	return id, nil
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func (a *App) printPrediction(url string, p models.Prediction) {
	a.printf("%s: %s (confidence %.2f%%)\n", url, verdict(p.Phishing), p.Confidence*100)
}

func (a *App) predict(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("predict <url>")
	}
	p, err := a.api.Predict(ctx, args[0])
	if err != nil {
		return err
	}
	a.printPrediction(args[0], p)
	return nil
}

func (a *App) rescan(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("rescan <url>")
	}
	p, err := a.api.Rescan(ctx, args[0])
	if err != nil {
		return err
	}
	a.printPrediction(args[0], p)
	return nil
}

func (a *App) quarantine(ctx context.Context, _ []string) error {
	emails, err := a.api.Quarantine(ctx)
	if err != nil {
		return err
	}
	if len(emails) == 0 {
		a.printf("Quarantine is empty.\n")
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tSTATUS\tREASON\tTIME\tCONTENT\n")
	for _, e := range emails {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", e.ID, e.Status, e.Reason,
			e.Timestamp.In(a.loc).Format(a.cfg.DateTimeLayout), truncate(e.Content, snippetWidth))
	}
	return tw.Flush()
}

func (a *App) feedback(ctx context.Context, args []string) error {
	const usage = "feedback <id> phishing|safe"
	if len(args) != 2 {
		return usageError(usage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	var phishing bool
	switch strings.ToLower(args[1]) {
	case "phishing":
		phishing = true
	case "safe":
	default:
		return usageError(usage)
	}

	if err := a.api.Feedback(ctx, id, phishing); err != nil {
		return err
	}
	a.printf("Feedback saved: email %d marked %s\n", id, verdict(phishing))
	return nil
}

func (a *App) scanInbox(ctx context.Context, _ []string) error {
	a.printf("Scanning inbox...\n")
	res, err := a.api.ScanInbox(ctx)
	if err != nil {
		return err
	}
	a.printf("Scanned %d emails: %d phishing, %d quarantined\n", res.Scanned, res.PhishingDetected, res.Quarantined)
	if len(res.Emails) == 0 {
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tVERDICT\tCONFIDENCE\tSENDER\tSUBJECT\n")
	for _, e := range res.Emails {
		fmt.Fprintf(tw, "%d\t%s\t%.2f%%\t%s\t%s\n", e.ID, verdict(e.IsPhishing), e.Confidence*100,
			e.Sender, truncate(e.Subject, snippetWidth))
	}
	return tw.Flush()
}

func (a *App) scanEML(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("scan-eml <path>")
	}
	path := args[0]
	name := filepath.Base(path)

	if err := client.ValidateEML(name, 0); err != nil {
		return err
	}
	content, err := filex.ReadLimited(path, client.MaxEMLSize)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	res, err := a.api.ScanEML(ctx, name, content)
	if err != nil {
		return err
	}
	a.printf("%s: %s (confidence %.2f%%)\n", name, verdict(res.IsPhishing), res.Confidence*100)
	if res.Quarantined {
		if res.EmailID != nil {
			a.printf("Quarantined as email %d\n", *res.EmailID)
		} else {
			a.printf("Quarantined\n")
		}
	}
	return nil
}

func (a *App) chat(ctx context.Context, args []string) error {
	msg := strings.Join(args, " ")
	if msg == "" {
		return usageError("chat <message>")
	}
	reply, err := a.api.Chat(ctx, msg)
	if err != nil {
		return err
	}
	a.printf("assistant: %s\n", reply)
	return nil
}
