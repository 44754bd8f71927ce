package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
)

// tipText joins args or, when there are none, reads a multi-line tip.
func (a *App) tipText(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	return getMultiline(a.reader, "Enter tip text", a.out)
}

func (a *App) addTip(ctx context.Context, args []string) error {
	text, err := a.tipText(args)
	if err != nil {
		return err
	}
	if text == "" {
		return usageError("tip-add [text]")
	}
	if err := a.api.AddTip(ctx, text); err != nil {
		return err
	}
	a.printf("Tip added.\n")
	return nil
}

func (a *App) editTip(ctx context.Context, args []string) error {
	const usage = "tip-edit <id> [text]"
	if len(args) == 0 {
		return usageError(usage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	text, err := a.tipText(args[1:])
	if err != nil {
		return err
	}
	if text == "" {
		return usageError(usage)
	}
	if err := a.api.UpdateTip(ctx, id, text); err != nil {
		return err
	}
	a.printf("Tip %d updated.\n", id)
	return nil
}

func (a *App) removeTip(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("tip-rm <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := a.api.DeleteTip(ctx, id); err != nil {
		return err
	}
	a.printf("Tip %d deleted.\n", id)
	return nil
}

func (a *App) users(ctx context.Context, _ []string) error {
	list, err := a.api.Users(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.printf("No users.\n")
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tEMAIL\tROLE\tSTATUS\n")
	for _, u := range list {
		status := "pending"
		if u.Approved {
			status = "approved"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", u.ID, u.Email, u.Role, status)
	}
	return tw.Flush()
}

func (a *App) approve(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("approve <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	msg, err := a.api.ApproveUser(ctx, id)
	if err != nil {
		return err
	}
	a.printf("%s\n", msg)
	return nil
}

func (a *App) reject(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("reject <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	msg, err := a.api.RejectUser(ctx, id)
	if err != nil {
		return err
	}
	a.printf("%s\n", msg)
	return nil
}
