package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
)

type sessionInfo struct {
	Name     string `json:"name"`
	Windows  int    `json:"windows"`
	Attached bool   `json:"attached"`
}

func runSessions(ctx context.Context, cmd *cli.Command, deps Dependencies) error {
	start := time.Now()
	asJSON := cmd.Bool("json")

	infos, err := listSessions(ctx, deps)
	if asJSON {
		return deps.emitJSON("sessions", start, map[string]any{"sessions": infos}, err)
	}
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Fprintln(deps.Stdout, "no sessions")
		return nil
	}
	for _, info := range infos {
		marker := " "
		if info.Attached {
			marker = "*"
		}
		fmt.Fprintf(deps.Stdout, "%s %-20s %d windows\n", marker, info.Name, info.Windows)
	}
	return nil
}

func listSessions(ctx context.Context, deps Dependencies) ([]sessionInfo, error) {
	client, err := deps.Client()
	if err != nil {
		return nil, err
	}
	sessions, err := client.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	infos := make([]sessionInfo, 0, len(sessions))
	for _, s := range sessions {
		infos = append(infos, sessionInfo{Name: s.Name, Windows: s.Windows, Attached: s.Attached})
	}
	return infos, nil
}

func runSwitch(ctx context.Context, cmd *cli.Command, deps Dependencies) error {
	target, err := requireArg(cmd, 0, "SESSION")
	if err != nil {
		return err
	}
	client, err := deps.Client()
	if err != nil {
		return err
	}
	return client.Attach(ctx, target)
}

func runNew(ctx context.Context, cmd *cli.Command, deps Dependencies) error {
	name := cmd.Args().Get(0)
	client, err := deps.Client()
	if err != nil {
		return err
	}
	if err := client.NewSession(ctx, name); err != nil {
		return err
	}
	if name != "" {
		return client.Attach(ctx, name)
	}
	return nil
}

func runRename(ctx context.Context, cmd *cli.Command, deps Dependencies) error {
	oldName, err := requireArg(cmd, 0, "OLD")
	if err != nil {
		return err
	}
	newName, err := requireArg(cmd, 1, "NEW")
	if err != nil {
		return err
	}
	client, err := deps.Client()
	if err != nil {
		return err
	}
	return client.RenameSession(ctx, oldName, newName)
}

func runKill(ctx context.Context, cmd *cli.Command, deps Dependencies) error {
	target, err := requireArg(cmd, 0, "SESSION")
	if err != nil {
		return err
	}
	if !cmd.Bool("yes") {
		ok, err := confirmKill(target)
		if err != nil {
			return err
		}
		if !ok {
			return cli.Exit("", 1)
		}
	}
	client, err := deps.Client()
	if err != nil {
		return err
	}
	return client.KillSession(ctx, target)
}

func confirmKill(target string) (bool, error) {
	confirmed := false
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Kill session %q?", target)).
			Description("Every window and pane in it will be destroyed.").
			Value(&confirmed),
	))
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return confirmed, nil
}
