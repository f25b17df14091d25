package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"astra/internal/config"
	"astra/internal/store"
	"astra/internal/world"
)

var (
	historyLimit int
	worldsRaw    bool
	configForce  bool
)

// historyCmd shows stored sessions or one session's exchanges
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored sessions, or show one with --session",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		out := cmd.OutOrStdout()
		if sessionFlag == "" {
			sums, err := a.store.ListSessions(ctx, historyLimit)
			if err != nil {
				return err
			}
			if len(sums) == 0 {
				fmt.Fprintln(out, "No conversations yet.")
				return nil
			}
			for _, s := range sums {
				fmt.Fprintf(out, "%s  %3d exchanges  last %s\n", s.SessionID, s.Exchanges, s.LastAt.Local().Format(time.DateTime))
			}
			return nil
		}

		xs, err := a.store.RecentExchanges(ctx, sessionFlag, historyLimit)
		if err != nil {
			return err
		}
		if len(xs) == 0 {
			fmt.Fprintf(out, "No exchanges for session %s.\n", sessionFlag)
			return nil
		}
		for _, x := range xs {
			where := ""
			if x.WorldID != "" {
				where = " @" + x.WorldID
			}
			fmt.Fprintf(out, "[%s%s] you (%s %s): %s\n", x.At.Local().Format(time.TimeOnly), where, x.Emotion.Emoji(), x.Emotion, x.PlayerText)
			fmt.Fprintf(out, "%s%s: %s\n", strings.Repeat(" ", 11), a.cfg.Companion.Name, x.ReplyText)
		}
		return nil
	},
}

// worldsCmd renders the world catalog
var worldsCmd = &cobra.Command{
	Use:   "worlds",
	Short: "Describe the worlds Astra can talk about",
	RunE: func(cmd *cobra.Command, args []string) error {
		md := worldsMarkdown(world.Catalog())
		if worldsRaw {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}

		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err != nil {
			return fmt.Errorf("failed to create renderer: %w", err)
		}
		rendered, err := r.Render(md)
		if err != nil {
			return fmt.Errorf("failed to render: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), rendered)
		return nil
	},
}

func worldsMarkdown(reg *world.Registry) string {
	var sb strings.Builder
	sb.WriteString("# Worlds\n\n")
	for _, w := range reg.List() {
		fmt.Fprintf(&sb, "## %s %s (`%s`)\n\n%s\n\n", w.Icon, w.Name, w.ID, w.Description)
		if len(w.Topics) > 0 {
			fmt.Fprintf(&sb, "Ask about: %s\n\n", strings.Join(w.Topics, ", "))
		}
	}
	return sb.String()
}

// profileCmd manages saved characters
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage saved characters",
}

var profileSaveCmd = &cobra.Command{
	Use:   "save [name] [class]",
	Short: "Create or update a character (Explorer, Scholar, Mystic)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		ch, err := a.store.SaveProfile(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s the %s.\n", ch.Name, ch.Class)
		return nil
	},
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved characters",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		chars, err := a.store.ListProfiles(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(chars) == 0 {
			fmt.Fprintln(out, "No characters yet. Try: astra profile save Nova Mystic")
			return nil
		}
		for _, ch := range chars {
			fmt.Fprintf(out, "%-16s %s\n", ch.Name, ch.Class)
		}
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show one character",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		ch, err := a.store.GetProfile(ctx, args[0])
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no character named %q", args[0])
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s the %s (since %s)\n", ch.Name, ch.Class, ch.CreatedAt.Local().Format(time.DateOnly))
		return nil
	},
}

// configCmd manages the config file
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configPath); err == nil && !configForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
		}
		if err := config.DefaultConfig().Save(configPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", configPath)
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVarP(&sessionFlag, "session", "s", "", "Session id to show")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum rows")

	worldsCmd.Flags().BoolVar(&worldsRaw, "raw", false, "Print markdown without rendering")

	profileCmd.AddCommand(profileSaveCmd, profileListCmd, profileShowCmd)

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
}
