package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"astra/cmd/astra/chat"
	"astra/internal/world"
)

// chatCmd starts the interactive interface
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive conversation",
	RunE:  runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	s, err := a.openSession(ctx, sessionFlag, worldFlag, characterFlag)
	if err != nil {
		return err
	}

	m := chat.New(chat.Config{
		Name:     a.cfg.Companion.Name,
		Session:  s,
		Worlds:   world.Catalog(),
		Profiles: a.profile,
		Context:  ctx,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Session %s saved. Resume with: astra chat --session %s\n", s.ID(), s.ID())
	return nil
}

func init() {
	// chat is also the root default, so both take its flags.
	for _, c := range []*cobra.Command{rootCmd, chatCmd} {
		c.Flags().StringVarP(&sessionFlag, "session", "s", "", "Session id to resume")
		c.Flags().StringVarP(&characterFlag, "character", "c", "", "Saved character to play")
	}
}
