package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"astra/internal/emotion"
)

var (
	sessionFlag   string
	characterFlag string
	classifyFile  string
	classifyJobs  int
)

// sayCmd sends a single message and prints the reply
var sayCmd = &cobra.Command{
	Use:   "say [message]",
	Short: "Send one message and print Astra's reply",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		reply, err := s.Say(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %s\n", a.cfg.Companion.Name, reply.Text)
		fmt.Fprintf(out, "[%s %s · %s · session %s]\n", reply.Emotion.Emoji(), reply.Emotion, reply.Rule, s.ID())
		if reply.PersistErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: exchange not saved: %v\n", reply.PersistErr)
		}
		return nil
	},
}

// classifyCmd labels text without composing replies
var classifyCmd = &cobra.Command{
	Use:   "classify [text...]",
	Short: "Classify the emotion of each argument (or each line of --file)",
	RunE: func(cmd *cobra.Command, args []string) error {
		texts := args
		if classifyFile != "" {
			lines, err := readLines(classifyFile)
			if err != nil {
				return err
			}
			texts = append(texts, lines...)
		}
		if len(texts) == 0 {
			return fmt.Errorf("nothing to classify: pass text or --file")
		}

		ctx := cmd.Context()
		a, err := newApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		classifier := a.companion.Classifier()
		labels := make([]emotion.Label, len(texts))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(max(1, classifyJobs))
		for i, text := range texts {
			g.Go(func() error {
				labels[i] = classifier.Classify(gctx, text)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for i, text := range texts {
			fmt.Fprintf(out, "%-10s %s  %s\n", labels[i], labels[i].Emoji(), text)
		}
		return nil
	},
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return lines, nil
}

func init() {
	sayCmd.Flags().StringVarP(&sessionFlag, "session", "s", "", "Session id to continue (default: new session)")
	sayCmd.Flags().StringVarP(&characterFlag, "character", "c", "", "Saved character to speak as")

	classifyCmd.Flags().StringVarP(&classifyFile, "file", "f", "", "File with one message per line")
	classifyCmd.Flags().IntVarP(&classifyJobs, "jobs", "j", 4, "Concurrent classifications")
}
