package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maastricht-university/edmo-transcript/rules"
)

func newRulesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Show the active vocabulary, filler and topic rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			set := ctx.set

			vocab := newReport("Canonical", "Variants")
			for _, r := range set.Vocabulary {
				vocab.row(r.Canonical, strings.Join(r.Variants, ", "))
			}
			fmt.Fprintln(w, vocab)

			fillers := newReport("Level", "Patterns", "Fillers").alignRight(2)
			for _, l := range []rules.Level{rules.Light, rules.Medium, rules.Aggressive} {
				name := string(l)
				if l == ctx.conf.Level() {
					name += "*"
				}
				patterns := set.Fillers.Patterns(l)
				fillers.row(name, strconv.Itoa(len(patterns)), strings.Join(patterns, " "))
			}
			fmt.Fprintln(w, fillers)

			topics := newReport("Topic", "Keywords")
			for _, t := range set.Topics {
				topics.row(t.Name, strings.Join(t.Keywords, ", "))
			}
			fmt.Fprintln(w, topics)
			return nil
		},
	}
}
