package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/maastricht-university/edmo-transcript/orchestrator"
)

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var out outputOptions
	cmd := &cobra.Command{
		Use:   "transcribe <audio>",
		Short: "Transcribe audio through the ASR service and organize the result",
		Long: "Uploads the audio to services.asr.url, labels speakers with services.diarization.url\n" +
			"when configured (pause heuristic otherwise) and runs the cleanup and topic stages.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.runSingle(cmd, out, func(c context.Context) (*orchestrator.Result, error) {
				return ctx.pipeline.Transcribe(c, args[0])
			}, args[0])
		},
	}
	out.register(cmd)
	return cmd
}
