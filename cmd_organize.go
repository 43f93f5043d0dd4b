package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/spf13/cobra"

	"github.com/maastricht-university/edmo-transcript/logger"
	"github.com/maastricht-university/edmo-transcript/orchestrator"
)

// outputOptions control where a finished result goes.
type outputOptions struct {
	dir    string
	json   bool
	stdout bool
}

func (o *outputOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.dir, "output", "o", "", "Session directory root (default paths.outputs)")
	cmd.Flags().BoolVar(&o.json, "json", false, "Print the result as JSON instead of writing a session")
	cmd.Flags().BoolVar(&o.stdout, "stdout", false, "Print the rendered transcript instead of writing a session")
}

type outcome struct {
	source string
	res    *orchestrator.Result
	dir    string
	err    error
}

// emit writes res according to o and returns the session directory, if
// one was written.
func (c *commandContext) emit(w io.Writer, o outputOptions, res *orchestrator.Result) (string, error) {
	switch {
	case o.json:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return "", enc.Encode(res)
	case o.stdout:
		return "", res.Render(w)
	}
	root := o.dir
	if root == "" {
		root = c.conf.Paths.Outputs
	}
	sid, dir, err := orchestrator.Persist(root, res)
	if err != nil {
		return "", fmt.Errorf("persist %s: %w", res.Source, err)
	}
	logger.Infof("[Persist] %s -> %s", filepath.Base(res.Source), sid)
	return dir, nil
}

func summary(outcomes []outcome) string {
	r := newReport("File", "Segments", "Speakers", "Topics", "Corrected", "Output").alignRight(2, 3, 4, 5)
	for _, o := range outcomes {
		if o.err != nil {
			r.row(filepath.Base(o.source), "-", "-", "-", "-", "error: "+o.err.Error())
			continue
		}
		r.row(
			filepath.Base(o.source),
			strconv.Itoa(len(o.res.Utterances)),
			strconv.Itoa(o.res.Speakers()),
			strconv.Itoa(len(o.res.Groups)),
			strconv.Itoa(o.res.Corrected),
			o.dir,
		)
	}
	return r.String()
}

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var out outputOptions
	var jobs int
	cmd := &cobra.Command{
		Use:   "organize <file>...",
		Short: "Clean transcripts and group them by topic",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if jobs < 1 {
				jobs = 1
			}
			outcomes := make([]outcome, len(args))
			var mu sync.Mutex // serializes writes to stdout
			var wg sync.WaitGroup
			sem := make(chan struct{}, jobs)
			for i, path := range args {
				wg.Add(1)
				go func(i int, path string) {
					defer wg.Done()
					sem <- struct{}{}
					defer func() { <-sem }()

					o := outcome{source: path}
					o.res, o.err = ctx.pipeline.OrganizeFile(cmd.Context(), path)
					if o.err == nil {
						mu.Lock()
						o.dir, o.err = ctx.emit(cmd.OutOrStdout(), out, o.res)
						mu.Unlock()
					}
					if o.err != nil {
						logger.Errorf("[Organize] %s: %v", path, o.err)
					}
					outcomes[i] = o
				}(i, path)
			}
			wg.Wait()

			var errs []error
			for _, o := range outcomes {
				if o.err != nil {
					errs = append(errs, o.err)
				}
			}
			if !out.json && !out.stdout {
				fmt.Fprintln(cmd.OutOrStdout(), summary(outcomes))
			}
			if err := cmd.Context().Err(); err != nil {
				return err
			}
			return errors.Join(errs...)
		},
	}
	out.register(cmd)
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 1, "Number of files processed concurrently")
	return cmd
}

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var out outputOptions
	cmd := &cobra.Command{
		Use:   "clean <file>",
		Short: "Clean a transcript without organizing it by topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.runSingle(cmd, out, func(c context.Context) (*orchestrator.Result, error) {
				return ctx.pipeline.CleanFile(c, args[0])
			}, args[0])
		},
	}
	out.register(cmd)
	return cmd
}

func (c *commandContext) runSingle(cmd *cobra.Command, out outputOptions, run func(context.Context) (*orchestrator.Result, error), source string) error {
	o := outcome{source: source}
	o.res, o.err = run(cmd.Context())
	if o.err != nil {
		return o.err
	}
	if o.dir, o.err = c.emit(cmd.OutOrStdout(), out, o.res); o.err != nil {
		return o.err
	}
	if !out.json && !out.stdout {
		fmt.Fprintln(cmd.OutOrStdout(), summary([]outcome{o}))
	}
	return nil
}
