package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/maastricht-university/edmo-transcript/clients"
	cfg "github.com/maastricht-university/edmo-transcript/config"
	"github.com/maastricht-university/edmo-transcript/logger"
	"github.com/maastricht-university/edmo-transcript/normalize"
	"github.com/maastricht-university/edmo-transcript/rules"
	"github.com/maastricht-university/edmo-transcript/speaker"
	"github.com/maastricht-university/edmo-transcript/topic"
	"github.com/maastricht-university/edmo-transcript/transcript"
)

// Pipeline holds compiled, read-only configuration. One Pipeline may run
// many documents concurrently.
type Pipeline struct {
	cfg        *cfg.Root
	http       *clients.HTTP
	parser     *transcript.Parser
	normalizer *normalize.Normalizer
	classifier *topic.Classifier
	merger     speaker.Merger
	thresholds speaker.Thresholds
	corrector  Corrector
}

type Option func(p *Pipeline)

// WithCorrector overrides the corrector chosen from configuration. Nil
// disables correction.
func WithCorrector(c Corrector) Option { return func(p *Pipeline) { p.corrector = c } }

func WithHTTP(h *clients.HTTP) Option { return func(p *Pipeline) { p.http = h } }

func NewPipeline(c *cfg.Root, set *rules.Set, opts ...Option) (*Pipeline, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if set == nil {
		set = rules.Default()
	}
	n, err := normalize.New(set, c.Level())
	if err != nil {
		return nil, fmt.Errorf("rules: %w", err)
	}
	p := &Pipeline{
		cfg:        c,
		http:       clients.NewHTTP(cfg.DurSeconds(c.Pipeline.Timeout)),
		parser:     transcript.NewParser(transcript.ParserOptions{SectionMarker: c.Parser.SectionMarker}),
		normalizer: n,
		classifier: topic.New(set.Topics, topic.Options{DefaultTopic: c.Topics.DefaultTopic, MaxChars: c.Topics.MaxChars}),
		merger:     speaker.Merger{MaxGap: c.Speakers.MergeGapThreshold},
		thresholds: speaker.Thresholds{
			PauseThreshold:          c.Speakers.PauseThreshold,
			EnergyThreshold:         c.Speakers.EnergyThreshold,
			SecondaryPauseThreshold: c.Speakers.SecondaryPauseThreshold,
			MinDuration:             c.Speakers.MinDuration,
		},
	}
	if g := c.Speakers.MergeGapThreshold; g > 0 && g <= c.Speakers.PauseThreshold {
		logger.Warnf("[Pipeline] merge gap %.1fs is not above the pause threshold %.1fs; same-speaker turns may stay split", g, c.Speakers.PauseThreshold)
	}
	switch {
	case c.LLM.Enabled:
		p.corrector = clients.NewLLMCorrector(&c.LLM)
	case c.Services.Correction.URL != "":
		p.corrector = clients.NewServiceCorrector(p.http, c.Services.Correction.URL)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *Pipeline) Parser() *transcript.Parser { return p.parser }

// Organize cleans doc and groups it by topic.
func (p *Pipeline) Organize(ctx context.Context, source, doc string) (*Result, error) {
	res, err := p.clean(ctx, source, doc)
	if err != nil {
		return nil, err
	}
	if err := p.organize(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Clean parses doc, reconciles timing, normalizes and merges speaker turns
// without classifying topics.
func (p *Pipeline) Clean(ctx context.Context, source, doc string) (*Result, error) {
	return p.clean(ctx, source, doc)
}

func (p *Pipeline) OrganizeFile(ctx context.Context, path string) (*Result, error) {
	doc, err := readDoc(path)
	if err != nil {
		return nil, err
	}
	return p.Organize(ctx, path, doc)
}

func (p *Pipeline) CleanFile(ctx context.Context, path string) (*Result, error) {
	doc, err := readDoc(path)
	if err != nil {
		return nil, err
	}
	return p.Clean(ctx, path, doc)
}

func (p *Pipeline) clean(ctx context.Context, source, doc string) (*Result, error) {
	utts, stats := p.parser.Parse(doc)
	logger.Infof("[Parser] %s: %d utterances, %d malformed lines", filepath.Base(source), len(utts), stats.Malformed)
	res := &Result{
		Source:   source,
		Level:    p.normalizer.Level(),
		Metadata: p.parser.ReadMetadata(doc),
		Stats:    stats,
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	transcript.Reconcile(utts)
	return res, p.refine(ctx, res, utts)
}

// Transcribe seeds utterances from the ASR service, labels speakers from
// the diarization service when configured or heuristically otherwise, and
// runs the remaining stages.
func (p *Pipeline) Transcribe(ctx context.Context, audioPath string) (*Result, error) {
	if p.cfg.Services.ASR.URL == "" {
		return nil, errors.New("services.asr.url is required to transcribe")
	}
	asr, err := p.http.ASR(ctx, p.cfg.Services.ASR.URL, audioPath)
	if err != nil {
		return nil, err
	}
	utts := asr.Utterances()
	logger.Infof("[ASR] %s: %d segments (%s)", filepath.Base(audioPath), len(utts), asr.Language)

	var det speaker.Detector = speaker.NewHeuristic(p.thresholds)
	if url := p.cfg.Services.Diarization.URL; url != "" {
		diar, err := p.http.Diarize(ctx, url, audioPath)
		switch {
		case err != nil:
			logger.Warnf("[Diarization] falling back to pause heuristic: %v", err)
		case len(diar.Turns) == 0:
			logger.Warnf("[Diarization] no turns returned, falling back to pause heuristic")
		default:
			ext := speaker.NewExternal(diar.Turns)
			logger.Infof("[Diarization] %d turns, %d speakers", len(diar.Turns), ext.Speakers())
			det = ext
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	utts = det.Assign(utts)

	res := &Result{
		Source:         audioPath,
		Level:          p.normalizer.Level(),
		MeasuredTiming: true,
		Metadata: []transcript.Field{
			{Marker: "📁", Key: "Arquivo", Value: filepath.Base(audioPath)},
			{Marker: "🤖", Key: "Idioma", Value: asr.Language},
		},
	}
	if err := p.refine(ctx, res, utts); err != nil {
		return nil, err
	}
	if err := p.organize(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// refine normalizes, corrects and merges utts into res.
func (p *Pipeline) refine(ctx context.Context, res *Result, utts []transcript.Utterance) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.normalizer.Apply(utts)

	if p.corrector != nil {
		for i := range utts {
			if err := ctx.Err(); err != nil {
				return err
			}
			if utts[i].Text == "" {
				continue
			}
			fixed, err := p.corrector.Correct(ctx, utts[i].Text)
			if err != nil {
				logger.Warnf("[Correction] keeping original text at %s: %v", transcript.Timestamp(utts[i].Start), err)
				continue
			}
			if fixed = strings.TrimSpace(fixed); fixed != "" && fixed != utts[i].Text {
				utts[i].Text = fixed
				res.Corrected++
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	before := len(utts)
	res.Utterances = p.merger.Merge(utts)
	logger.Debugf("[Pipeline] merged %d utterances into %d", before, len(res.Utterances))
	return nil
}

func (p *Pipeline) organize(ctx context.Context, res *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.classifier.Assign(res.Utterances)
	res.Segments = p.classifier.Segments(res.Utterances)
	for _, s := range res.Segments {
		if s.Heavy {
			logger.Debugf("[Topics] segment %q (%d-%d) has an utterance over the character budget", s.Topic, s.First, s.Last)
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	res.Groups = Aggregate(res.Utterances, p.classifier.DefaultTopic())
	if !res.MeasuredTiming {
		for i := range res.Groups {
			res.Groups[i].OverlapRate = nil
		}
	}
	res.Organized = true
	logger.Infof("[Pipeline] %s: %d utterances in %d topics", filepath.Base(res.Source), len(res.Utterances), len(res.Groups))
	return nil
}
