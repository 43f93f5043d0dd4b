package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/maastricht-university/edmo-transcript/clients"
	cfg "github.com/maastricht-university/edmo-transcript/config"
	"github.com/maastricht-university/edmo-transcript/speaker"
	"github.com/maastricht-university/edmo-transcript/transcript"
)

type mockCorrector struct {
	mock.Mock
}

func (m *mockCorrector) Correct(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

func testConfig(t *testing.T) *cfg.Root {
	t.Helper()
	chdir(t, t.TempDir())
	c, err := cfg.Load("")
	require.NoError(t, err)
	return c
}

func newTestPipeline(t *testing.T, opts ...Option) *Pipeline {
	t.Helper()
	p, err := NewPipeline(testConfig(t), nil, opts...)
	require.NoError(t, err)
	return p
}

func texts(utts []transcript.Utterance) []string {
	out := make([]string, len(utts))
	for i, u := range utts {
		out[i] = u.Text
	}
	return out
}

func TestOrganizeNormalizesVocabularyAndFillers(t *testing.T) {
	p := newTestPipeline(t)
	res, err := p.Organize(context.Background(), "a.txt", "[0:00:05] Speaker 1: bit e chat IPT, né, muito bom")
	require.NoError(t, err)

	require.Len(t, res.Utterances, 1)
	assert.Equal(t, "Pitch e ChatGPT muito bom.", res.Utterances[0].Text)
	assert.Equal(t, 5.0, res.Utterances[0].Start)
	require.Len(t, res.Groups, 1)
	assert.Equal(t, "General", res.Groups[0].Topic)
	assert.True(t, res.Organized)
}

func TestOrganizeInheritsTopic(t *testing.T) {
	doc := "[0:00:01] Speaker 1: o problema é a dor do cliente\n[0:00:30] Speaker 2: e isso acontece sempre"
	res, err := newTestPipeline(t).Organize(context.Background(), "a.txt", doc)
	require.NoError(t, err)

	require.Len(t, res.Utterances, 2)
	assert.Equal(t, "Problema", res.Utterances[0].Topic)
	assert.Equal(t, "Problema", res.Utterances[1].Topic)
	require.Len(t, res.Groups, 1)
	assert.True(t, res.Groups[0].Entries[1].SpeakerChange)
}

func TestOrganizeMalformedHeaderKeepsCount(t *testing.T) {
	doc := "[0:00:01] Speaker 1: primeira\n[0:xx:05] Speaker 2: segue\n[0:00:09] Speaker 2: segunda"
	res, err := newTestPipeline(t).Organize(context.Background(), "a.txt", doc)
	require.NoError(t, err)
	assert.Len(t, res.Utterances, 2)
	assert.Zero(t, res.Stats.Malformed)
}

func TestOrganizeEmptyInput(t *testing.T) {
	res, err := newTestPipeline(t).Organize(context.Background(), "a.txt", "")
	require.NoError(t, err)
	assert.Empty(t, res.Utterances)
	assert.Empty(t, res.Groups)
}

func TestOrganizeGroupsByFirstAppearance(t *testing.T) {
	doc := `TRANSCRIÇÃO
[0:00:01] Speaker 1: nossa solução é um aplicativo
[0:00:20] Speaker 2: o problema é a dor
[0:00:40] Speaker 1: o sistema tem um fluxo simples
`
	res, err := newTestPipeline(t).Organize(context.Background(), "a.txt", doc)
	require.NoError(t, err)

	require.Len(t, res.Groups, 2)
	assert.Equal(t, "Solução", res.Groups[0].Topic)
	assert.Equal(t, "Problema", res.Groups[1].Topic)
	assert.Equal(t, len(res.Utterances), Count(res.Groups))
	assert.Len(t, res.Segments, 3)

	assert.False(t, res.MeasuredTiming)
	for _, g := range res.Groups {
		assert.Nil(t, g.OverlapRate, g.Topic)
	}
}

func TestOrganizeMergesAdjacentSpeakerTurns(t *testing.T) {
	doc := "[0:00:01] Speaker 1: primeira parte\n[0:00:03] Speaker 1: segunda parte\n[0:00:09] Speaker 2: outra pessoa"
	res, err := newTestPipeline(t).Organize(context.Background(), "a.txt", doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Primeira parte. Segunda parte.", "Outra pessoa."}, texts(res.Utterances))
}

func TestOrganizeRendersReparseableOutput(t *testing.T) {
	doc := "📁 Arquivo: pitch.m4a\n🤖 Modelo: large\nTRANSCRIÇÃO\n" +
		"[0:00:01] Speaker 1: nossa solução é um aplicativo\n[0:00:20] Speaker 2: o problema é a dor\n"
	p := newTestPipeline(t)
	res, err := p.Organize(context.Background(), "in/pitch_bruto.txt", doc)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, res.Render(&buf))
	out := buf.String()
	assert.Contains(t, out, "📁 Arquivo original: pitch.m4a")
	assert.Contains(t, out, "🤖 Modelo: large")
	assert.Contains(t, out, "🔧 Modo limpeza: medium")
	assert.Contains(t, out, "📑 Tópicos: 2")
	assert.Contains(t, out, "📑 SOLUÇÃO")

	again, _ := p.Parser().Parse(out)
	assert.Equal(t, texts(res.Utterances), texts(again))
}

func TestCleanRendersFlat(t *testing.T) {
	res, err := newTestPipeline(t).Clean(context.Background(), "a.txt", "[0:00:01] Speaker 1: o problema é a dor")
	require.NoError(t, err)
	assert.False(t, res.Organized)
	assert.Empty(t, res.Utterances[0].Topic)

	var buf bytes.Buffer
	require.NoError(t, res.Render(&buf))
	assert.Contains(t, buf.String(), transcript.CleanedTitle)
	assert.NotContains(t, buf.String(), "📑 PROBLEMA")
}

func TestOrganizeWithCorrector(t *testing.T) {
	m := new(mockCorrector)
	m.On("Correct", mock.Anything, "Primeira fala.").Return("Primeira fala revisada.", nil)
	m.On("Correct", mock.Anything, "Segunda fala.").Return("", errors.New("timeout"))

	doc := "[0:00:01] Speaker 1: primeira fala\n[0:00:09] Speaker 2: segunda fala"
	res, err := newTestPipeline(t, WithCorrector(m)).Organize(context.Background(), "a.txt", doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Primeira fala revisada.", "Segunda fala."}, texts(res.Utterances))
	assert.Equal(t, 1, res.Corrected)
	m.AssertExpectations(t)
}

func TestOrganizeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestPipeline(t).Organize(ctx, "a.txt", "[0:00:01] Speaker 1: x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOrganizeFileMissing(t *testing.T) {
	_, err := newTestPipeline(t).OrganizeFile(context.Background(), "missing.txt")
	assert.ErrorIs(t, err, transcript.ErrMissingSource)
}

func TestOrganizeFile(t *testing.T) {
	p := newTestPipeline(t)
	require.NoError(t, os.WriteFile("bruto.txt", []byte("[0:00:01] Speaker 1: o time"), 0o644))
	res, err := p.OrganizeFile(context.Background(), "bruto.txt")
	require.NoError(t, err)
	assert.Equal(t, "Time", res.Utterances[0].Topic)

	cleaned, err := p.CleanFile(context.Background(), "bruto.txt")
	require.NoError(t, err)
	assert.Equal(t, "O time.", cleaned.Utterances[0].Text)
}

func TestNewPipelineRejectsInvalidConfig(t *testing.T) {
	c := testConfig(t)
	c.Cleanup.Level = "extreme"
	_, err := NewPipeline(c, nil)
	assert.ErrorContains(t, err, "cleanup.level")
}

func collaborators(t *testing.T, turns []speaker.Turn) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/transcribe", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(clients.ASRResp{Language: "pt", Segments: []clients.TransSeg{
			{Start: 0, End: 2, Text: "bom dia, né"},
			{Start: 2.5, End: 5, Text: "o problema é a dor"},
			{Start: 9, End: 12, Text: "nossa solução"},
		}})
	})
	mux.HandleFunc("/diarize", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(clients.DiarResp{Turns: turns})
	})
	return httptest.NewServer(mux)
}

func TestTranscribe(t *testing.T) {
	tests := []struct {
		name        string
		diarization bool
		turns       []speaker.Turn
	}{
		{"heuristic speakers", false, nil},
		{"external speakers", true, []speaker.Turn{{Start: 0, End: 5, Speaker: "SPEAKER_07"}, {Start: 5, End: 12, Speaker: "SPEAKER_02"}}},
		{"empty diarization falls back", true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := collaborators(t, tt.turns)
			defer srv.Close()

			c := testConfig(t)
			c.Services.ASR.URL = srv.URL
			if tt.diarization {
				c.Services.Diarization.URL = srv.URL
			}
			p, err := NewPipeline(c, nil)
			require.NoError(t, err)

			audio := filepath.Join(t.TempDir(), "pitch.wav")
			require.NoError(t, os.WriteFile(audio, []byte("RIFF"), 0o644))

			res, err := p.Transcribe(context.Background(), audio)
			require.NoError(t, err)
			assert.Equal(t, []string{"Bom dia. O problema é a dor.", "Nossa solução."}, texts(res.Utterances))
			assert.Equal(t, "Speaker 1", res.Utterances[0].Speaker)
			assert.Equal(t, "Speaker 2", res.Utterances[1].Speaker)
			assert.Equal(t, "Problema", res.Utterances[0].Topic)
			assert.Equal(t, "Solução", res.Utterances[1].Topic)
			assert.True(t, res.Organized)
			assert.True(t, res.MeasuredTiming)
			for _, g := range res.Groups {
				require.NotNil(t, g.OverlapRate, g.Topic)
				assert.Zero(t, *g.OverlapRate)
			}
		})
	}
}

func TestTranscribeDefaultsMergeShortPauses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(clients.ASRResp{Language: "pt", Segments: []clients.TransSeg{
			{Start: 0, End: 2, Text: "primeira ideia"},
			{Start: 4.2, End: 6, Text: "segunda ideia"},
		}})
	}))
	defer srv.Close()

	c := testConfig(t)
	c.Services.ASR.URL = srv.URL
	p, err := NewPipeline(c, nil)
	require.NoError(t, err)

	audio := filepath.Join(t.TempDir(), "pitch.wav")
	require.NoError(t, os.WriteFile(audio, []byte("RIFF"), 0o644))

	res, err := p.Transcribe(context.Background(), audio)
	require.NoError(t, err)
	assert.Equal(t, []string{"Primeira ideia. Segunda ideia."}, texts(res.Utterances))
}

func TestTranscribeRequiresASR(t *testing.T) {
	_, err := newTestPipeline(t).Transcribe(context.Background(), "x.wav")
	assert.ErrorContains(t, err, "services.asr.url")
}

func TestPersist(t *testing.T) {
	res, err := newTestPipeline(t).Organize(context.Background(), "a.txt", "[0:00:01] Speaker 1: o problema")
	require.NoError(t, err)

	root := t.TempDir()
	sid, dir, err := Persist(root, res)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, sid), dir)
	assert.Regexp(t, `^session_\d{8}-\d{6}_[0-9a-f]{8}$`, sid)

	raw, err := os.ReadFile(filepath.Join(dir, "result.json"))
	require.NoError(t, err)
	var bundle struct {
		SessionID  string                 `json:"session_id"`
		Utterances []transcript.Utterance `json:"utterances"`
		Groups     []Group                `json:"groups"`
	}
	require.NoError(t, json.Unmarshal(raw, &bundle))
	assert.NotContains(t, string(raw), "overlap_rate")
	assert.Equal(t, sid, bundle.SessionID)
	require.Len(t, bundle.Groups, 1)
	assert.Equal(t, "Problema", bundle.Groups[0].Topic)

	txt, err := os.ReadFile(filepath.Join(dir, "transcript.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(txt), "📑 PROBLEMA")
}
