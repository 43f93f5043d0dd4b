package orchestrator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

type PersistBundle struct {
	SessionID   string    `json:"session_id"`
	GeneratedAt time.Time `json:"generated_at"`
	*Result
}

func mkSessionDir(outputsRoot string) (string, string, error) {
	ts := time.Now().Format("20060102-150405")
	sid := "session_" + ts + "_" + uuid.NewString()[:8]
	dir := filepath.Join(outputsRoot, sid)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}
	return sid, dir, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeText(path string, res *Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return res.Render(f)
}

// Persist writes result.json and the rendered transcript.txt into a new
// session directory under outputsRoot.
func Persist(outputsRoot string, res *Result) (sessionID, dir string, err error) {
	sid, outDir, err := mkSessionDir(outputsRoot)
	if err != nil {
		return "", "", err
	}
	bundle := PersistBundle{SessionID: sid, GeneratedAt: time.Now(), Result: res}
	if err = writeJSON(filepath.Join(outDir, "result.json"), bundle); err != nil {
		return "", "", err
	}
	if err = writeText(filepath.Join(outDir, "transcript.txt"), res); err != nil {
		return "", "", err
	}
	return sid, outDir, nil
}
