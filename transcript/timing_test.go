package transcript

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconcile(t *testing.T) {
	utts := []Utterance{
		{Start: 5, End: 15, Text: "um dois"},
		{Start: 40, End: 50, Text: strings.Repeat("palavra ", 20)},
		{Start: 90, End: 100, Text: "fim"},
	}
	Reconcile(utts)

	assert.Equal(t, 5.0, utts[0].Start)
	assert.Equal(t, 10.0, utts[0].End) // five second floor
	assert.Equal(t, 10.0, utts[1].Start)
	assert.Equal(t, 20.0, utts[1].End) // 20 words * 0.5
	assert.Equal(t, 20.0, utts[2].Start)
	assert.Equal(t, 100.0, utts[2].End) // last keeps its placeholder
}

func TestReconcileExtendsLastWhenEndPrecedesStart(t *testing.T) {
	utts := []Utterance{
		{Start: 0, End: 10, Text: strings.Repeat("a ", 40)},
		{Start: 1, End: 11, Text: "b"},
	}
	Reconcile(utts)
	assert.Equal(t, 20.0, utts[1].Start)
	assert.Equal(t, 25.0, utts[1].End)
}

func TestReconcileEmpty(t *testing.T) {
	assert.NotPanics(t, func() { Reconcile(nil) })
}

func TestReconcileOrdering(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for n := 1; n < 40; n++ {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			utts := make([]Utterance, n)
			for i := range utts {
				start := float64(r.Intn(4000))
				utts[i] = Utterance{Start: start, End: start + 10, Text: strings.Repeat("w ", r.Intn(30))}
			}
			Reconcile(utts)
			for i, u := range utts {
				assert.LessOrEqual(t, u.Start, u.End)
				if i+1 < n {
					assert.LessOrEqual(t, u.End, utts[i+1].Start)
				}
			}
		})
	}
}

func TestTimestamp(t *testing.T) {
	assert.Equal(t, "0:00:05", Timestamp(5.7))
	assert.Equal(t, "1:02:03", Timestamp(3723))
	assert.Equal(t, "12:00:00", Timestamp(43200))
	assert.Equal(t, "0:00:00", Timestamp(-3))
}
