package graphviz_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cpnkit/cpn"
	"github.com/cpnkit/cpn/graphviz"
)

func pipeline() *cpn.Net {
	queue := cpn.NewPlace("queue", 0)
	done := cpn.NewPlace("done", 0)
	process := cpn.NewTransition("process").
		AddInput(cpn.In(queue).WithWeight(2)).
		AddOutput(cpn.Out(done))
	return cpn.NewNet("pipeline").
		WithPlaces(queue, done).
		WithTransitions(process)
}

func TestWriter_Flush(t *testing.T) {
	w := graphviz.New(&graphviz.Config{
		Font:    graphviz.Helvetica,
		RankDir: graphviz.LeftToRight,
	})
	var buf bytes.Buffer
	if err := w.Flush(&buf, pipeline()); err != nil {
		t.Fatal(err)
	}
	dot := buf.String()
	for _, label := range []string{"queue", "done", "process"} {
		if !strings.Contains(dot, label) {
			t.Errorf("rendered graph is missing %q", label)
		}
	}
}
