// Package graphviz renders a net as a graphviz figure: places as circles,
// transitions as boxes, arcs as weighted edges.
package graphviz

import (
	"fmt"
	"io"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/cpnkit/cpn"
)

var _ cpn.Flusher[*cpn.Net] = (*Writer)(nil)

type Font string

func (f Font) Or(other Font) Font {
	return f + "," + other
}

const (
	Helvetica Font = "Helvetica"
	Arial     Font = "Arial"
	SansSerif Font = "sans-serif"
	Serif     Font = "Serif"
	Times     Font = "Times"
)

type RankDir string

const (
	LeftToRight RankDir = "LR"
	RightToLeft RankDir = "RL"
	TopToBottom RankDir = "TB"
	BottomToTop RankDir = "BT"
)

type Format string

const (
	DOT Format = Format(graphviz.XDOT)
	SVG Format = Format(graphviz.SVG)
	PNG Format = Format(graphviz.PNG)
)

type Config struct {
	Name string
	Font
	RankDir
	Format
}

type Writer struct {
	*Config
}

func New(config *Config) *Writer {
	if config.Name == "" {
		config.Name = "cpn"
	}
	if config.Font == "" {
		config.Font = Helvetica
	}
	if config.Format == "" {
		config.Format = DOT
	}
	return &Writer{Config: config}
}

// builder walks the net as a Visitor, creating one graph node per place and
// transition and one edge per arc.
type builder struct {
	g     *cgraph.Graph
	font  Font
	nodes map[string]*cgraph.Node
	edges int
}

func (b *builder) VisitPlace(p *cpn.Place) error {
	node, err := b.g.CreateNode(fmt.Sprintf("p%d", len(b.nodes)))
	if err != nil {
		return err
	}
	node.SetShape(cgraph.CircleShape)
	node.SetLabel(p.Name)
	node.Set("fontname", string(b.font))
	b.nodes[p.ID] = node
	return nil
}

func (b *builder) VisitTransition(t *cpn.Transition) error {
	node, err := b.g.CreateNode(fmt.Sprintf("t%d", len(b.nodes)))
	if err != nil {
		return err
	}
	node.SetShape(cgraph.BoxShape)
	node.SetLabel(t.Name)
	node.Set("fontname", string(b.font))
	b.nodes[t.ID] = node
	return nil
}

func (b *builder) VisitArc(a cpn.Arc) error {
	place := b.nodes[a.Place().ID]
	trans := b.nodes[a.Owner().ID]
	if place == nil || trans == nil {
		return fmt.Errorf("arc %s references an unvisited node", a)
	}
	src, dst := place, trans
	if _, ok := a.(*cpn.OutputArc); ok {
		src, dst = trans, place
	}
	b.edges++
	edge, err := b.g.CreateEdge(fmt.Sprintf("a%d", b.edges), src, dst)
	if err != nil {
		return err
	}
	if a.Weight() > 1 {
		edge.SetLabel(fmt.Sprintf("%d", a.Weight()))
	}
	return nil
}

func (w *Writer) Flush(out io.Writer, net *cpn.Net) error {
	gv := graphviz.New()
	defer func() {
		_ = gv.Close()
	}()
	g, err := gv.Graph()
	if err != nil {
		return err
	}
	g.SetRankDir(cgraph.RankDir(w.RankDir))
	b := &builder{
		g:     g,
		font:  w.Font,
		nodes: make(map[string]*cgraph.Node),
	}
	if err := net.Accept(b); err != nil {
		return err
	}
	return gv.Render(g, graphviz.Format(w.Format), out)
}
