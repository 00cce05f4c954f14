package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/ludo-technologies/buildcheck/domain"
)

// writeGraphML emits the include graph as GraphML, with one node attribute
// per metric named in spec §6's graph export table.
func (f *DSMFormatterImpl) writeGraphML(results domain.DSMAnalysisResults, w io.Writer) error {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<graphml xmlns="http://graphml.graphdrawing.org/xmlns">` + "\n")

	keys := []struct{ id, attrFor, attrType string }{
		{"label", "node", "string"},
		{"path", "node", "string"},
		{"fan_in", "node", "int"},
		{"fan_out", "node", "int"},
		{"coupling", "node", "int"},
		{"stability", "node", "double"},
		{"in_cycle", "node", "boolean"},
	}
	for _, k := range keys {
		b.WriteString(fmt.Sprintf(`  <key id=%q for=%q attr.name=%q attr.type=%q/>`+"\n", k.id, k.attrFor, k.id, k.attrType))
	}

	b.WriteString(`  <graph edgedefault="directed">` + "\n")
	inCycle := make(map[string]bool, len(results.HeadersInCycles))
	for _, h := range results.HeadersInCycles {
		inCycle[h] = true
	}
	for _, h := range results.SortedHeaders {
		m := results.Metrics[h]
		b.WriteString(fmt.Sprintf(`    <node id=%q>`+"\n", h))
		b.WriteString(fmt.Sprintf(`      <data key="label">%s</data>`+"\n", xmlEscape(baseName(h))))
		b.WriteString(fmt.Sprintf(`      <data key="path">%s</data>`+"\n", xmlEscape(h)))
		b.WriteString(fmt.Sprintf(`      <data key="fan_in">%d</data>`+"\n", m.FanIn))
		b.WriteString(fmt.Sprintf(`      <data key="fan_out">%d</data>`+"\n", m.FanOut))
		b.WriteString(fmt.Sprintf(`      <data key="coupling">%d</data>`+"\n", m.Coupling))
		b.WriteString(fmt.Sprintf(`      <data key="stability">%.6f</data>`+"\n", m.Stability))
		b.WriteString(fmt.Sprintf(`      <data key="in_cycle">%t</data>`+"\n", inCycle[h]))
		b.WriteString("    </node>\n")
	}
	edgeID := 0
	for _, h := range results.SortedHeaders {
		for _, dep := range results.DirectedGraph[h] {
			b.WriteString(fmt.Sprintf(`    <edge id="e%d" source=%q target=%q/>`+"\n", edgeID, h, dep))
			edgeID++
		}
	}
	b.WriteString("  </graph>\n</graphml>\n")
	_, err := w.Write([]byte(b.String()))
	return err
}

// writeGEXF emits the include graph as GEXF 1.3.
func (f *DSMFormatterImpl) writeGEXF(results domain.DSMAnalysisResults, w io.Writer) error {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<gexf xmlns="http://gexf.net/1.3" version="1.3">` + "\n")
	b.WriteString(`  <graph mode="static" defaultedgetype="directed">` + "\n")
	b.WriteString(`    <attributes class="node">` + "\n")
	attrs := []string{"path", "fan_in", "fan_out", "coupling", "stability", "in_cycle"}
	attrTypes := map[string]string{"path": "string", "fan_in": "integer", "fan_out": "integer", "coupling": "integer", "stability": "double", "in_cycle": "boolean"}
	for i, a := range attrs {
		b.WriteString(fmt.Sprintf(`      <attribute id="%d" title=%q type=%q/>`+"\n", i, a, attrTypes[a]))
	}
	b.WriteString("    </attributes>\n")

	inCycle := make(map[string]bool, len(results.HeadersInCycles))
	for _, h := range results.HeadersInCycles {
		inCycle[h] = true
	}

	b.WriteString("    <nodes>\n")
	idOf := make(map[string]int, len(results.SortedHeaders))
	for i, h := range results.SortedHeaders {
		idOf[h] = i
		m := results.Metrics[h]
		b.WriteString(fmt.Sprintf(`      <node id="%d" label=%q>`+"\n", i, xmlEscape(baseName(h))))
		b.WriteString("        <attvalues>\n")
		b.WriteString(fmt.Sprintf(`          <attvalue for="0" value=%q/>`+"\n", xmlEscape(h)))
		b.WriteString(fmt.Sprintf(`          <attvalue for="1" value="%d"/>`+"\n", m.FanIn))
		b.WriteString(fmt.Sprintf(`          <attvalue for="2" value="%d"/>`+"\n", m.FanOut))
		b.WriteString(fmt.Sprintf(`          <attvalue for="3" value="%d"/>`+"\n", m.Coupling))
		b.WriteString(fmt.Sprintf(`          <attvalue for="4" value="%.6f"/>`+"\n", m.Stability))
		b.WriteString(fmt.Sprintf(`          <attvalue for="5" value="%t"/>`+"\n", inCycle[h]))
		b.WriteString("        </attvalues>\n      </node>\n")
	}
	b.WriteString("    </nodes>\n    <edges>\n")
	edgeID := 0
	for _, h := range results.SortedHeaders {
		for _, dep := range results.DirectedGraph[h] {
			b.WriteString(fmt.Sprintf(`      <edge id="%d" source="%d" target="%d"/>`+"\n", edgeID, idOf[h], idOf[dep]))
			edgeID++
		}
	}
	b.WriteString("    </edges>\n  </graph>\n</gexf>\n")
	_, err := w.Write([]byte(b.String()))
	return err
}

func xmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
