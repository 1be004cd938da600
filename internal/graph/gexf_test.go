// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package graph

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"
)

const networkxGEXF = `<?xml version='1.0' encoding='utf-8'?>
<gexf xmlns="http://www.gexf.net/1.2draft" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" version="1.2">
  <meta lastmodifieddate="2024-05-01">
    <creator>NetworkX 3.2</creator>
  </meta>
  <graph defaultedgetype="directed" mode="static" name="">
    <attributes mode="static" class="node">
      <attribute id="0" title="level" type="long" />
      <attribute id="1" title="reading_on" type="string" />
      <attribute id="2" title="reading_kun" type="string" />
      <attribute id="3" title="strokes" type="long" />
    </attributes>
    <nodes>
      <node id="持" label="持">
        <attvalues>
          <attvalue for="0" value="8" />
          <attvalue for="1" value="['ジ']" />
          <attvalue for="2" value="['も（つ）']" />
          <attvalue for="3" value="9" />
        </attvalues>
      </node>
      <node id="扌" label="扌">
        <attvalues>
          <attvalue for="0" value="-1" />
        </attvalues>
      </node>
      <node id="指" label="指">
        <attvalues>
          <attvalue for="0" value="7.0" />
        </attvalues>
      </node>
    </nodes>
    <edges>
      <edge source="扌" target="持" id="0" />
      <edge source="扌" target="指" id="1" />
    </edges>
  </graph>
</gexf>`

func TestReadGEXF(t *testing.T) {
	t.Parallel()

	s, err := ReadGEXF(strings.NewReader(networkxGEXF))
	if err != nil {
		t.Fatalf("ReadGEXF() error = %v", err)
	}
	if got := s.Symbols(); !slices.Equal(got, []string{"持", "扌", "指"}) {
		t.Errorf("Symbols() = %v", got)
	}
	if got := s.Level("指"); got != 7 {
		t.Errorf("Level(指) = %d, want 7", got)
	}
	if got := s.Strokes("持"); got != 9 {
		t.Errorf("Strokes(持) = %d, want 9", got)
	}
	if got := s.Successors("扌"); !slices.Equal(got, []string{"持", "指"}) {
		t.Errorf("Successors(扌) = %v", got)
	}
	on, kun := s.Readings("持")
	if !slices.Equal(on, []string{"ジ"}) || !slices.Equal(kun, []string{"も（つ）"}) {
		t.Errorf("Readings(持) = %q, %q", on, kun)
	}
}

func TestGEXFRoundTrip(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	b.AddKanji("持", 8, "['ジ']", "['も（つ）']", IntPtr(9))
	b.AddComponent("扌", "持")
	b.SetCommonWord("持", "持つ")
	orig := b.Build()

	var buf bytes.Buffer
	if err := WriteGEXF(&buf, orig); err != nil {
		t.Fatalf("WriteGEXF() error = %v", err)
	}
	got, err := ReadGEXF(&buf)
	if err != nil {
		t.Fatalf("ReadGEXF() error = %v", err)
	}

	if !slices.Equal(got.Symbols(), orig.Symbols()) {
		t.Errorf("Symbols() = %v, want %v", got.Symbols(), orig.Symbols())
	}
	if !slices.Equal(got.Edges(), orig.Edges()) {
		t.Errorf("Edges() = %v, want %v", got.Edges(), orig.Edges())
	}
	if w, ok := got.CommonWord("持"); !ok || w != "持つ" {
		t.Errorf("CommonWord(持) = %q, %v", w, ok)
	}
	n, _ := got.Node("扌")
	if n.Strokes != nil || n.ReadingOn != nil {
		t.Errorf("absent attributes were materialized: %+v", n)
	}
}

func TestReadGEXFErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"malformed", "<gexf><graph>", nil},
		{"no nodes", `<gexf><graph><nodes></nodes></graph></gexf>`, ErrEmptyGraph},
		{"bad level", `<gexf><graph><attributes class="node"><attribute id="0" title="level" type="long"/></attributes>` +
			`<nodes><node id="a"><attvalues><attvalue for="0" value="x"/></attvalues></node></nodes></graph></gexf>`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadGEXF(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("ReadGEXF() expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
