// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package graph

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"time"
)

// GEXF attribute titles used for node data.
const (
	attrLevel      = "level"
	attrReadingOn  = "reading_on"
	attrReadingKun = "reading_kun"
	attrStrokes    = "strokes"
	attrCommonWord = "common_word"
)

const gexfNamespace = "http://www.gexf.net/1.2draft"

type gexfDocument struct {
	XMLName xml.Name  `xml:"gexf"`
	Xmlns   string    `xml:"xmlns,attr,omitempty"`
	Version string    `xml:"version,attr,omitempty"`
	Meta    *gexfMeta `xml:"meta,omitempty"`
	Graph   gexfGraph `xml:"graph"`
}

type gexfMeta struct {
	LastModified string `xml:"lastmodifieddate,attr,omitempty"`
	Creator      string `xml:"creator,omitempty"`
}

type gexfGraph struct {
	DefaultEdgeType string           `xml:"defaultedgetype,attr,omitempty"`
	Mode            string           `xml:"mode,attr,omitempty"`
	Attributes      []gexfAttributes `xml:"attributes"`
	Nodes           []gexfNode       `xml:"nodes>node"`
	Edges           []gexfEdge       `xml:"edges>edge"`
}

type gexfAttributes struct {
	Class      string          `xml:"class,attr"`
	Mode       string          `xml:"mode,attr,omitempty"`
	Attributes []gexfAttribute `xml:"attribute"`
}

type gexfAttribute struct {
	ID    string `xml:"id,attr"`
	Title string `xml:"title,attr"`
	Type  string `xml:"type,attr"`
}

type gexfNode struct {
	ID        string          `xml:"id,attr"`
	Label     string          `xml:"label,attr,omitempty"`
	AttValues []gexfAttrValue `xml:"attvalues>attvalue"`
}

type gexfAttrValue struct {
	For   string `xml:"for,attr"`
	Value string `xml:"value,attr"`
}

type gexfEdge struct {
	ID     string `xml:"id,attr,omitempty"`
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
}

// ReadGEXF decodes a GEXF document (as written by NetworkX) into a Store.
//
// Node attributes are matched by title: level, reading_on, reading_kun,
// strokes and common_word. Nodes missing a level are untracked.
func ReadGEXF(r io.Reader) (*Store, error) {
	var doc gexfDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode gexf: %w", err)
	}
	if len(doc.Graph.Nodes) == 0 {
		return nil, ErrEmptyGraph
	}

	titles := make(map[string]string)
	for _, block := range doc.Graph.Attributes {
		if block.Class != "node" {
			continue
		}
		for _, a := range block.Attributes {
			titles[a.ID] = a.Title
		}
	}

	b := NewBuilder()
	for i := range doc.Graph.Nodes {
		n, err := decodeGEXFNode(&doc.Graph.Nodes[i], titles)
		if err != nil {
			return nil, err
		}
		b.AddNode(n)
	}
	for _, e := range doc.Graph.Edges {
		if e.Source == "" || e.Target == "" {
			return nil, fmt.Errorf("decode gexf: edge %q has empty endpoint", e.ID)
		}
		b.AddEdge(e.Source, e.Target)
	}
	return b.Build(), nil
}

func decodeGEXFNode(gn *gexfNode, titles map[string]string) (Node, error) {
	if gn.ID == "" {
		return Node{}, fmt.Errorf("decode gexf: node without id")
	}
	n := Node{Symbol: gn.ID, Level: UntrackedLevel}
	for _, av := range gn.AttValues {
		title, ok := titles[av.For]
		if !ok {
			// Some writers reference attributes by title directly.
			title = av.For
		}
		switch title {
		case attrLevel:
			level, err := parseGEXFInt(av.Value)
			if err != nil {
				return Node{}, fmt.Errorf("decode gexf: node %q level: %w", gn.ID, err)
			}
			n.Level = level
		case attrStrokes:
			strokes, err := parseGEXFInt(av.Value)
			if err != nil {
				return Node{}, fmt.Errorf("decode gexf: node %q strokes: %w", gn.ID, err)
			}
			n.Strokes = IntPtr(strokes)
		case attrReadingOn:
			n.ReadingOn = StringPtr(av.Value)
		case attrReadingKun:
			n.ReadingKun = StringPtr(av.Value)
		case attrCommonWord:
			n.CommonWord = StringPtr(av.Value)
		}
	}
	return n, nil
}

// parseGEXFInt accepts integers written as "8" or "8.0".
func parseGEXFInt(v string) (int, error) {
	if i, err := strconv.Atoi(v); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// WriteGEXF encodes the store as a GEXF 1.2 document readable by NetworkX.
func WriteGEXF(w io.Writer, s *Store) error {
	doc := gexfDocument{
		Xmlns:   gexfNamespace,
		Version: "1.2",
		Meta: &gexfMeta{
			LastModified: time.Now().UTC().Format("2006-01-02"),
			Creator:      "kanjigraph",
		},
		Graph: gexfGraph{
			DefaultEdgeType: "directed",
			Mode:            "static",
			Attributes: []gexfAttributes{{
				Class: "node",
				Mode:  "static",
				Attributes: []gexfAttribute{
					{ID: "0", Title: attrLevel, Type: "long"},
					{ID: "1", Title: attrReadingOn, Type: "string"},
					{ID: "2", Title: attrReadingKun, Type: "string"},
					{ID: "3", Title: attrStrokes, Type: "long"},
					{ID: "4", Title: attrCommonWord, Type: "string"},
				},
			}},
		},
	}

	doc.Graph.Nodes = make([]gexfNode, 0, s.Len())
	for i := range s.nodes {
		n := &s.nodes[i]
		gn := gexfNode{ID: n.Symbol, Label: n.Symbol}
		gn.AttValues = append(gn.AttValues, gexfAttrValue{For: "0", Value: strconv.Itoa(n.Level)})
		if n.ReadingOn != nil {
			gn.AttValues = append(gn.AttValues, gexfAttrValue{For: "1", Value: *n.ReadingOn})
		}
		if n.ReadingKun != nil {
			gn.AttValues = append(gn.AttValues, gexfAttrValue{For: "2", Value: *n.ReadingKun})
		}
		if n.Strokes != nil {
			gn.AttValues = append(gn.AttValues, gexfAttrValue{For: "3", Value: strconv.Itoa(*n.Strokes)})
		}
		if n.CommonWord != nil {
			gn.AttValues = append(gn.AttValues, gexfAttrValue{For: "4", Value: *n.CommonWord})
		}
		doc.Graph.Nodes = append(doc.Graph.Nodes, gn)
	}

	doc.Graph.Edges = make([]gexfEdge, len(s.edges))
	for i, e := range s.edges {
		doc.Graph.Edges[i] = gexfEdge{ID: strconv.Itoa(i), Source: e.Source, Target: e.Target}
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write gexf header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("encode gexf: %w", err)
	}
	return enc.Flush()
}
