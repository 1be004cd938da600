// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package api

// maxBodyBytes caps the worksheet request body.
const maxBodyBytes = 1 << 20

// The walks grow exponentially with depth, so the depth tags stay small.

// SimilarRequest holds the parameters of GET /kanji/{kanji}/similar.
type SimilarRequest struct {
	Kanji      string  `validate:"required,max=16"`
	DepthLimit float64 `validate:"gte=0,lte=10"`
	Distinct   bool
	MaxScore   float64 `validate:"gte=0"`
}

// DeepRequest holds the parameters of GET /kanji/{kanji}/similar/deep.
type DeepRequest struct {
	Kanji      string `validate:"required,max=16"`
	DepthLimit int    `validate:"min=0,max=8"`
	LevelLimit int    `validate:"min=-1,max=1000"`
}

// LevelRequest holds the parameters of the primary and neighborhood routes.
type LevelRequest struct {
	Kanji      string `validate:"required,max=16"`
	LevelLimit int    `validate:"min=-1,max=1000"`
}

// ProjectionRequest holds the parameters of GET /kanji/{kanji}/projection.
type ProjectionRequest struct {
	Kanji      string  `validate:"required,max=16"`
	DepthLimit float64 `validate:"gte=0,lte=10"`
}

// KanjiRequest holds the path parameter of the info and breakdown routes.
type KanjiRequest struct {
	Kanji string `validate:"required,max=16"`
}

// WorksheetRequest is the body of POST /worksheet.
type WorksheetRequest struct {
	Text  string `json:"text" validate:"required,max=20000"`
	Level int    `json:"level" validate:"min=0,max=1000"`
}
