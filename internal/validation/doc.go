// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

// Package validation wraps go-playground/validator v10 with a shared
// instance and error translation into the VALIDATION_ERROR API shape.
//
//	type similarRequest struct {
//	    Kanji      string  `validate:"required,max=16"`
//	    DepthLimit float64 `validate:"gte=0,lte=10"`
//	}
//
// String max and min count code points, not bytes.
package validation
