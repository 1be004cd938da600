// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

// Package cache provides the generic TTL-bounded LRU used to memoize query
// results between graph reloads.
//
// # Usage
//
//	c := cache.NewLRU[[]recommend.Similar](1000, 10*time.Minute)
//	c.Add("ranked:持:0.9", items)
//	if items, ok := c.Get("ranked:持:0.9"); ok {
//	    // ...
//	}
//
// # Thread Safety
//
// All methods are safe for concurrent use. Stored values are returned as-is,
// so callers that cache slices must not mutate them after Add.
package cache
