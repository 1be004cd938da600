// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package models

import (
	"time"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse is the envelope every HTTP endpoint writes.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": [{"kanji": "寺", "score": 0}],
//	  "metadata": {"timestamp": "2026-01-10T12:00:00Z", "query_time_ms": 1}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "error": {"code": "KANJI_NOT_FOUND", "message": "kanji not found: 龘"},
//	  "metadata": {"timestamp": "2026-01-10T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries timing and cache information for a response.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
	Count       *int      `json:"count,omitempty"`
}

// APIError is the error payload of an APIResponse.
//
// Codes in use:
//   - VALIDATION_ERROR: bad query parameters
//   - KANJI_NOT_FOUND: the kanji is not a node of the graph
//   - GRAPH_UNAVAILABLE: no graph has been loaded yet
//   - QUERY_ERROR: the traversal failed or was canceled
//   - RATE_LIMIT_EXCEEDED: too many requests from one client
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is the payload of the health endpoints.
type HealthStatus struct {
	Status      string    `json:"status"`
	Version     string    `json:"version"`
	GraphLoaded bool      `json:"graph_loaded"`
	Nodes       int       `json:"nodes"`
	Edges       int       `json:"edges"`
	LoadedAt    time.Time `json:"loaded_at,omitempty"`
	Uptime      float64   `json:"uptime_seconds"`
}
