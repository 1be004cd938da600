// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

/*
Package api provides the HTTP REST API for kanjigraph.

Routes (all under /api/v1 except /metrics):

	GET  /health/live                     process is up
	GET  /health/ready                    503 until a graph is loaded
	GET  /graph/stats                     node and edge counts of the live graph
	GET  /kanji/{kanji}                   node info, 404 when absent
	GET  /kanji/{kanji}/similar           ranked list; distinct=true filters it
	GET  /kanji/{kanji}/similar/deep      bounded integer walk
	GET  /kanji/{kanji}/primary           primary component siblings
	GET  /kanji/{kanji}/neighborhood      components, compounds, similar
	GET  /kanji/{kanji}/breakdown         siblings per component
	GET  /kanji/{kanji}/projection        weighted projection for visualization
	POST /worksheet                       study list for a text
	GET  /metrics                         Prometheus

Every JSON response uses the models.APIResponse envelope. Query endpoints
return empty lists for unknown kanji; only /kanji/{kanji} answers 404.

Middleware order: request ID and logging context, real IP, panic recovery,
CORS, then per-group rate limiting, Prometheus metrics and access logging.
*/
package api
