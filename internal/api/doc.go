// Package api hosts the HTTP server, middleware, and handlers for the preview
// editor. Notable routes:
//   - GET /api/metadata-editor/meta?url= for external page metadata.
//   - GET /api/metadata-editor/current for the local layout metadata.
//   - POST /api/metadata-editor/upload-image for og image and favicon uploads.
//   - GET /favicon.ico for the site icon.
//   - GET /healthz / readyz for Kubernetes probes and GET /metrics for Prometheus.
package api
