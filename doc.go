// Package quote0 provides a Go SDK for the Quote/0 e-ink display authV2 open API.
//
// Quote/0 is a Wi-Fi enabled e-paper display with a 296×152 pixel screen that receives content
// updates via REST API. The device maintains displayed content without power (bistable e-ink)
// and supports both text-based layouts and arbitrary image rendering. See https://dot.mindreset.tech
// for device specifications and documentation.
//
// This major version targets the authV2 endpoints under /api/authV2/open/* and covers the full
// device surface: listing registered devices, reading device status (battery, Wi-Fi, render
// info), switching to the next queued content, listing queued tasks, and pushing text or image
// content.
//
// Features
//   - Bearer token authentication
//   - Typed errors classified from HTTP status (validation, auth, permission, not-found, rate limit)
//   - Optional default device ID with per-request override
//   - 10 QPS rate limiting (pluggable, context aware)
//   - Optional structured debug logging via go.uber.org/zap
//
// Official API Documentation:
//   - https://dot.mindreset.tech/docs/service/studio/api/text_api
//   - https://dot.mindreset.tech/docs/service/studio/api/image_api
package quote0
