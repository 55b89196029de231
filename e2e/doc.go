//go:build e2e

// Package e2e provides end-to-end tests for the crypto trading dashboard.
//
// These tests are isolated from the standard test suite via build tags.
// They require a Chrome browser (auto-downloaded by Rod if not present)
// and are intended for CI pipelines or explicit local testing.
//
// Running E2E tests:
//
//	go test -tags=e2e ./e2e/...
//
// Running against a deployed dashboard instead of the embedded server:
//
//	DASHBOARD_URL=http://localhost:3000 go test -tags=e2e ./e2e/...
//
// Running all tests except E2E:
//
//	go test ./...
//
// E2E tests use:
//   - Rod for browser automation (Chrome DevTools Protocol)
//   - the dashboard server from cmd/dashboard/server
//   - pkg/harness for sessions, interception and polling assertions
//
// Test isolation:
// One Chrome process serves the whole package. Every test opens its own
// incognito session with its own interception rules, so tests run in
// parallel and never share page state.
package e2e
