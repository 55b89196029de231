// Package fixture holds the literal data the dashboard page is rendered
// from and the canned price payloads the e2e suites serve through
// request interception.
//
// Every constructor returns a fresh value. Tests build their own fixtures
// and never share them, so one test mutating a Prices map cannot leak into
// another.
package fixture
