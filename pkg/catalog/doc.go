// Package catalog maps the Pulsar multi-tenant topic catalog onto the
// relational model a SQL engine's connector interface expects: tenant/
// namespace pairs become schemas, topics become tables, and registered
// topic schemas become typed column lists.
//
// The Catalog facade is stateless across calls. Every operation is a
// self-contained resolve-translate-package pipeline over the broker
// collaborators in package admin; nothing is cached between calls, so
// handles stay stable and reproducible for identical broker state.
package catalog
