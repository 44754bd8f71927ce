// Package logs filters detection records and aggregates them into a daily
// phishing trend. Everything here is pure: no I/O, no shared state.
package logs
