// Package diagnostic collects the problems found in a settings document,
// each with a code, the offending key and "did you mean" suggestions.
// Validation keeps going after the first problem so one run reports
// everything that needs fixing.
package diagnostic
