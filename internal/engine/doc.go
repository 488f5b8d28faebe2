// Package engine walks two object graphs side by side to compare, diff or
// copy them. A Walker lives for one top level call: it carries the settings,
// the reference pairs visited so far and the logger. Collections are handled
// by a strategy resolved once per collection type.
package engine
