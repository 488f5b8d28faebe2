// Package logger builds the zap logger of the command line tool.
//
// Level is one of debug, info, warn or error. Format is console, for
// humans, or json. Library packages never build loggers; they log through
// the one carried by their settings.
package logger
