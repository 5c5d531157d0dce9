package log

import (
	"io"
	"log/slog"

	gethlog "github.com/ethereum/go-ethereum/log"
)

// NewTerminalHandlerWithLevel returns go-ethereum's terminal handler, which
// colors level names when useColor is set and aligns key=value pairs.
func NewTerminalHandlerWithLevel(w io.Writer, lvl slog.Level, useColor bool) slog.Handler {
	return gethlog.NewTerminalHandlerWithLevel(w, lvl, useColor)
}

// JSONHandlerWithLevel writes one JSON object per record, with the level
// under "lvl" and the time under "t".
func JSONHandlerWithLevel(w io.Writer, lvl slog.Level) slog.Handler {
	return gethlog.JSONHandlerWithLevel(w, lvl)
}

func DiscardHandler() slog.Handler {
	return gethlog.DiscardHandler()
}
