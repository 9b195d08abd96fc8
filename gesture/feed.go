package gesture

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
)

// ReadFeed decodes newline-delimited JSON readings from r and publishes each
// one to latch until r is exhausted or ctx is done. Malformed lines are
// logged and skipped.
//
// If r is an io.Closer it is closed when ctx is done so a blocked read
// returns. Other readers are only checked for cancellation between lines.
//
//	{"type":"heart","openness":0.7,"rotation":{"x":0.1,"y":-0.2}}
func ReadFeed(ctx context.Context, r io.Reader, latch *Latch) error {
	if c, ok := r.(io.Closer); ok {
		stop := context.AfterFunc(ctx, func() { c.Close() })
		defer stop()
	}

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line++

		data := bytes.TrimSpace(sc.Bytes())
		if len(data) == 0 {
			continue
		}
		s, err := Decode(data)
		if err != nil {
			slog.Warn("skipping gesture line", "line", line, "error", err)
			continue
		}
		latch.Publish(s)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading gesture feed: %w", err)
	}
	return nil
}
