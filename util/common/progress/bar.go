package progress

import (
	"fmt"
	"io"

	"github.com/juspay/airborne-cli/util/common"
	"github.com/pterm/pterm"
)

// barWriter advances a pterm progress bar by the bytes written to it.
type barWriter struct {
	bar *pterm.ProgressbarPrinter
}

func (w *barWriter) Write(p []byte) (int, error) {
	w.bar.Add(len(p))
	return len(p), nil
}

// Reader wraps r so that reading it advances a progress bar titled with name
// and the total size. Call the returned func once the body has been sent.
func Reader(contentLength int64, r io.Reader, name string) (io.Reader, func()) {
	title := fmt.Sprintf("%s (%s)", name, common.GetSize(contentLength))
	bar := pterm.DefaultProgressbar.
		WithTitle(title).
		WithRemoveWhenDone(true)
	if contentLength > 0 {
		bar = bar.WithTotal(int(contentLength))
	}

	pb, err := bar.Start()
	if err != nil {
		return r, func() {}
	}
	return io.TeeReader(r, &barWriter{pb}), func() { _, _ = pb.Stop() }
}
