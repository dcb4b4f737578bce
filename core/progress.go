package core

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vbauerster/mpb/v4"
	"github.com/vbauerster/mpb/v4/decor"
	"golang.org/x/term"
)

// Progress renders the progress of one download
type Progress interface {
	Update(done int64, total int64)
	// Finish stops rendering; ok reports whether the download completed
	Finish(ok bool)
}

// NewProgress returns a progress bar when out is a terminal, and a plain line reporter otherwise
func NewProgress(ctx context.Context, out io.Writer, name string) Progress {
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return newBarProgress(ctx, out, name)
	}
	return &lineProgress{out: out, name: name, nextPercent: 10}
}

type barProgress struct {
	progress *mpb.Progress
	cancel   context.CancelFunc
	name     string
	bar      *mpb.Bar
	last     int64
}

func newBarProgress(ctx context.Context, out io.Writer, name string) *barProgress {
	ctx, cancel := context.WithCancel(ctx)
	return &barProgress{
		progress: mpb.NewWithContext(ctx, mpb.WithOutput(out), mpb.WithWidth(64)),
		cancel:   cancel,
		name:     name,
	}
}

func (b *barProgress) Update(done int64, total int64) {
	if b.bar == nil {
		b.bar = b.progress.AddBar(total,
			mpb.PrependDecorators(
				decor.Name(b.name, decor.WC{W: len(b.name) + 1, C: decor.DidentRight}),
				decor.CountersKibiByte("% .2f / % .2f"),
			),
			mpb.AppendDecorators(
				decor.Percentage(decor.WCSyncSpace),
				decor.Name(" "),
				decor.AverageSpeed(decor.UnitKiB, "% .2f"),
			),
		)
		// A zero total would leave the bar waiting for one to be set
		if total <= 0 {
			b.bar.SetTotal(done, true)
			b.last = done
			return
		}
	}
	if done > b.last {
		b.bar.IncrBy(int(done - b.last))
		b.last = done
	}
}

func (b *barProgress) Finish(ok bool) {
	if !ok || b.bar == nil || !b.bar.Completed() {
		b.cancel()
	}
	b.progress.Wait()
	b.cancel()
}

type lineProgress struct {
	out         io.Writer
	name        string
	nextPercent int64
}

func (l *lineProgress) Update(done int64, total int64) {
	if total <= 0 {
		return
	}
	percent := done * 100 / total
	if percent < l.nextPercent && done != total {
		return
	}
	_, _ = fmt.Fprintf(l.out, "%s: %d%% (%d/%d bytes)\n", l.name, percent, done, total)
	for l.nextPercent <= percent {
		l.nextPercent += 10
	}
}

func (l *lineProgress) Finish(bool) {}
