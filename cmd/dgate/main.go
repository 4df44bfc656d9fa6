package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/32bitkid/deathgate"
	"github.com/32bitkid/deathgate/resource"
)

func main() {
	var (
		dir      string
		verbose  bool
		jobs     int
		timeout  time.Duration
		logLevel slog.Level
		skip     []string
	)
	flag.StringVar(&dir, "dir", "", "game directory (or positional DIR, or DGATE_DIR)")
	flag.BoolVar(&verbose, "v", false, "print decoded text lines")
	flag.IntVar(&jobs, "j", deathgate.DefaultConcurrency, "files read in parallel")
	flag.DurationVar(&timeout, "timeout", time.Minute, "give up on the scan after this long")
	flag.TextVar(&logLevel, "log-level", slog.LevelInfo, "debug, info, warn or error")
	flag.Func("skip", "glob of file names to leave out (repeatable)", func(s string) error {
		skip = append(skip, s)
		return nil
	})
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	if dir == "" && flag.NArg() > 0 {
		dir = flag.Arg(0)
	}
	if dir == "" {
		dir = os.Getenv("DGATE_DIR")
	}
	if dir == "" {
		slog.Error("missing game directory", "hint", "pass -dir PATH or positional PATH")
		os.Exit(2)
	}

	root := deathgate.NewRoot(dir,
		deathgate.WithLogger(slog.Default()),
		deathgate.WithConcurrency(jobs),
		deathgate.WithSkip(skip...),
	)
	if !root.IsValid() {
		slog.Warn("no known resources", "dir", dir)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	descriptors, err := root.Scan(ctx)
	if err != nil {
		slog.Error("scan failed", "dir", dir, "err", err)
		os.Exit(1)
	}

	sort.Slice(descriptors, func(i, j int) bool { return descriptors[i].Name < descriptors[j].Name })
	for _, d := range descriptors {
		report(os.Stdout, d, verbose)
	}
	fmt.Println(deathgate.Summarize(descriptors))
}

func report(w io.Writer, d resource.Descriptor, verbose bool) {
	fmt.Fprintf(w, "%-12s %-5s %8d %016x", d.Name, d.Kind.Label(), d.Size, d.Checksum)

	switch details := d.Details().(type) {
	case *resource.ImageDetails:
		fmt.Fprintf(w, " %dx%dx%d palette=%v avg=%s", details.Width, details.Height, details.ColorDepth, details.HasPalette, details.AverageColor)
	case *resource.VideoDetails:
		fmt.Fprintf(w, " %d frames %dx%d %dfps %v", details.Frames, details.Width, details.Height, details.FrameRate, details.Duration)
	case *resource.AudioDetails:
		fmt.Fprintf(w, " %v %dHz %dch %v", details.Format, details.SampleRate, details.Channels, details.Duration)
		if details.Sequences > 0 {
			fmt.Fprintf(w, " %d sequences", details.Sequences)
		}
	case resource.Text:
		fmt.Fprintf(w, " %d lines", len(details))
	}

	if d.Err != nil {
		fmt.Fprintf(w, " error=%q", d.Err.Error())
	}
	fmt.Fprintln(w)

	if verbose && d.Kind == resource.KindText {
		for i, line := range d.Text {
			fmt.Fprintf(w, "    %4d %s\n", i, line)
		}
	}
}
