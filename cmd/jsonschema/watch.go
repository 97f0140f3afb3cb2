package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"
	"github.com/signadot/jsonschema/debug"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

const settle = 100 * time.Millisecond

func watch(cfg *WatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Watch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: watch requires a schema and at least one input", cli.ErrUsage)
	}
	if cfg.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			fmt.Fprintf(cc.Out, "gops agent failed: %v\n", err)
		}
		defer agent.Close()
	}
	p, err := newPrinter(cfg.MainConfig, &cfg.Check, cc.Out)
	if err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	run := func() string {
		var buf bytes.Buffer
		if err := runOnce(cfg, p, &buf, args); err != nil {
			fmt.Fprintf(&buf, "error: %v\n", err)
		}
		return buf.String()
	}
	prev := run()
	io.WriteString(cc.Out, prev)
	if err := watchDirs(w, append(cfg.Check.Refs, args...)); err != nil {
		return err
	}

	var timer <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cc.Out, "watch error: %v\n", err)
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if debug.Eval() {
				debug.Logf("watch event %s\n", ev)
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			timer = time.After(settle)
		case <-timer:
			timer = nil
			cur := run()
			if cur == prev {
				continue
			}
			fmt.Fprintf(cc.Out, "--- %s\n", time.Now().Format(time.TimeOnly))
			io.WriteString(cc.Out, lineDiff(prev, cur))
			prev = cur
			if err := watchDirs(w, append(cfg.Check.Refs, args...)); err != nil {
				fmt.Fprintf(cc.Out, "watch error: %v\n", err)
			}
		}
	}
}

func runOnce(cfg *WatchConfig, p *printer, w io.Writer, args []string) error {
	c, err := newChecker(cfg.MainConfig, &cfg.Check, args[0])
	if err != nil {
		return err
	}
	inputs, err := expandInputs(args[1:])
	if err != nil {
		return err
	}
	reps, err := c.checkAll(inputs, nil)
	if err != nil {
		return err
	}
	_, err = p.write(w, reps)
	return err
}

// watchDirs watches the directories holding the files the patterns
// currently match, and the static prefix of each pattern so that new
// matches are noticed.
func watchDirs(w *fsnotify.Watcher, patterns []string) error {
	files, err := expandInputs(patterns)
	if err != nil {
		return err
	}
	dirs := map[string]bool{}
	for _, f := range files {
		dirs[filepath.Dir(f)] = true
	}
	for _, p := range patterns {
		if i := strings.IndexAny(p, "*?[{"); i >= 0 {
			dirs[filepath.Dir(p[:i]+"x")] = true
		}
	}
	for d := range dirs {
		if _, err := os.Stat(d); err != nil {
			continue
		}
		if err := w.Add(d); err != nil {
			return fmt.Errorf("watch %s: %w", d, err)
		}
	}
	return nil
}

// lineDiff renders the changed lines between two outputs with +/- marks.
func lineDiff(from, to string) string {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	var sb strings.Builder
	for _, d := range diffs {
		var mark string
		switch d.Type {
		case diffpatch.DiffInsert:
			mark = "+ "
		case diffpatch.DiffDelete:
			mark = "- "
		default:
			continue
		}
		for _, ln := range strings.SplitAfter(d.Text, "\n") {
			if ln == "" {
				continue
			}
			sb.WriteString(mark)
			sb.WriteString(ln)
			if !strings.HasSuffix(ln, "\n") {
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}
