package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	"github.com/signadot/jsonschema"
	"github.com/signadot/jsonschema/encode"
	"github.com/signadot/jsonschema/ir"
	"github.com/signadot/jsonschema/parse"
	"github.com/signadot/jsonschema/schema"
	"golang.org/x/sync/errgroup"

	jsonpatch "github.com/evanphx/json-patch"
)

// expandInputs expands doublestar globs. A pattern without matches is kept
// as is so that opening it reports the error.
func expandInputs(patterns []string) ([]string, error) {
	var res []string
	for _, p := range patterns {
		if p == "-" || !doublestar.ValidatePattern(p) {
			res = append(res, p)
			continue
		}
		matches, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", p, err)
		}
		if len(matches) == 0 {
			res = append(res, p)
			continue
		}
		slices.Sort(matches)
		res = append(res, matches...)
	}
	return slices.Compact(res), nil
}

type report struct {
	Path   string
	Result *schema.Result
	Err    error
}

func (r *report) valid() bool {
	return r.Err == nil && r.Result.Valid
}

// checker validates documents against one schema, or each document against
// its own meta-schema when uri is empty.
type checker struct {
	v     *jsonschema.Validator
	uri   string
	popts []parse.ParseOption
	jobs  int
	patch jsonpatch.Patch
}

func (c *checker) readDoc(path string, stdin []byte) (*ir.Node, error) {
	if path == "-" {
		return parse.Parse(stdin, slices.Concat(c.popts, []parse.ParseOption{parse.ParseFilename("stdin")})...)
	}
	return parse.ParseFile(path, c.popts...)
}

func (c *checker) check(path string, stdin []byte) *report {
	rep := &report{Path: path}
	doc, err := c.readDoc(path, stdin)
	if err == nil && c.patch != nil {
		doc, err = applyPatch(c.patch, doc, path)
	}
	if err != nil {
		rep.Err = err
		return rep
	}
	if c.uri == "" {
		rep.Result, rep.Err = c.v.ValidateMetaSchema(doc)
	} else {
		rep.Result, rep.Err = c.v.Validate(c.uri, doc)
	}
	return rep
}

// checkAll validates paths concurrently. Reports are in the order of
// paths. stdin is read once, up front, however often - appears.
func (c *checker) checkAll(paths []string, stdin io.Reader) ([]*report, error) {
	var data []byte
	if stdin != nil && slices.Contains(paths, "-") {
		d, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		data = d
	}
	reps := make([]*report, len(paths))
	var g errgroup.Group
	jobs := c.jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(jobs)
	for i, p := range paths {
		g.Go(func() error {
			reps[i] = c.check(p, data)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reps, nil
}

type printer struct {
	out   string
	eopts []encode.EncodeOption
	ok    func(string, ...any) string
	bad   func(string, ...any) string
}

func newPrinter(cfg *MainConfig, check *CheckFlags, w io.Writer) (*printer, error) {
	out, err := check.output()
	if err != nil {
		return nil, err
	}
	p := &printer{out: out, eopts: cfg.encOpts(w), ok: fmt.Sprintf, bad: fmt.Sprintf}
	if cfg.colored(w) {
		p.ok = color.New(color.FgGreen).SprintfFunc()
		p.bad = color.New(color.FgRed, color.Bold).SprintfFunc()
	}
	return p, nil
}

// write prints reps and reports whether all of them are valid.
func (p *printer) write(w io.Writer, reps []*report) (bool, error) {
	all := true
	for _, rep := range reps {
		switch {
		case rep.Err != nil:
			all = false
			fmt.Fprintln(w, p.bad("%s: error: %v", rep.Path, rep.Err))
			continue
		case rep.Result.Valid:
			fmt.Fprintln(w, p.ok("%s: valid", rep.Path))
		default:
			all = false
			fmt.Fprintln(w, p.bad("%s: invalid", rep.Path))
		}
		var node *ir.Node
		switch p.out {
		case "basic":
			node = rep.Result.Basic()
		case "hierarchical":
			node = rep.Result.ToIR()
		default:
			continue
		}
		if err := encode.Encode(node, w, p.eopts...); err != nil {
			return false, err
		}
	}
	return all, nil
}

// newInputChecker returns a checker for inputs: against uri, or against
// their own meta-schema when uri is empty.
func newInputChecker(v *jsonschema.Validator, check *CheckFlags, popts []parse.ParseOption, uri string) (*checker, error) {
	c := &checker{v: v, uri: uri, popts: popts, jobs: check.Jobs}
	if check.Patch != "" {
		p, err := loadPatch(check.Patch, popts)
		if err != nil {
			return nil, err
		}
		c.patch = p
	}
	return c, nil
}

func stdinOr(paths []string) []string {
	if len(paths) == 0 {
		return []string{"-"}
	}
	return paths
}

var errInvalid = cli.ExitCodeErr(1)

func exitErr(valid bool) error {
	if valid {
		return nil
	}
	return errInvalid
}
