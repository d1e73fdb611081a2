// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/katalvlaran/symla/internal/codec"
	"github.com/katalvlaran/symla/internal/config"
	"github.com/katalvlaran/symla/internal/logging"
	"github.com/katalvlaran/symla/internal/metrics"
	"github.com/katalvlaran/symla/matrix"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

var errNoDocuments = errors.New("no documents match")

// Report is the command output.
type Report struct {
	Results []Result `json:"results" yaml:"results"`
	Metrics string   `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

// Result is the outcome for one document. Only the fields the operation
// produces are set.
type Result struct {
	Name      string       `json:"name" yaml:"name"`
	Op        string       `json:"op" yaml:"op"`
	Domain    string       `json:"domain" yaml:"domain"`
	Scalar    string       `json:"scalar,omitempty" yaml:"scalar,omitempty"`
	Matrix    [][]string   `json:"matrix,omitempty" yaml:"matrix,omitempty"`
	Transform [][]string   `json:"transform,omitempty" yaml:"transform,omitempty"`
	Pivots    []int        `json:"pivots,omitempty" yaml:"pivots,omitempty"`
	Basis     [][][]string `json:"basis,omitempty" yaml:"basis,omitempty"`
	Eigen     []Eigen      `json:"eigen,omitempty" yaml:"eigen,omitempty"`
	Check     string       `json:"check,omitempty" yaml:"check,omitempty"`
	Error     string       `json:"error,omitempty" yaml:"error,omitempty"`
}

// Eigen is one eigenvalue with its multiplicity and, for eigenvects, the
// eigenspace basis.
type Eigen struct {
	Value string       `json:"value" yaml:"value"`
	Mult  int          `json:"mult" yaml:"mult"`
	Basis [][][]string `json:"basis,omitempty" yaml:"basis,omitempty"`
}

type flags struct {
	in     string
	format string
	op     string
	domain string
	gzip   bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, "symla:", err)
		return exitUsage
	}

	var fl flags
	fs := flag.NewFlagSet("symla", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&fl.in, "in", "", "document file or glob such as 'cases/**/*.yaml' (stdin when empty)")
	fs.StringVar(&fl.format, "format", "json", "stdin document format: json, yaml or toml")
	fs.StringVar(&fl.op, "op", "", "operation, overriding the documents' op")
	fs.StringVar(&fl.domain, "domain", "", "domain, overriding the documents' domain: rat or expr")
	fs.StringVar(&cfg.Output, "out", cfg.Output, "report format: json or yaml")
	fs.BoolVar(&fl.gzip, "gzip", false, "gzip-compress the report")
	fs.StringVar(&cfg.DetMethod, "det", cfg.DetMethod, "determinant method: bareiss, berkowitz or lu")
	fs.StringVar(&cfg.InverseMethod, "inv", cfg.InverseMethod, "inverse method: GE, LU, ADJ, CH, LDL, QR or PINV")
	fs.BoolVar(&cfg.Check, "check", cfg.Check, "cross-check det and eigenvals against gonum")
	fs.BoolVar(&cfg.Metrics, "metrics", cfg.Metrics, "append Prometheus metrics to the report")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	fs.BoolVar(&cfg.LogDevelopment, "dev", cfg.LogDevelopment, "human-readable debug logging")
	if err = fs.Parse(args); err != nil {
		return exitUsage
	}
	if err = cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, "symla:", err)
		return exitUsage
	}
	out, _ := codec.ParseFormat(cfg.Output)

	logger, err := logging.New(cfg.Logging())
	if err != nil {
		fmt.Fprintln(stderr, "symla: logger:", err)
		return exitUsage
	}
	defer func() { _ = logger.Sync() }()

	opts := append(cfg.EngineOptions(), matrix.WithLogger(logger))
	var mt *metrics.Metrics
	if cfg.Metrics {
		mt = metrics.New()
		opts = append(opts, mt.Hook())
	}

	docs, err := loadDocuments(fl, stdin)
	if err != nil {
		fmt.Fprintln(stderr, "symla:", err)
		return exitUsage
	}

	var rep Report
	status := exitOK
	for _, d := range docs {
		res := d.result
		if d.err == nil {
			if fl.op != "" {
				d.doc.Op = fl.op
			}
			if fl.domain != "" {
				d.doc.Domain = fl.domain
			}
			start := time.Now()
			res = evaluate(d.doc, cfg.Check, opts)
			if mt != nil {
				var opErr error
				if res.Error != "" {
					opErr = errors.New(res.Error)
				}
				mt.Observe(res.Op, res.Domain, start, opErr)
			}
		}
		if res.Error != "" {
			status = exitFailed
			logger.Warn("document failed", zap.String("name", res.Name), zap.String("error", res.Error))
		}
		rep.Results = append(rep.Results, res)
	}
	if mt != nil {
		var b strings.Builder
		if err = mt.WriteText(&b); err != nil {
			logger.Error("metrics", zap.Error(err))
		}
		rep.Metrics = b.String()
	}

	encode := codec.Encode
	if fl.gzip {
		encode = codec.WriteGzip
	}
	if err = encode(stdout, rep, out); err != nil {
		fmt.Fprintln(stderr, "symla:", err)
		return exitUsage
	}

	return status
}

// loaded is one document or the failure to read it.
type loaded struct {
	doc    *codec.Document
	result Result
	err    error
}

// loadDocuments reads stdin when fl.in is empty, else every file matching
// the glob in lexical order. Unreadable files become failed results.
func loadDocuments(fl flags, stdin io.Reader) ([]loaded, error) {
	if fl.in == "" {
		f, err := codec.ParseFormat(fl.format)
		if err != nil {
			return nil, err
		}
		doc, err := codec.Read(stdin, f, false)
		if err != nil {
			return nil, err
		}
		if doc.Name == "" {
			doc.Name = "stdin"
		}
		return []loaded{{doc: doc}}, nil
	}

	matches, err := doublestar.FilepathGlob(fl.in)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w %q", errNoDocuments, fl.in)
	}
	sort.Strings(matches)
	out := make([]loaded, 0, len(matches))
	for _, path := range matches {
		doc, err := codec.ReadFile(path)
		if err != nil {
			out = append(out, loaded{result: Result{Name: path, Error: err.Error()}, err: err})
			continue
		}
		out = append(out, loaded{doc: doc})
	}

	return out, nil
}
