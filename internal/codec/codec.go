// SPDX-License-Identifier: MIT

// Package codec reads matrix documents and writes reports.
//
// A document names an operation and carries the matrix entries as strings,
// so that exact values (1/3, sqrt(2), x + 1) survive every format:
//
//	name: rotation
//	domain: expr
//	op: eigenvals
//	rows:
//	  - ["0", "-1"]
//	  - ["1", "0"]
//
// JSON goes through sonic, YAML through goccy/go-yaml and TOML through
// go-toml. A trailing .gz on the file name adds gzip decompression.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/klauspost/compress/gzip"
	"github.com/pelletier/go-toml/v2"
)

// ErrFormat wraps every decode failure and unknown file extension.
var ErrFormat = errors.New("codec: bad document")

// Format is a document or report encoding.
type Format int

const (
	JSON Format = iota
	YAML
	TOML
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	case TOML:
		return "toml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat accepts "json", "yaml"/"yml" and "toml" in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "toml":
		return TOML, nil
	}

	return 0, fmt.Errorf("%w: unknown format %q", ErrFormat, s)
}

// FormatOf derives the format from a file name; gz reports a trailing .gz.
func FormatOf(path string) (f Format, gz bool, err error) {
	name := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(name, ".gz") {
		gz = true
		name = strings.TrimSuffix(name, ".gz")
	}
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return 0, gz, fmt.Errorf("%w: %s has no extension", ErrFormat, path)
	}
	f, err = ParseFormat(ext)

	return f, gz, err
}

// Document is one matrix problem.
type Document struct {
	Name   string     `json:"name" yaml:"name" toml:"name"`
	Domain string     `json:"domain" yaml:"domain" toml:"domain"`
	Op     string     `json:"op" yaml:"op" toml:"op"`
	Rows   [][]string `json:"rows" yaml:"rows" toml:"rows"`
	RHS    [][]string `json:"rhs,omitempty" yaml:"rhs,omitempty" toml:"rhs,omitempty"`
}

// Decode parses one document from data.
func Decode(data []byte, f Format) (*Document, error) {
	var doc Document
	var err error
	switch f {
	case JSON:
		err = sonic.Unmarshal(data, &doc)
	case YAML:
		err = yaml.Unmarshal(data, &doc)
	case TOML:
		err = toml.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("%w: %v", ErrFormat, f)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFormat, f, err)
	}

	return &doc, nil
}

// Read decodes a document from r, decompressing first when gz is set.
func Read(r io.Reader, f Format, gz bool) (*Document, error) {
	if gz {
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("%w: gzip: %v", ErrFormat, err)
		}
		defer zr.Close()
		r = zr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	return Decode(data, f)
}

// ReadFile decodes the document at path, picking the format from its name.
// An empty Name is filled with the base name of path.
func ReadFile(path string) (*Document, error) {
	f, gz, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	doc, err := Read(file, f, gz)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if doc.Name == "" {
		doc.Name = filepath.Base(path)
	}

	return doc, nil
}

// Encode writes v in format f: indented JSON, block YAML or TOML.
func Encode(w io.Writer, v any, f Format) error {
	var (
		data []byte
		err  error
	)
	switch f {
	case JSON:
		data, err = sonic.ConfigStd.MarshalIndent(v, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	case YAML:
		data, err = yaml.Marshal(v)
	case TOML:
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(v)
		data = buf.Bytes()
	default:
		return fmt.Errorf("%w: %v", ErrFormat, f)
	}
	if err != nil {
		return fmt.Errorf("codec: encode %s: %w", f, err)
	}
	_, err = w.Write(data)

	return err
}

// WriteGzip writes v like Encode, gzip-compressed.
func WriteGzip(w io.Writer, v any, f Format) error {
	zw := gzip.NewWriter(w)
	if err := Encode(zw, v, f); err != nil {
		_ = zw.Close()
		return err
	}

	return zw.Close()
}
