// Command docgen renders a Word or LaTeX document from a local marked-up text file
// using the same emitters and defaults as the HTTP service.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/joho/godotenv/autoload"
	flag "github.com/spf13/pflag"

	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/config"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/filestore"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/model"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/render"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/render/docx"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/render/latex"
)

// Exit codes follow Unix conventions: 0=success, 1=general, 2=usage, 3=I/O.
const (
	ExitSuccess = 0
	ExitGeneral = 1
	ExitUsage   = 2
	ExitIO      = 3
)

const stdStream = "-"

var (
	ErrUnknownFormat = errors.New("unknown format")
	ErrReadInput     = errors.New("read input")
	ErrWriteOutput   = errors.New("write output")
)

type options struct {
	format string
	title  string
	author string
	input  string
	output string

	defaultTitle  string
	defaultAuthor string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, time.Now))
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	cfg := config.Load()
	o := &options{
		defaultTitle:  cfg.Document.DefaultTitle,
		defaultAuthor: cfg.Document.DefaultAuthor,
	}

	fs := flag.NewFlagSet("docgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&o.format, "format", "f", "word", "output format: word, latex")
	fs.StringVarP(&o.title, "title", "t", cfg.Document.DefaultTitle, "document title")
	fs.StringVarP(&o.author, "author", "a", cfg.Document.DefaultAuthor, "document author")
	fs.StringVarP(&o.input, "input", "i", stdStream, "marked-up text file (\"-\" = stdin)")
	fs.StringVarP(&o.output, "output", "o", "", "output path (\"\" = timestamped name in the working directory, \"-\" = stdout)")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: docgen [flags]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return o, nil
}

func newRenderer(format string) (render.Renderer, error) {
	switch format {
	case "word", "docx":
		return docx.NewRenderer(), nil
	case "latex", "tex":
		return latex.NewRenderer(config.Load().Document.AuthorAffiliation), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer, now func() time.Time) int {
	o, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}

	r, err := newRenderer(o.format)
	if err != nil {
		fmt.Fprintln(stderr, "docgen:", err)
		return ExitUsage
	}

	content, err := readInput(o.input, stdin)
	if err != nil {
		fmt.Fprintln(stderr, "docgen:", err)
		return ExitIO
	}

	req := model.GenerationRequest{Title: o.title, Author: o.author, Content: string(content)}.
		WithDefaults(o.defaultTitle, o.defaultAuthor)
	if err := req.Validate(); err != nil {
		fmt.Fprintln(stderr, "docgen:", err)
		return ExitUsage
	}

	ts := now()
	data, err := r.Render(req, ts)
	if err != nil {
		fmt.Fprintln(stderr, "docgen:", err)
		return ExitGeneral
	}

	out := o.output
	if out == "" {
		out = filestore.FilenamePrefix + ts.Format(filestore.TimestampLayout) + r.Format().Extension()
	}
	if err := writeOutput(out, data, stdout); err != nil {
		fmt.Fprintln(stderr, "docgen:", err)
		return ExitIO
	}
	if out != stdStream {
		fmt.Fprintln(stderr, out)
	}
	return ExitSuccess
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == stdStream {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
		}
		return b, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	return b, nil
}

func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == stdStream {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}
