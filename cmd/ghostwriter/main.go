// Command ghostwriter is the CLI tool for Ghostwriter books.
// It decodes, converts, lists, signs and watches books in the GHB format.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"

	"github.com/tsawler/ghostwriter"
	"github.com/tsawler/ghostwriter/format"
	"github.com/tsawler/ghostwriter/ghb"
	"github.com/tsawler/ghostwriter/internal/logging"
	"github.com/tsawler/ghostwriter/layout"
	"github.com/tsawler/ghostwriter/library"
	"github.com/tsawler/ghostwriter/model"
	"github.com/tsawler/ghostwriter/watch"
)

const version = "0.1.0"

// Globals are the flags shared by every command.
type Globals struct {
	LogLevel  string `name:"log-level" default:"warn" enum:"debug,info,warn,error" env:"GHOSTWRITER_LOG_LEVEL" help:"Log level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" env:"GHOSTWRITER_LOG_FORMAT" help:"Log format (text, json)"`
	Root      string `name:"root" default:"." env:"GHOSTWRITER_HOME" type:"path" help:"Library root directory"`

	Stdout io.Writer        `kong:"-"`
	Stderr io.Writer        `kong:"-"`
	Now    func() time.Time `kong:"-"`
}

// CLI defines the command-line interface for ghostwriter.
type CLI struct {
	Globals

	Decode  DecodeCmd  `cmd:"" help:"Print the pages of a book"`
	Convert ConvertCmd `cmd:"" help:"Convert a book to GHB"`
	Name    NameCmd    `cmd:"" help:"Print the file name a book is saved under"`
	Ls      LsCmd      `cmd:"" help:"List a library directory"`
	Init    InitCmd    `cmd:"" help:"Create the library directories"`
	Sign    SignCmd    `cmd:"" help:"Append the signature book to a book"`
	Watch   WatchCmd   `cmd:"" help:"Reload a book whenever it changes"`
	Backup  BackupCmd  `cmd:"" help:"Archive the saved books"`
	Restore RestoreCmd `cmd:"" help:"Restore saved books from an archive"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// setupLogging configures the logger from the global flags.
func (g *Globals) setupLogging() error {
	level, err := logging.ParseLevel(g.LogLevel)
	if err != nil {
		return err
	}
	logFormat, err := logging.ParseFormat(g.LogFormat)
	if err != nil {
		return err
	}
	logging.InitLogger(g.Stderr, level, logFormat)
	return nil
}

func (g *Globals) dirs() library.Dirs {
	return library.NewDirs(g.Root)
}

func (g *Globals) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

func (g *Globals) printStatuses(statuses []ghostwriter.Status) {
	if len(statuses) > 0 {
		fmt.Fprintln(g.Stderr, ghostwriter.FormatStatuses(statuses))
	}
}

// LoadFlags configure how books are decoded.
type LoadFlags struct {
	LineWidth      int     `name:"line-width" default:"116" help:"Line width in pixels"`
	MaxPages       int     `name:"max-pages" default:"100" help:"Most pages to keep, 0 for no limit"`
	Metrics        string  `default:"book" enum:"book,go,cells" help:"Glyph metrics: book font, Go Regular or terminal cells"`
	FontSize       float64 `name:"font-size" default:"8" help:"Point size for Go Regular metrics"`
	Sniff          bool    `help:"Detect the format from the contents when the extension is unknown"`
	KeepNavigation bool    `name:"keep-navigation" help:"Keep navigation, headers and footers of HTML pages"`
}

func (f LoadFlags) metrics() (layout.Metrics, error) {
	switch f.Metrics {
	case "go":
		return layout.GoRegular(f.FontSize)
	case "cells":
		return layout.CellMetrics{}, nil
	default:
		return layout.MinecraftMetrics{}, nil
	}
}

func (f LoadFlags) loader(path string) (*ghostwriter.Loader, error) {
	m, err := f.metrics()
	if err != nil {
		return nil, err
	}
	l := ghostwriter.Open(path).Metrics(m).LineWidth(f.LineWidth).MaxPages(f.MaxPages)
	if f.Sniff {
		l = l.Sniff()
	}
	if f.KeepNavigation {
		l = l.KeepNavigation()
	}
	return l, nil
}

// encoder wraps saved lines with the same metrics and width used to load.
func (f LoadFlags) encoder() (*ghb.Encoder, error) {
	l, err := f.loader("")
	if err != nil {
		return nil, err
	}
	return l.Encoder(), nil
}

func (f LoadFlags) load(g *Globals, path string) (*model.Document, error) {
	l, err := f.loader(path)
	if err != nil {
		return nil, err
	}
	doc, statuses, err := l.Load()
	g.printStatuses(statuses)
	return doc, err
}

// DecodeCmd prints a book.
type DecodeCmd struct {
	LoadFlags

	Path string `arg:"" help:"Path to the book" type:"path"`
	JSON bool   `name:"json" help:"Print the book as JSON"`
}

type bookJSON struct {
	Title  string   `json:"title"`
	Author string   `json:"author"`
	Pages  []string `json:"pages"`
}

func (c *DecodeCmd) Run(g *Globals) error {
	doc, err := c.load(g, c.Path)
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(g.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(bookJSON{Title: doc.Title, Author: doc.Author, Pages: doc.Pages})
	}

	fmt.Fprintf(g.Stdout, "Title:  %s\n", doc.Title)
	fmt.Fprintf(g.Stdout, "Author: %s\n", doc.Author)
	fmt.Fprintf(g.Stdout, "Pages:  %d\n", doc.PageCount())
	for i, page := range doc.Pages {
		fmt.Fprintf(g.Stdout, "\n--- Page %d ---\n%s\n", i+1, page)
	}
	return nil
}

// ConvertCmd saves any readable book as GHB.
type ConvertCmd struct {
	LoadFlags

	Path string `arg:"" help:"Path to the book" type:"path"`
	Out  string `short:"o" help:"Output path (default: the library's saved books)" type:"path"`
}

func (c *ConvertCmd) Run(g *Globals) error {
	doc, err := c.load(g, c.Path)
	if err != nil {
		return err
	}

	out := c.Out
	if out == "" {
		out = g.dirs().SavePath(doc.Title, doc.Author, g.now())
	}
	enc, err := c.encoder()
	if err != nil {
		return err
	}
	if err := ghostwriter.SaveWith(enc, doc.Title, doc.Author, doc.Pages, out); err != nil {
		return err
	}
	fmt.Fprintf(g.Stdout, "Saved: %s (%d pages)\n", out, doc.PageCount())
	return nil
}

// NameCmd prints the file name for a title and author.
type NameCmd struct {
	Title  string `arg:"" help:"Book title"`
	Author string `arg:"" optional:"" help:"Book author"`
}

func (c *NameCmd) Run(g *Globals) error {
	fmt.Fprintln(g.Stdout, library.FileName(c.Title, c.Author, g.now()))
	return nil
}

// LsCmd lists a directory, folders first.
type LsCmd struct {
	Dir string `arg:"" optional:"" help:"Directory to list (default: the library's saved books)" type:"path"`
}

func (c *LsCmd) Run(g *Globals) error {
	dir := c.Dir
	if dir == "" {
		dir = g.dirs().SavedBooks
	}

	var listing library.Listing
	entries, err := listing.List(dir, false)
	if err != nil {
		return err
	}
	for _, e := range entries {
		switch {
		case e.Dir:
			fmt.Fprintf(g.Stdout, "%s/\n", e.Name)
		case e.Loadable():
			fmt.Fprintf(g.Stdout, "%s\t%s\t%s\n", e.Name, e.Format, humanize.Bytes(uint64(e.Size)))
		default:
			fmt.Fprintf(g.Stdout, "%s\t-\t%s\n", e.Name, humanize.Bytes(uint64(e.Size)))
		}
	}
	return nil
}

// InitCmd creates the library layout under the root.
type InitCmd struct{}

func (c *InitCmd) Run(g *Globals) error {
	d := g.dirs()
	if err := d.Ensure(); err != nil {
		return err
	}
	fmt.Fprintf(g.Stdout, "Library: %s\n", d.Root)
	return nil
}

// SignCmd appends the signature book to a book and saves the result.
type SignCmd struct {
	LoadFlags

	Path      string `arg:"" help:"Path to the book" type:"path"`
	Signature string `help:"Signature book (default: the library's default signature)" type:"path"`
	Out       string `short:"o" help:"Output path (default: the book itself when it is GHB)" type:"path"`
}

func (c *SignCmd) Run(g *Globals) error {
	doc, err := c.load(g, c.Path)
	if err != nil {
		return err
	}

	sig := c.Signature
	if sig == "" {
		sig = g.dirs().SignaturePath()
	}

	book := model.NewBook(doc.Pages)
	book.Title = doc.Title
	added, statuses, err := ghostwriter.Sign(book, sig)
	g.printStatuses(statuses)
	if err != nil {
		return err
	}

	out := c.Out
	switch {
	case out != "":
	case format.Detect(c.Path) == format.GHB:
		out = c.Path
	default:
		out = g.dirs().SavePath(doc.Title, doc.Author, g.now())
	}
	enc, err := c.encoder()
	if err != nil {
		return err
	}
	if err := ghostwriter.SaveWith(enc, book.Title, doc.Author, book.Pages, out); err != nil {
		return err
	}
	fmt.Fprintf(g.Stdout, "Signed: %s (+%d pages)\n", out, added)
	return nil
}

// WatchCmd prints a summary every time a book changes on disk.
type WatchCmd struct {
	LoadFlags

	Path     string        `arg:"" help:"Path to the book" type:"path"`
	Interval time.Duration `default:"1s" help:"Polling interval"`
}

func (c *WatchCmd) Run(g *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.run(ctx, g)
}

func (c *WatchCmd) run(ctx context.Context, g *Globals) error {
	load := func(path string) (*model.Document, error) {
		return c.load(g, path)
	}

	doc, err := load(c.Path)
	if err != nil {
		return err
	}
	c.summary(g, doc)

	w := watch.New(c.Path, load)
	if c.Interval > 0 {
		w.Interval = c.Interval
	}
	if err := w.Prime(); err != nil {
		return err
	}

	err = w.Run(ctx, func(doc *model.Document) {
		c.summary(g, doc)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (c *WatchCmd) summary(g *Globals, doc *model.Document) {
	fmt.Fprintf(g.Stdout, "%s: %q by %q, %d pages\n", filepath.Base(c.Path), doc.Title, doc.Author, doc.PageCount())
}

// BackupCmd packs the saved books into an xz-compressed tar archive.
type BackupCmd struct {
	Out string `short:"o" help:"Archive path (default: a timestamped file in the library root)" type:"path"`
}

func (c *BackupCmd) Run(g *Globals) error {
	d := g.dirs()
	out := c.Out
	if out == "" {
		out = filepath.Join(d.Root, library.BackupName(g.now()))
	}
	n, err := library.Pack(d.SavedBooks, out)
	if err != nil {
		return err
	}
	fmt.Fprintf(g.Stdout, "Backed up %d books to %s\n", n, out)
	return nil
}

// RestoreCmd unpacks an archive made by backup into the saved books.
type RestoreCmd struct {
	Archive string `arg:"" help:"Archive to restore" type:"existingfile"`
}

func (c *RestoreCmd) Run(g *Globals) error {
	n, err := library.Unpack(c.Archive, g.dirs().SavedBooks)
	if err != nil {
		return err
	}
	fmt.Fprintf(g.Stdout, "Restored %d books\n", n)
	return nil
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run(g *Globals) error {
	fmt.Fprintf(g.Stdout, "ghostwriter version %s\n", version)
	return nil
}

func main() {
	cli := CLI{Globals: Globals{Stdout: os.Stdout, Stderr: os.Stderr}}
	ctx := kong.Parse(&cli,
		kong.Name("ghostwriter"),
		kong.Description("Ghostwriter - GHB book markup tools"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	ctx.FatalIfErrorf(cli.setupLogging())
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
