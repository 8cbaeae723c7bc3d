// Command nlcrypt disguises text as plausible English prose (or
// reverses the disguise), driven by a dictionary built with nlmkdict.
// It mirrors original_source/nlcrypt.py's getopt-based CLI, rehosted
// on github.com/urfave/cli for flag parsing and usage text.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli"

	"github.com/euske/nlcrypt/internal/dictionary"
	"github.com/euske/nlcrypt/internal/logging"
	nlctransform "github.com/euske/nlcrypt/internal/transform"
)

func main() {
	app := cli.NewApp()
	app.Name = "nlcrypt"
	app.Usage = "disguise text as plausible English prose, or reverse the disguise"
	app.ArgsUsage = "KEY [FILE ...]"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "c", Value: "utf-8", Usage: "input codec for byte files"},
		cli.StringFlag{Name: "b", Value: ".", Usage: "dictionary basedir"},
		cli.BoolFlag{Name: "C", Usage: "chain the keystream across words (CBC mode)"},
		cli.BoolFlag{Name: "R", Usage: "reverse: undo a prior disguise"},
		cli.BoolFlag{Name: "d", Usage: "debug-trace substitutions to stderr (repeatable)"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "nlcrypt:", err)
		os.Exit(100)
	}
}

func run(c *cli.Context) error {
	if !c.Args().Present() {
		return cli.NewExitError("missing KEY argument", 100)
	}
	if c.Bool("d") {
		logging.SetDebug(1)
	}

	key := c.Args().First()
	files := c.Args().Tail()

	dict, err := dictionary.OpenDir(c.String("b"))
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("opening dictionary: %v", err), 100)
	}
	defer dict.Close()

	tr := nlctransform.New([]byte(key), c.Bool("R"), c.Bool("C"), dict, nil)

	codec := strings.ToLower(c.String("c"))
	if codec != "utf-8" && codec != "utf8" {
		return cli.NewExitError(fmt.Sprintf("unsupported codec %q (only utf-8 is built in)", c.String("c")), 100)
	}

	if len(files) == 0 {
		return feedStream(tr, os.Stdin, os.Stdout)
	}
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return cli.NewExitError(fmt.Sprintf("opening %s: %v", path, err), 100)
		}
		err = feedStream(tr, f, os.Stdout)
		f.Close()
		if err != nil {
			return cli.NewExitError(err.Error(), 100)
		}
	}
	return nil
}

// feedStream decodes r as UTF-8 line by line, dropping any invalid
// byte sequences instead of failing (spec.md §7 kind 3: a decoding
// error is not fatal, it just drops the offending bytes), and feeds
// each decoded line through tr.
func feedStream(tr *nlctransform.Transformer, r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.ToValidUTF8(sc.Text(), "")
		if _, err := io.WriteString(w, tr.Feed(line+"\n")); err != nil {
			return err
		}
	}
	return sc.Err()
}
