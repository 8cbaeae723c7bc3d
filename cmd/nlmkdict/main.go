// Command nlmkdict builds the w2g.cdb/g2w.cdb dictionary pair nlcrypt
// reads at runtime, from a directory of WordNet source files. It
// mirrors original_source/mkdict.py's main(): read the four index.*
// files plus their *.exc exception tables and cntlist frequencies,
// fold in any user-supplied skip lists, then write the two stores.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli"

	"github.com/euske/nlcrypt/internal/dictbuild"
	"github.com/euske/nlcrypt/internal/kv"
	"github.com/euske/nlcrypt/internal/wordnet"
)

func main() {
	app := cli.NewApp()
	app.Name = "nlmkdict"
	app.Usage = "build the nlcrypt word dictionary from WordNet source files"
	app.ArgsUsage = "basedir"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "O", Value: ".", Usage: "output directory for g2w.cdb/w2g.cdb"},
		cli.StringSliceFlag{Name: "s", Usage: "skip-list file (word\\tPOS per line); may be repeated"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "nlmkdict:", err)
		os.Exit(100)
	}
}

func run(c *cli.Context) error {
	if !c.Args().Present() {
		return cli.NewExitError(fmt.Sprintf("usage: %s [-O outdir] [-s skip] basedir", c.App.Name), 100)
	}
	basedir := c.Args().First()
	outdir := c.String("O")

	exc, err := readExceptions(basedir)
	if err != nil {
		return cli.NewExitError(err.Error(), 100)
	}
	weight, err := readCntlist(basedir)
	if err != nil {
		return cli.NewExitError(err.Error(), 100)
	}

	var skip []string
	for _, path := range c.StringSlice("s") {
		words, err := readSkipFile(path)
		if err != nil {
			return cli.NewExitError(err.Error(), 100)
		}
		skip = append(skip, words...)
	}

	conv := dictbuild.NewConverter(exc, weight, skip)
	for _, pos := range []wordnet.POS{wordnet.Adjective, wordnet.Adverb, wordnet.Noun, wordnet.Verb} {
		entries, err := readIndex(basedir, pos)
		if err != nil {
			return cli.NewExitError(err.Error(), 100)
		}
		conv.ReadIndex(pos, entries)
	}

	g2w, err := kv.CreateCDB(filepath.Join(outdir, "g2w.cdb"))
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("creating g2w.cdb: %v", err), 100)
	}
	w2g, err := kv.CreateCDB(filepath.Join(outdir, "w2g.cdb"))
	if err != nil {
		g2w.Close()
		return cli.NewExitError(fmt.Sprintf("creating w2g.cdb: %v", err), 100)
	}

	if err := conv.Write(g2w, w2g); err != nil {
		return cli.NewExitError(err.Error(), 100)
	}
	if err := g2w.Close(); err != nil {
		return cli.NewExitError(err.Error(), 100)
	}
	return w2g.Close()
}

func readIndex(basedir string, pos wordnet.POS) ([]wordnet.IndexEntry, error) {
	f, err := os.Open(filepath.Join(basedir, wordnet.IndexFilename(pos)))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	fmt.Fprintf(os.Stderr, "reading: %s\n", f.Name())
	return wordnet.ReadIndex(f)
}

func readExceptions(basedir string) (dictbuild.Exceptions, error) {
	adjRaw, err := readExcFile(basedir, wordnet.Adjective)
	if err != nil {
		return dictbuild.Exceptions{}, err
	}
	advRaw, err := readExcFile(basedir, wordnet.Adverb)
	if err != nil {
		return dictbuild.Exceptions{}, err
	}
	nounRaw, err := readExcFile(basedir, wordnet.Noun)
	if err != nil {
		return dictbuild.Exceptions{}, err
	}
	verbRaw, err := readExcFile(basedir, wordnet.Verb)
	if err != nil {
		return dictbuild.Exceptions{}, err
	}

	jjr, jjs := dictbuild.SplitAdjExceptions(adjRaw)
	rbr, rbs := dictbuild.SplitAdvExceptions(advRaw)
	vbz, vbd, vbn, vbg := dictbuild.SplitVerbExceptions(verbRaw)

	return dictbuild.Exceptions{
		NNS: nounRaw,
		JJR: jjr, JJS: jjs,
		RBR: rbr, RBS: rbs,
		VBZ: vbz, VBD: vbd, VBN: vbn, VBG: vbg,
	}, nil
}

func readExcFile(basedir string, pos wordnet.POS) (map[string]string, error) {
	f, err := os.Open(filepath.Join(basedir, wordnet.ExcFilename(pos)))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	fmt.Fprintf(os.Stderr, "reading: %s\n", f.Name())
	return wordnet.ReadExceptions(f)
}

func readCntlist(basedir string) (map[string]int, error) {
	f, err := os.Open(filepath.Join(basedir, "cntlist"))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	fmt.Fprintf(os.Stderr, "reading: %s\n", f.Name())
	return wordnet.ReadCntlist(f)
}

func readSkipFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return dictbuild.ReadSkipList(bufio.NewScanner(f)), nil
}
