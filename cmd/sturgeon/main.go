/*
Sturgeon builds ACTION/GOTO tables from a grammar and drives them against
input strings.

Usage:

	sturgeon build [flags] GRAMMAR_FILE
	sturgeon parse [flags] GRAMMAR_FILE INPUT
	sturgeon repl [flags] GRAMMAR_FILE

The flags are:

	-v, --version
		Give the current version of the program and then exit.

	-f, --flavor FLAVOR
		Item-set flavor to build: "slr" or "lr1". Defaults to the value in
		sturgeon.toml, or "lr1" if no config file is present.

	-c, --config FILE
		Path to the config file to load. Defaults to "sturgeon.toml" in the
		current working directory; a missing file is not an error.

	-t, --trace
		Print the derivation trace after a successful parse.

	-d, --direct
		Force reading directly from stdin instead of going through GNU
		readline based routines, for "repl".

	--cache FILE
		Cache file for the built table. "build" skips re-construction if the
		grammar text and flavor match what is already cached there.

"build" prints the rendered ACTION/GOTO table for GRAMMAR_FILE. "parse"
builds the table and runs INPUT through the driver, reporting acceptance
or rejection. "repl" builds the table once and then reads lines from
stdin, parsing each as a fresh input string, using GNU-readline-style
editing and history where available.
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/dorsalfin/sturgeon/gramtext"
	"github.com/dorsalfin/sturgeon/grammar"
	"github.com/dorsalfin/sturgeon/internal/config"
	"github.com/dorsalfin/sturgeon/internal/input"
	"github.com/dorsalfin/sturgeon/internal/tablecache"
	"github.com/dorsalfin/sturgeon/internal/version"
	"github.com/dorsalfin/sturgeon/lrerr"
	"github.com/dorsalfin/sturgeon/parse"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitUsageError indicates bad flags or arguments.
	ExitUsageError

	// ExitBuildError indicates the grammar file could not be read or parsed,
	// or the grammar is not of the requested flavor.
	ExitBuildError

	// ExitRejected indicates a successful build but a rejected input.
	ExitRejected
)

var (
	returnCode  = ExitSuccess
	flagVersion = pflag.BoolP("version", "v", false, "Gives the version info")
	flagFlavor  = pflag.StringP("flavor", "f", "", "Item-set flavor: slr or lr1")
	flagConfig  = pflag.StringP("config", "c", "sturgeon.toml", "Path to the config file")
	flagTrace   = pflag.BoolP("trace", "t", false, "Print the derivation trace after a successful parse")
	flagCache   = pflag.String("cache", "", "Cache file for the built table")
	flagDirect  = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline")
)

// lineReader is satisfied by both of package input's reader types.
type lineReader interface {
	ReadCommand() (string, error)
	Close() error
}

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: loading config: %s\n", err.Error())
		returnCode = ExitUsageError
		return
	}

	wantFlavor := *flagFlavor
	if wantFlavor == "" {
		wantFlavor = cfg.Flavor
	}
	flavor, err := parseFlavorArg(wantFlavor)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitUsageError
		return
	}

	trace := *flagTrace || cfg.Trace

	args := pflag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "ERROR: expected a subcommand (build, parse, repl)")
		returnCode = ExitUsageError
		return
	}

	switch args[0] {
	case "build":
		returnCode = runBuild(args[1:], flavor)
	case "parse":
		returnCode = runParse(args[1:], flavor, trace)
	case "repl":
		returnCode = runRepl(args[1:], flavor, trace, *flagDirect)
	default:
		fmt.Fprintf(os.Stderr, "ERROR: unknown subcommand %q\n", args[0])
		returnCode = ExitUsageError
	}
}

func parseFlavorArg(s string) (parse.Flavor, error) {
	switch s {
	case "", "lr1", "canonical-lr1":
		return parse.CanonicalLR1, nil
	case "slr", "slr1":
		return parse.SLR, nil
	default:
		return 0, fmt.Errorf("unknown flavor %q: want \"slr\" or \"lr1\"", s)
	}
}

func flavorName(f parse.Flavor) string {
	if f == parse.SLR {
		return "slr"
	}
	return "lr1"
}

func readGrammarFile(path string) ([]byte, []grammar.Production, int, map[int]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, 0, nil, err
	}
	reader := gramtext.New()
	prods, initNonterm, err := reader.Read(strings.NewReader(string(data)))
	if err != nil {
		return nil, nil, 0, nil, err
	}
	return data, prods, initNonterm, reader.Names(), nil
}

func buildTable(path string, flavor parse.Flavor, cachePath string) (*parse.Table, error) {
	data, prods, initNonterm, names, err := readGrammarFile(path)
	if err != nil {
		return nil, err
	}

	hash := tablecache.HashGrammar(data)
	if cachePath != "" {
		if entry, ok, _ := tablecache.Load(cachePath); ok && entry.Hit(hash, flavorName(flavor)) {
			fmt.Fprintf(os.Stderr, "cache %s matches this grammar; the table is rebuilt for parsing\n", cachePath)
		}
	}

	table, err := parse.Build(flavor, initNonterm, prods, names)
	if err != nil {
		return nil, err
	}

	if cachePath != "" {
		entry := tablecache.Entry{GrammarHash: hash, Flavor: flavorName(flavor), Rendered: table.String()}
		if err := tablecache.Save(cachePath, entry); err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: could not write cache: %s\n", err.Error())
		}
	}

	return table, nil
}

func runBuild(args []string, flavor parse.Flavor) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "ERROR: build requires a grammar file")
		return ExitUsageError
	}

	if *flagCache != "" {
		if data, err := os.ReadFile(args[0]); err == nil {
			if entry, ok, _ := tablecache.Load(*flagCache); ok && entry.Hit(tablecache.HashGrammar(data), flavorName(flavor)) {
				fmt.Fprintf(os.Stderr, "using cached table from %s\n", *flagCache)
				fmt.Println(entry.Rendered)
				return ExitSuccess
			}
		}
	}

	table, err := buildTable(args[0], flavor, *flagCache)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", lrerr.Human(err))
		return ExitBuildError
	}

	fmt.Println(table.String())
	return ExitSuccess
}

func runParse(args []string, flavor parse.Flavor, trace bool) int {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "ERROR: parse requires a grammar file and an input string")
		return ExitUsageError
	}

	table, err := buildTable(args[0], flavor, *flagCache)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", lrerr.Human(err))
		return ExitBuildError
	}

	return parseAndReport(table, args[1], trace)
}

func parseAndReport(table *parse.Table, input string, trace bool) int {
	deriv, err := table.Parse([]byte(input))
	if err != nil {
		fmt.Fprintf(os.Stderr, "REJECTED: %s\n", lrerr.Human(err))
		return ExitRejected
	}

	fmt.Println("ACCEPTED")
	if trace {
		for _, form := range deriv {
			var sb strings.Builder
			for i, sym := range form {
				if i > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(sym.String(nil))
			}
			fmt.Println(sb.String())
		}
	}
	return ExitSuccess
}

func runRepl(args []string, flavor parse.Flavor, trace bool, direct bool) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "ERROR: repl requires a grammar file")
		return ExitUsageError
	}

	table, err := buildTable(args[0], flavor, *flagCache)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", lrerr.Human(err))
		return ExitBuildError
	}

	var reader lineReader
	if direct {
		reader = input.NewDirectReader(os.Stdin)
	} else {
		reader, err = input.NewInteractiveReader()
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			return ExitUsageError
		}
	}
	defer reader.Close()

	fmt.Println("enter input strings to parse; QUIT to exit")
	for {
		line, err := reader.ReadCommand()
		if err != nil {
			break
		}
		if strings.EqualFold(line, "QUIT") {
			break
		}
		parseAndReport(table, line, trace)
	}
	return ExitSuccess
}
