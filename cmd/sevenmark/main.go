// Sevenmark parses SevenMark wiki markup source files and prints the
// resulting AST as JSON.
//
// Run it against one or more files:
//
//	sevenmark page.7mk other.7mk
//
// With no arguments, it reads source from stdin.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sevenwiki/sevenmark/internal/log"
	"github.com/sevenwiki/sevenmark/internal/telemetry"
	"github.com/sevenwiki/sevenmark/parser"
)

var maxDepth = flag.Int("max-recursion-depth", 0, "override the parser's max recursion depth (0 keeps the default)")

func main() {
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "usage: %s [flags] [FILE ...]\n", os.Args[0])
		fmt.Fprintf(out, "    parses each FILE (or stdin, with none given) and prints its AST as JSON\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	ctx := context.Background()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	for _, path := range paths {
		if err := parseOne(ctx, path, enc); err != nil {
			die("%s: %v", path, err)
		}
	}
}

func parseOne(ctx context.Context, path string, enc *json.Encoder) error {
	source, err := readSource(path)
	if err != nil {
		return err
	}

	var opts []parser.Option
	if *maxDepth > 0 {
		opts = append(opts, parser.WithMaxRecursionDepth(*maxDepth))
	}
	nodes := telemetry.ParseTraced(ctx, source, opts...)

	log.Infof(ctx, "%s: parsed %d top-level node(s)", path, len(nodes))
	return enc.Encode(nodes)
}

func readSource(path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}

func die(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	fmt.Fprintln(os.Stderr)
	os.Exit(1)
}
