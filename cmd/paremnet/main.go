package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"strings"

	"github.com/simendsjo/paremnet"
	"github.com/simendsjo/paremnet/value"
)

var inputFile = flag.String("f", "", "input file")
var inputExpr = flag.String("e", "(let ((x 1)) x)", "input expression")
var libFiles = flag.String("lib", "", "comma separated macro libraries loaded before the input")
var trace = flag.Bool("trace", false, "trace every macro application to stderr")
var maxDepth = flag.Int("max-depth", paremnet.DefaultMaxDepth, "max nested macro applications, 0 means unlimited")
var outputFile = flag.String("o", "", "write the expanded forms, marshaled, to this file")

func main() {
	flag.Parse()

	opts := []paremnet.Option{paremnet.WithMaxDepth(*maxDepth)}
	if *trace {
		opts = append(opts, paremnet.WithLogger(log.New(os.Stderr, "expand: ", 0)))
	}
	e, err := paremnet.NewDefault(opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	for _, lib := range strings.Split(*libFiles, ",") {
		if lib = strings.TrimSpace(lib); lib == "" {
			continue
		}
		if _, err := load(e, lib); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	var out []value.Value
	if *inputFile != "" {
		out, err = load(e, *inputFile)
	} else {
		out, err = e.LoadString("(expr)", *inputExpr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	for _, v := range out {
		fmt.Fprintln(os.Stdout, v)
	}

	if *outputFile != "" {
		buf, err := value.FromSlice(out).Marshal()
		if err == nil {
			err = ioutil.WriteFile(*outputFile, buf, 0644)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

func load(e *paremnet.Expander, path string) ([]value.Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return e.Load(path, f)
}
