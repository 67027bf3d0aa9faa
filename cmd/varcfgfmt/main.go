package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	varcfg "github.com/varcfg/varcfg-go"
)

func main() {
	strict := flag.Bool("strict", false, "exit non-zero if any line was dropped")
	flag.Parse()

	var input []byte
	var err error
	if flag.NArg() > 0 {
		input, err = os.ReadFile(flag.Arg(0))
	} else {
		input, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}

	store, errs := varcfg.ParseAll(string(input))
	for _, perr := range errs {
		fmt.Fprintln(os.Stderr, perr.Error())
	}

	fmt.Print(varcfg.Encode(store))

	if *strict && len(errs) > 0 {
		os.Exit(1)
	}
}
