package main

import (
	"flag"
	"fmt"
	"os"
)

// Config defines program configuration.
type Config struct {
	Image       string // Path to the cartridge image to load.
	Script      string // Optional debugger command script.
	ScaleFactor int    // Amount by which each pixel is scaled.
	Debug       bool   // Start the interactive debugger instead of a free run.
	PrintTrace  bool   // Print per-instruction trace data?
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config
	c.ScaleFactor = 3

	flag.Usage = func() {
		fmt.Printf("%s [options] <image file>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.BoolVar(&c.Debug, "debug", c.Debug, "Start the interactive debugger.")
	flag.StringVar(&c.Script, "script", c.Script, "Run the given debugger command script and exit.")
	flag.BoolVar(&c.PrintTrace, "trace", c.PrintTrace, "Print per-instruction trace data.")
	flag.IntVar(&c.ScaleFactor, "scale-factor", c.ScaleFactor, "Pixel scale factor for the display.")

	version := flag.Bool("version", false, "Display version information.")
	flag.Parse()

	if *version {
		fmt.Println(Version())
		os.Exit(0)
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	c.Image = flag.Arg(0)
	return &c
}
