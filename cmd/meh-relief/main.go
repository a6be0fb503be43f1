package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gruppe-adler/meh-relief/internal/relief"
	"github.com/gruppe-adler/meh-relief/internal/report"
	"github.com/gruppe-adler/meh-relief/internal/terrainrgb"
)

type command struct {
	name        string
	description string
	run         func(*flag.FlagSet)
}

var subCommands []command

func init() {
	subCommands = []command{
		{"render", "Render grayscale, color, hillshade and gradient images from an ESRI ASCII grid.", relief.Run},
		{"terrainrgb", "Build Terrain-RGB tiles from an ESRI ASCII grid.", terrainrgb.Run},
		{"report", "Draw a heat map, contour and gradient chart of an ESRI ASCII grid.", report.Run},
		{"help", "Print this message.", func(s *flag.FlagSet) { printUsage() }},
	}
}

func printUsage() {
	fmt.Printf("USAGE:\n    %s [SUBCOMMAND] [SUBCOMMAND FLAGS]\n\n", os.Args[0])
	fmt.Print("SUBCOMMANDS: \n")

	for _, cmd := range subCommands {
		fmt.Printf("%12s    %s\n", cmd.name, cmd.description)
	}

	fmt.Printf("\nUse -h as SUBCOMMAND FLAG to print help for each subcommand.\n\n")
}

func main() {

	if len(os.Args) < 2 {
		fmt.Printf("\nERROR: No subcommand was provided.\n\n")
		printUsage()
		os.Exit(1)
	}

	name := os.Args[1]

	for _, cmd := range subCommands {
		if cmd.name == name {
			set := flag.NewFlagSet(name, flag.ExitOnError)
			cmd.run(set)
			return
		}
	}

	fmt.Printf("\nERROR: Subcommand '%s' was not found.\n\n", name)
	printUsage()
	os.Exit(1)
}
