/*
Shrdi starts an interactive Shrdlite blocks-world planner session.

It reads in a world fixture and starts accepting natural-language commands,
printing the resulting action plan, a clarification question, or an error
for each one until the user types "quit".

Usage:

	shrdi [flags]

The flags are:

	-v, --version
		Give the current version of the planner and then exit.

	-w, --world FILE
		Use the provided SWW world fixture file. Defaults to the file
		"world.sww" in the current working directory.

	-d, --direct
	    Force reading directly from the console as opposed to using GNU readline
		based routines for reading command input even if launched in a tty with
		stdin and stdout.

	-c, --command COMMANDS
		Immediately run the given utterance(s) at start. Can be multiple
		utterances separated by the ";" character.

Once a session has started, typed text is parsed as a blocks-world command.
To exit the interpreter, type "quit".
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dekarrin/shrdlite"
	"github.com/dekarrin/shrdlite/internal/version"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitPlanError indicates an unsuccessful program execution due to a
	// problem while running the session.
	ExitPlanError

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue initializing the engine.
	ExitInitError
)

var (
	returnCode   int     = ExitSuccess
	flagVersion  *bool   = pflag.BoolP("version", "v", false, "Gives the version info")
	worldFile    *string = pflag.StringP("world", "w", "world.sww", "The SWW world fixture file that contains the definition of the starting world")
	forceDirect  *bool   = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible")
	startCommand *string = pflag.StringP("command", "c", "", "Execute the given utterance(s) immediately at start and leave the interpreter open")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occured: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	var startCommands []string
	if *startCommand != "" {
		startCommands = strings.Split(*startCommand, ";")
	}

	eng, initErr := shrdlite.New(os.Stdin, os.Stdout, *worldFile, *forceDirect)
	if initErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", initErr.Error())
		returnCode = ExitInitError
		return
	}
	defer eng.Close()

	err := eng.RunUntilQuit(startCommands)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitPlanError
		return
	}
}
