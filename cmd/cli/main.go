// quickevent - Event Title Parsing Tool
//
// quickevent extracts date and time expressions from natural event titles
// and turns them into calendar events.
package main

import (
	"os"

	"github.com/quickevent/quickevent/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
