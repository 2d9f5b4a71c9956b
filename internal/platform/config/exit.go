package config

import (
	"fmt"
	"io"
	"os"
)

var (
	stderr   io.Writer = os.Stderr
	exitProc           = os.Exit
)

// Exit reports err for the named step on stderr and exits with status 1.
// A nil err returns without side effects.
func Exit(step string, err error) {
	if err == nil {
		return
	}
	if step == "" {
		fmt.Fprintf(stderr, "%v\n", err)
	} else {
		fmt.Fprintf(stderr, "%s: %v\n", step, err)
	}
	exitProc(1)
}
