// Command qwerty shows a keyboard grid that switches to running applications
// or starts them.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
