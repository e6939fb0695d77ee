// Command minilangc compiles MiniLang source files to three-address code.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
