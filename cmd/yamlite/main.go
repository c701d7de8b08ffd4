// Command yamlite converts yamlite documents to JSON and back.
//
//	yamlite tojson tracker.yml
//	yamlite fromjson --indent 1 < tracker.json
//	yamlite fmt tracker.yml
//
// Flags can also be set through YAMLITE_STRICT, YAMLITE_INDENT and
// YAMLITE_VERBOSE.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
