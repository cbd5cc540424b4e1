// Command steptrace runs a batch of traced demo tasks and summarizes the
// collected spans.
package main

import "github.com/sarchlab/steptrace/cmd/steptrace/cmd"

func main() {
	cmd.Execute()
}
