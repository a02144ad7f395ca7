package main

import (
	"fmt"

	"github.com/MAGNETO903/oracle-platform-hackathon/cmd"
)

var (
	version string
	commit  string
)

func main() {
	cmd.Execute(fmt.Sprintf("%s-%s", version, commit))
}
