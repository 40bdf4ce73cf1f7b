package main

import (
	"github.com/Nodular22/Create-Hardcore-Ultimate-Journey/cmd"
)

func main() {
	cmd.Execute()
}
