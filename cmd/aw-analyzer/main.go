// Command aw-analyzer is the CLI entry point for the personal-activity
// analytics agent.
package main

import "github.com/blackwell-systems/aw-analyzer/internal/app"

var version = "dev"

func main() {
	app.SetVersion(version)
	app.Execute()
}
