// Command metahub runs the MCP server bridging the Meta messaging
// platforms.
package main

// Version can be set during build with -ldflags
var version = "dev"

func main() {
	SetVersion(version)
	Execute()
}
