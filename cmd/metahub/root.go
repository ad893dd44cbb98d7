package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base command; running it without a subcommand prints help
var rootCmd = &cobra.Command{
	Use:   "metahub",
	Short: "MCP server bridging Meta messaging platforms",
	Long: `metahub exposes a unified tool surface over Facebook Pages,
Instagram professional accounts, and the WhatsApp Business Cloud API.

It speaks the Model Context Protocol over stdio, so AI assistants can
send messages, read conversations, publish posts, and query analytics
through one set of tools regardless of platform.

Credentials come from the environment (FACEBOOK_PAGE_ACCESS_TOKEN,
INSTAGRAM_ACCESS_TOKEN, WHATSAPP_ACCESS_TOKEN plus
WHATSAPP_PHONE_NUMBER_ID) or a YAML config file. Run with --demo to
explore the tool surface without any credentials.`,
	SilenceUsage: true,
}

// SetVersion injects the build version
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute runs the CLI and exits non-zero on error
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "metahub version %s\n" .Version}}`)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
