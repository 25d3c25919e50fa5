package main

import (
	"fmt"
	"os"

	"github.com/cloo-solutions/sitechat/internal/cli"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sitechatd",
		Short: "Sitechat daemon and CLI",
		Long:  "Sitechat daemon for running the API server and building knowledge base snapshots",
	}

	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.IngestCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
