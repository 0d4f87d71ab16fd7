package cmd

import (
	"fmt"
	"github.com/ValentinKolb/nKV/cmd/kv"
	"github.com/ValentinKolb/nKV/cmd/serve"
	"github.com/ValentinKolb/nKV/cmd/util"
	"github.com/spf13/cobra"
	"os"
)

const (
	Version = "0.3.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "nkv",
		Short: "in-memory key-value store",
		Long: fmt.Sprintf(`nKV (v%s)

A small in-memory key-value store with integer, string and list values,
served over a semicolon delimited line protocol.`, Version),
		SilenceUsage: true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of nKV",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("nKV v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(kv.KeyValueCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "serializer"
	RootCmd.PersistentFlags().String(key, "line", util.WrapString("serializer to use (line, json)"))
	key = "transport"
	RootCmd.PersistentFlags().String(key, "tcp", util.WrapString("transport to use (tcp, unix)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
