package kv

import (
	"github.com/ValentinKolb/nKV/cmd/util"
	"github.com/ValentinKolb/nKV/rpc/client"
	"github.com/spf13/cobra"
)

var (
	rpcStore *client.RPCStore

	// KeyValueCommands represents the KV command group
	KeyValueCommands = &cobra.Command{
		Use:               "kv",
		Short:             "Perform key-value store operations",
		PersistentPreRunE: setupKVClient,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add common RPC flags to the KV command
	util.SetupRPCClientFlags(KeyValueCommands)

	// Add subcommands
	KeyValueCommands.AddCommand(putCmd)
	KeyValueCommands.AddCommand(putListCmd)
	KeyValueCommands.AddCommand(getCmd)
	KeyValueCommands.AddCommand(getListCmd)
	KeyValueCommands.AddCommand(incrCmd)
	KeyValueCommands.AddCommand(appendCmd)
	KeyValueCommands.AddCommand(delCmd)
	KeyValueCommands.AddCommand(statsCmd)
	KeyValueCommands.AddCommand(rawCmd)
	KeyValueCommands.AddCommand(perfTestCmd)
}

// setupKVClient initializes the RPC store client
func setupKVClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	// Get serializer and transport
	s, err := util.GetSerializer()
	if err != nil {
		return err
	}

	t, err := util.GetTransport()
	if err != nil {
		return err
	}

	// Create the KV store client
	rpcStore, err = client.NewRPCStore(
		util.GetClientConfig(),
		t,
		s,
	)

	return err
}
