package kv

import (
	"bytes"
	"encoding/json"
	"fmt"
	"github.com/ValentinKolb/nKV/cmd/util"
	"github.com/ValentinKolb/nKV/lib/store"
	"github.com/ValentinKolb/nKV/rpc/common"
	"github.com/ValentinKolb/nKV/rpc/serializer"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"io"
	"strings"
)

var (
	// lineFormat renders results exactly as the server sends them with the line serializer
	lineFormat = serializer.NewLineSerializer()

	putCmd = &cobra.Command{
		Use:   "put [key] [value]",
		Short: "Sets the value for a key",
		Long:  "Sets the value for a key. The value is parsed according to --type (INT, STRING or LIST, list elements separated by ',')",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseValueFlag(cmd, args[1])
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout())(rpcStore.Put(args[0], value))
		},
	}
	putListCmd = &cobra.Command{
		Use:   "putlist [key] [a,b,c]",
		Short: "Sets a list value for a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			list := store.List(strings.Split(args[1], ","))
			return printResult(cmd.OutOrStdout())(rpcStore.PutList(args[0], list))
		},
	}
	getCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Reads the value for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printResult(cmd.OutOrStdout())(rpcStore.Get(args[0]))
		},
	}
	getListCmd = &cobra.Command{
		Use:   "getlist [key]",
		Short: "Reads the list value for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printResult(cmd.OutOrStdout())(rpcStore.GetList(args[0]))
		},
	}
	incrCmd = &cobra.Command{
		Use:   "incr [key]",
		Short: "Increments the integer value of a key by one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printResult(cmd.OutOrStdout())(rpcStore.Increment(args[0]))
		},
	}
	appendCmd = &cobra.Command{
		Use:   "append [key] [value]",
		Short: "Appends a value to the list stored at a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseValueFlag(cmd, args[1])
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout())(rpcStore.Append(args[0], value))
		},
	}
	delCmd = &cobra.Command{
		Use:   "del [key]",
		Short: "Deletes a key value pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printResult(cmd.OutOrStdout())(rpcStore.Delete(args[0]))
		},
	}
	statsCmd = &cobra.Command{
		Use:   "stats",
		Short: "Prints the per command success and error counters of the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			if output == "text" {
				return printResult(cmd.OutOrStdout())(rpcStore.Do(common.NewRequest(store.KindStats, "", nil)))
			}

			stats, err := rpcStore.Stats()
			if err != nil {
				return err
			}
			return writeStats(cmd.OutOrStdout(), stats, output)
		},
	}
	rawCmd = &cobra.Command{
		Use:   "raw [line]",
		Short: "Sends a request line as is and prints the reply",
		Long:  `Sends a request line as is and prints the reply, e.g. nkv kv raw "PUT;foo;1,2;LIST"`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := rpcStore.Raw([]byte(args[0]))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(resp))
			return err
		},
	}
)

func init() {
	for _, c := range []*cobra.Command{putCmd, appendCmd} {
		c.Flags().String("type", store.TypeString, util.WrapString("type of the value (INT, STRING, LIST)"))
	}
	statsCmd.Flags().StringP("output", "o", "text", util.WrapString("output format (text, json, yaml)"))
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// parseValueFlag parses a value argument according to the --type flag
func parseValueFlag(cmd *cobra.Command, raw string) (store.Value, error) {
	valueType, _ := cmd.Flags().GetString("type")
	value, err := common.ParseValue(raw, strings.ToUpper(valueType))
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, fmt.Errorf("value must not be empty")
	}
	return value, nil
}

// printResult returns a function that prints a result in the reply format of the
// line protocol. A failed command is printed, not returned as an error.
func printResult(w io.Writer) func(store.Result, error) error {
	return func(res store.Result, err error) error {
		if err != nil {
			return err
		}
		line, err := lineFormat.SerializeResult(res)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", line)
		return err
	}
}

// orderedStats is a statistics snapshot that is encoded with the kinds in table order
type orderedStats store.StatsSnapshot

func (o orderedStats) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kind := range store.Kinds {
		if i > 0 {
			buf.WriteByte(',')
		}
		counter, err := json.Marshal(o[kind])
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&buf, "%q:%s", kind, counter)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (o orderedStats) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, kind := range store.Kinds {
		var value yaml.Node
		if err := value.Encode(o[kind]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: kind.String()},
			&value,
		)
	}
	return node, nil
}

// writeStats renders the statistics table as json or yaml
func writeStats(w io.Writer, stats store.StatsSnapshot, output string) error {
	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(orderedStats(stats))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(orderedStats(stats)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("invalid output format %s (expected text, json or yaml)", output)
	}
}
