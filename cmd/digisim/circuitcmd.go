package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dbernard/digisim/circuitfile"
	"github.com/dbernard/digisim/core"
)

var (
	circuitFileArg string
	circuitSetArg  string
)

// newCircuitCmd returns a command that loads a declarative circuit file
// and runs its top-level composite.
func newCircuitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "circuit",
		Short: "Load and run a declarative circuit file",
		Long: `digisim circuit loads a YAML circuit file (see circuitfile.Document)
and runs its top-level composite against an explicit set of input port
assignments, printing the settled output ports.

Example:

  digisim circuit --file ./examples/xor.yaml --set in1=1,in2=0
`,
		RunE: runCircuit,
	}

	cmd.Flags().StringVarP(&circuitFileArg, "file", "f", "", "path to a circuit YAML file")
	if err := cmd.MarkFlagRequired("file"); err != nil {
		log.Fatalf("marking --file required: %v", err)
	}
	cmd.Flags().StringVarP(&circuitSetArg, "set", "s", "", "comma-separated name=value input assignments")

	return cmd
}

func runCircuit(cmd *cobra.Command, args []string) error {
	initial, err := parseAssignments(circuitSetArg)
	if err != nil {
		return err
	}

	doc, err := circuitfile.Load(circuitFileArg)
	if err != nil {
		return err
	}

	reg := core.NewRegistry()
	c, err := doc.Build(reg)
	if err != nil {
		return err
	}

	cycles := viper.GetInt("cycles")
	out, err := core.Run(c, initial, cycles)
	if err != nil {
		return err
	}
	printPorts(out)
	return nil
}
