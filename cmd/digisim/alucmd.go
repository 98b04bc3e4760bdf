package main

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dbernard/digisim/alu"
	"github.com/dbernard/digisim/core"
	"github.com/pkg/errors"
)

var (
	aluAArg int
	aluBArg int
)

var opNames = map[string]alu.Op{
	"NOT": alu.OpNot, "OR": alu.OpOr, "AND": alu.OpAnd,
	"EQ": alu.OpEq, "NEQ": alu.OpNeq,
	"GT": alu.OpGt, "LT": alu.OpLt, "GTE": alu.OpGte, "LTE": alu.OpLte,
	"ADD": alu.OpAdd,
}

// newALUCmd returns a command that runs the 8-bit ALU for one opcode and
// operand pair.
func newALUCmd() *cobra.Command {
	var opArg string
	cmd := &cobra.Command{
		Use:   "alu",
		Short: "Run the 8-bit ALU for one opcode and operand pair",
		Long: `digisim alu builds the 8-bit ALU and runs it once for the given
opcode and operands, printing its 9 output ports (8 result bits plus the
flag/carry bit).

Example:

  digisim alu --op ADD --a 15 --b 1
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			op, ok := opNames[strings.ToUpper(opArg)]
			if !ok {
				return errors.Errorf("unknown op %q", opArg)
			}

			reg := core.NewRegistry()
			spec, encode := alu.Build(reg)
			c, err := core.BuildSpec(reg, spec)
			if err != nil {
				return err
			}

			initial := aluInitial(op, encode, aluAArg, aluBArg)

			cycles := viper.GetInt("cycles")
			out, err := core.Run(c, initial, cycles)
			if err != nil {
				return err
			}
			printPorts(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&opArg, "op", "", "operation: NOT, OR, AND, EQ, NEQ, GT, LT, GTE, LTE, ADD")
	if err := cmd.MarkFlagRequired("op"); err != nil {
		log.Fatalf("marking --op required: %v", err)
	}
	cmd.Flags().IntVar(&aluAArg, "a", 0, "operand A, 0-255")
	cmd.Flags().IntVar(&aluBArg, "b", 0, "operand B, 0-255")

	return cmd
}

// aluInitial builds the ALU's 20-bit initial assignment: 4 opcode-select
// bits via encode, then A and B each as 8 MSB-first bits starting at in5
// and in13 respectively.
func aluInitial(op alu.Op, encode func(alu.Op) [4]int, a, b int) map[string]int {
	initial := map[string]int{}
	for i, bit := range encode(op) {
		initial[fmt.Sprintf("in%d", i+1)] = bit
	}
	for i := 0; i < 8; i++ {
		initial[fmt.Sprintf("in%d", 5+i)] = (a >> uint(7-i)) & 1
	}
	for i := 0; i < 8; i++ {
		initial[fmt.Sprintf("in%d", 13+i)] = (b >> uint(7-i)) & 1
	}
	return initial
}
