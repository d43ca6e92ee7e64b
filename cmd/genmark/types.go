package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"genmark/internal/project"
	"genmark/internal/source"
	"genmark/internal/types"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "Evaluate type projections",
	Long:  `Evaluate type projection operations against the JDK index, optionally extended with the declarations of a model file`,
}

func init() {
	typesCmd.PersistentFlags().String("model", "", "declaration model whose types are added to the index")
	typesCmd.PersistentFlags().StringSlice("params", nil, "type variables in scope when parsing type arguments")

	elem := &cobra.Command{
		Use:   "elem <type>",
		Short: "Element type of <type> projected onto --iface",
		Args:  cobra.ExactArgs(1),
		RunE:  runElem(false),
	}
	wildcard := &cobra.Command{
		Use:   "wildcard <type>",
		Short: "Element type of <type> as an upper-bounded wildcard",
		Args:  cobra.ExactArgs(1),
		RunE:  runElem(true),
	}
	for _, c := range []*cobra.Command{elem, wildcard} {
		c.Flags().String("iface", types.IterableName, "generic supertype to project onto")
		c.Flags().Int("index", 0, "type parameter index of --iface")
	}

	typesCmd.AddCommand(elem, wildcard,
		&cobra.Command{
			Use:   "args <type>",
			Short: "Type arguments <type> supplies for its declared parameters",
			Args:  cobra.ExactArgs(1),
			RunE:  runTypes(1, argsOp),
		},
		&cobra.Command{
			Use:   "build <name> [arg]...",
			Short: "Parameterize <name> with the given arguments",
			Args:  cobra.MinimumNArgs(1),
			RunE:  runTypes(0, buildOp),
		},
		&cobra.Command{
			Use:   "collection <type> <target>",
			Short: "Build <target><type>",
			Args:  cobra.ExactArgs(2),
			RunE:  runTypes(1, collectionOp),
		},
		&cobra.Command{
			Use:   "reconcile <type> <target>",
			Short: "Parameterize <target> from the arguments of <type>",
			Args:  cobra.ExactArgs(2),
			RunE:  runTypes(1, reconcileOp),
		},
		&cobra.Command{
			Use:   "name <type>",
			Short: "Qualified name of the declaration behind <type>",
			Args:  cobra.ExactArgs(1),
			RunE:  runTypes(1, nameOp),
		},
		&cobra.Command{
			Use:   "literal <type>",
			Short: "Default return literal for <type>",
			Args:  cobra.ExactArgs(1),
			RunE:  runTypes(1, literalOp),
		},
	)
}

// typeOp evaluates one projection. parsed holds the leading arguments parsed
// as types; rest holds the remaining raw arguments.
type typeOp func(idx types.Index, parsed []types.Type, rest []string, params []string) (string, error)

// runTypes parses the first n arguments as types and prints op's result.
func runTypes(n int, op typeOp) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		idx, params, err := typesEnv(cmd)
		if err != nil {
			return err
		}
		parsed := make([]types.Type, 0, n)
		for _, a := range args[:n] {
			t, err := types.Parse(a, params...)
			if err != nil {
				return fmt.Errorf("bad type %q: %w", a, err)
			}
			parsed = append(parsed, t)
		}
		out, err := op(idx, parsed, args[n:], params)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}
}

func runElem(wildcard bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		iface, err := cmd.Flags().GetString("iface")
		if err != nil {
			return fmt.Errorf("failed to get iface flag: %w", err)
		}
		index, err := cmd.Flags().GetInt("index")
		if err != nil {
			return fmt.Errorf("failed to get index flag: %w", err)
		}
		return runTypes(1, func(idx types.Index, parsed []types.Type, _, _ []string) (string, error) {
			if wildcard {
				return types.ExtractWildcardElementType(idx, parsed[0], iface, index).String(), nil
			}
			return types.ExtractElementType(idx, parsed[0], iface, index).String(), nil
		})(cmd, args)
	}
}

func argsOp(idx types.Index, parsed []types.Type, _, _ []string) (string, error) {
	got := types.ExtractDeclaredTypeArguments(idx, parsed[0])
	if got == nil {
		return "", fmt.Errorf("%s does not resolve to a declaration", parsed[0])
	}
	parts := make([]string, len(got))
	for i, t := range got {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", "), nil
}

// buildOp treats its first argument as a bare name, not a type.
func buildOp(idx types.Index, _ []types.Type, rest, params []string) (string, error) {
	args := make([]types.Type, 0, len(rest)-1)
	for _, a := range rest[1:] {
		t, err := types.Parse(a, params...)
		if err != nil {
			return "", fmt.Errorf("bad type %q: %w", a, err)
		}
		args = append(args, t)
	}
	return types.BuildParameterizedType(idx, rest[0], args...).String(), nil
}

func collectionOp(idx types.Index, parsed []types.Type, rest, _ []string) (string, error) {
	return types.ProjectOntoCollection(idx, parsed[0], rest[0]).String(), nil
}

func reconcileOp(idx types.Index, parsed []types.Type, rest, _ []string) (string, error) {
	return types.ProjectWithReconciliation(idx, parsed[0], rest[0]).String(), nil
}

func nameOp(idx types.Index, parsed []types.Type, _, _ []string) (string, error) {
	name, ok := types.QualifiedNameOf(idx, parsed[0])
	if !ok {
		return "", fmt.Errorf("%s does not resolve to a declaration", parsed[0])
	}
	return name, nil
}

func literalOp(_ types.Index, parsed []types.Type, _, _ []string) (string, error) {
	return strconv.Quote(types.DefaultReturnLiteral(parsed[0])), nil
}

// typesEnv builds the index from --model and returns the --params list.
func typesEnv(cmd *cobra.Command) (types.Index, []string, error) {
	modelPath, err := cmd.Flags().GetString("model")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get model flag: %w", err)
	}
	params, err := cmd.Flags().GetStringSlice("params")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get params flag: %w", err)
	}
	if modelPath == "" {
		return types.JDK(), params, nil
	}
	m, err := project.LoadModel(source.NewFileSet(), modelPath)
	if err != nil {
		return nil, nil, err
	}
	return m.Index(), params, nil
}
