// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// varlist builds a small graph that reserves a tensor list, sets some of its items and stacks it, and then prints
// the result.
//
// Example:
//
//	varlist -dtype=float32 -element_shape=-1,2 -num=3 -set=0:1,2 -set=2:5,6
//
// The interpreter configuration can be given with -config or with the environment variable VARLIST_INTERPRETER,
// which takes precedence. See interpreter.ParseConfig.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/janpfeifer/must"
	"github.com/muesli/termenv"
	"k8s.io/klog/v2"

	"github.com/gomlx/varlist/pkg/core/status"
	"github.com/gomlx/varlist/pkg/interpreter"
	"github.com/gomlx/varlist/pkg/kernels/listops/graphs"
)

var (
	flagDType        = flag.String("dtype", "float32", "DType of the list elements.")
	flagElementShape = flag.String("element_shape", "",
		"Element shape given to Reserve, as comma-separated dimensions with -1 for unknown ones. Empty means unranked.")
	flagNum    = flag.Int("num", 0, "Number of elements reserved in the list.")
	flagTarget = flag.String("target", "",
		"Target element shape given to Stack, same format as -element_shape. Empty means no target.")
	flagFed = flag.Bool("fed", false,
		"Feed the element shape, the number of elements and the target as graph inputs, so they are unknown during prepare.")
	flagConfig = flag.String("config", "",
		fmt.Sprintf("Interpreter configuration, used if the environment variable %s is not set.",
			interpreter.VARLIST_INTERPRETER))
	flagPrecision = flag.Int("precision", 4, "Precision used when printing floating point values.")
	flagColor     = flag.String("color", "auto", "Use colors in the output: auto, always or never.")

	flagItems []itemFlag
)

func init() {
	flag.Func("set", "Item to set before stacking, as index:values, with values comma-separated. "+
		"If the element shape is fully known the values are reshaped to it, otherwise the item is a vector. "+
		"It can be repeated.", func(value string) error {
		item, err := parseItemFlag(value)
		if err != nil {
			return err
		}
		flagItems = append(flagItems, item)
		return nil
	})
}

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if len(flag.Args()) > 0 {
		klog.Exitf("Unexpected arguments %q. See 'varlist -help'.", flag.Args())
	}
	setColorProfile(*flagColor)
	if *flagConfig != "" {
		interpreter.DefaultConfig = *flagConfig
	}

	g := &graphs.ListGraph{
		ElementDType: must.M1(dtypes.DTypeString(*flagDType)),
		NumElements:  *flagNum,
		FedInputs:    *flagFed,
	}
	if *flagElementShape != "" {
		g.ElementShape = must.M1(parseDims(*flagElementShape))
	}
	if *flagTarget != "" {
		g.HasTarget = true
		g.Target = must.M1(parseDims(*flagTarget))
	}
	for _, item := range flagItems {
		g.Items = append(g.Items, graphs.Item{
			Index: item.index,
			Value: must.M1(item.tensor(g.ElementDType, g.ElementShape)),
		})
	}

	os.Exit(run(g))
}

// run executes the graph, prints the report and returns the exit code.
func run(g *graphs.ListGraph) int {
	interp, idx, err := g.Run()
	if interp == nil {
		klog.Errorf("Failed to build graph (%s): %v", status.CodeOf(err), err)
		return 1
	}
	defer func() {
		if err := interp.Finalize(); err != nil {
			klog.Errorf("Failed to finalize interpreter: %+v", err)
		}
	}()
	if err != nil {
		klog.Errorf("Failed (%s): %v", status.CodeOf(err), err)
	}
	report(interp, g, idx, err)
	if err != nil {
		return 1
	}
	return 0
}

// setColorProfile configures lipgloss according to the -color flag.
func setColorProfile(mode string) {
	switch mode {
	case "always":
		lipgloss.SetColorProfile(termenv.TrueColor)
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	case "auto":
		lipgloss.SetColorProfile(termenv.NewOutput(os.Stdout).EnvColorProfile())
	default:
		klog.Exitf("Invalid -color=%q, valid values are auto, always or never", mode)
	}
}
