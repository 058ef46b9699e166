// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"k8s.io/klog/v2"

	"github.com/gomlx/varlist/pkg/core/tensorlist"
	"github.com/gomlx/varlist/pkg/core/tensors"
	"github.com/gomlx/varlist/pkg/interpreter"
	"github.com/gomlx/varlist/pkg/kernels/listops/graphs"
)

var (
	headerRowStyle = lipgloss.NewStyle().Reverse(true).
			Padding(0, 2, 0, 2).Align(lipgloss.Center)
	oddRowStyle = lipgloss.NewStyle().Faint(false).
			PaddingLeft(1).PaddingRight(1)
	evenRowStyle = lipgloss.NewStyle().Faint(true).
			PaddingLeft(1).PaddingRight(1)
	absentRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "9", Dark: "9"}).
			PaddingLeft(1).PaddingRight(1)

	titleStyle = lipgloss.NewStyle().Bold(true).Padding(1, 4, 1, 4)
)

// newTable returns a table whose first column is right-aligned. Rows listed in highlight use absentRowStyle.
func newTable(withHeader bool, highlight map[int]bool) *lgtable.Table {
	return lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		StyleFunc(func(row, col int) (s lipgloss.Style) {
			switch {
			case withHeader && row < 0:
				return headerRowStyle
			case highlight[row]:
				s = absentRowStyle
			case row%2 == 0:
				s = oddRowStyle
			default:
				s = evenRowStyle
			}
			if col == 0 {
				s = s.Align(lipgloss.Right)
			} else {
				s = s.Align(lipgloss.Left)
			}
			return
		})
}

// report prints the interpreter state after running the graph. evalErr is the error returned by the run, if any.
func report(interp *interpreter.Interpreter, g *graphs.ListGraph, idx graphs.Indices, evalErr error) {
	fmt.Println(titleStyle.Render("Graph"))
	table := newTable(false, nil)
	table.Row("graph", interp.Name())
	table.Row("# nodes", humanize.Comma(int64(interp.NumNodes())))
	table.Row("# tensors", humanize.Comma(int64(interp.NumTensors())))
	options := interp.Options()
	table.Row("pool_buffers", fmt.Sprint(options.PoolBuffers))
	table.Row("force_dynamic", fmt.Sprint(options.ForceDynamic))
	if options.MaxListElements > 0 {
		table.Row("max_list_elements", humanize.Comma(int64(options.MaxListElements)))
	}
	if spec, found := tensorlist.SpecOf(interp.Tensor(idx.FinalList)); found {
		table.Row("list (prepare)", spec.String())
	} else {
		table.Row("list (prepare)", "unknown")
	}
	if evalErr != nil {
		table.Row("error", evalErr.Error())
	}
	fmt.Println(table.Render())

	if list, err := tensorlist.FromVariantTensor(interp.Tensor(idx.FinalList)); err == nil {
		if klog.V(1).Enabled() {
			klog.Infof("final list: %s", list.Describe(*flagPrecision))
		}
		fmt.Println(titleStyle.Render("List"))
		absent := make(map[int]bool)
		table = newTable(true, absent)
		table.Headers("#", "Shape", "Bytes", "Value")
		for ii := range list.NumElements() {
			element := list.At(ii)
			if element == nil {
				absent[ii] = true
				table.Row(fmt.Sprint(ii), "-", "-", "<absent>")
				continue
			}
			table.Row(fmt.Sprint(ii), element.Shape().String(), humanize.Bytes(uint64(element.Memory())),
				element.Summary(*flagPrecision))
		}
		fmt.Println(table.Render())
	}

	stacked := interp.Tensor(idx.Stacked)
	if evalErr != nil || !stacked.IsAllocated() {
		return
	}
	fmt.Println(titleStyle.Render("Stacked"))
	table = newTable(false, nil)
	table.Row("shape", stacked.Shape().String())
	table.Row("allocation", allocationDescription(stacked))
	table.Row("bytes", humanize.Bytes(uint64(stacked.Memory())))
	table.Row("value", stacked.Summary(*flagPrecision))
	fmt.Println(table.Render())
	if len(g.Items) == 0 && stacked.Size() > 0 {
		fmt.Println("(no items were set, all values are zero)")
	}
}

func allocationDescription(t *tensors.Tensor) string {
	switch t.AllocationType() {
	case tensors.AllocStatic:
		return "static (sized during prepare)"
	case tensors.AllocDynamic:
		return "dynamic (sized during invoke)"
	}
	return t.AllocationType().String()
}
