// Copyright (c) 2026 The ipdiff authors
// SPDX-License-Identifier: MIT

package ipdiff_test

import (
	"fmt"
	"os"

	"github.com/netzlab/ipdiff"
)

func ExampleComputeDifference() {
	res := ipdiff.ComputeDifference(
		"192.168.0.0/16",
		"192.168.1.0/24",
		ipdiff.Minimal,
	)

	res.Fprint(os.Stdout)
	fmt.Println("addresses:", res.Stats.Output.Addresses)

	// Output:
	// 192.168.0.0/24
	// 192.168.2.0/23
	// 192.168.4.0/22
	// 192.168.8.0/21
	// 192.168.16.0/20
	// 192.168.32.0/19
	// 192.168.64.0/18
	// 192.168.128.0/17
	// addresses: 65280
}

func ExampleComputeDifference_constrained() {
	res := ipdiff.ComputeDifference(
		"10.0.0.0/22",
		"",
		ipdiff.Constrained(24),
	)

	res.Fprint(os.Stdout)

	// Output:
	// 10.0.0.0/24
	// 10.0.1.0/24
	// 10.0.2.0/24
	// 10.0.3.0/24
}

func ExampleFindFreeSpace() {
	free := ipdiff.FindFreeSpace(
		"10.0.0.0/22\n10.1.0.0/24",
		"10.0.1.0/24\n10.1.0.0/25",
		24,
	)

	for _, block := range free.AvailableBlocks {
		fmt.Println(block)
	}
	fmt.Println("total:", free.TotalAddresses)

	// Output:
	// 10.0.0.0/24
	// 10.0.2.0/23
	// total: 768
}
