// SPDX-License-Identifier: Apache-2.0

package main

import "github.com/mountebank-go/predicate/cmd"

func main() {
	cmd.Execute()
}
