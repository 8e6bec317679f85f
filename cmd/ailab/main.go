/*
Copyright © 2025 KI7MT
SPDX-License-Identifier: Apache-2.0
*/
package main

import "github.com/KI7MT/ki7mt-ai-lab-devel/pkg/cli"

func main() {
	cli.Execute()
}
