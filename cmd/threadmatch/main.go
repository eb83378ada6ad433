// threadmatch - find the embroidery threads closest to a colour
//
// threadmatch ranks the thread colours of a palette, such as DMC or Anchor
// stranded cotton, by perceptual distance to a target colour and can also
// rank two-thread blends.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/threadmatch/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
