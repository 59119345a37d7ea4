package main

import (
	"github.com/zerogee00/bluepill/internal/cli"
	"github.com/zerogee00/bluepill/internal/metrics"
)

func main() {
	metrics.EmitBuildInfo()
	cli.Execute()
}
