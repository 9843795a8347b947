package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"os"

	"github.com/golang/glog"

	"github.com/robotalks/telemetry.go/pkg/framework"
	"github.com/robotalks/telemetry.go/pkg/pipeline"
)

func init() {
	pipeline.SetupFlags()
}

func main() {
	flag.Parse()
	defer glog.Flush()

	p, closer, err := pipeline.NewConfig().NewPipeline()
	if err != nil {
		glog.Exitf("setup: %v", err)
	}
	err = p.Go(framework.NewRunner().HandleSignals())
	closer.Close()
	if err != nil {
		glog.Errorf("%v", err)
		glog.Flush()
		os.Exit(1)
	}
}
