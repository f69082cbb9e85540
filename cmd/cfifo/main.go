package main

import (
	"flag"
	"fmt"

	"github.com/PurriKissa/m-cfifo/pkg/chaincfg"
	"github.com/PurriKissa/m-cfifo/pkg/fifohost"
)

func main() {
	// 0. read the chain config file from the command line
	arg := flag.String("config", "", "specify the config file")
	flag.Parse()
	if *arg == "" {
		fmt.Println("usage: cfifo --config <chain config file>")
		return
	}

	// 1. parse the chain config
	config, err := chaincfg.ParseConfig(*arg)
	if err != nil {
		fmt.Println(err)
		return
	}

	// 2. build the host: fifos configured, chains linked, cleared
	host, err := fifohost.New(config)
	if err != nil {
		fmt.Println(err)
		return
	}

	// 3. run the repl
	if err := fifohost.HostRepl(host).Run(); err != nil {
		fmt.Println(err)
	}
}
