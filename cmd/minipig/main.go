package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Brownie44l1/minipig/internal/apps"
	"github.com/Brownie44l1/minipig/internal/response"
	"github.com/Brownie44l1/minipig/internal/server"
)

func main() {
	addr := flag.String("addr", ":7777", "host:port to listen on")
	strict := flag.Bool("strict-headers", false, `write "Name: value" headers instead of "Name : value"`)
	recovery := flag.Bool("recover", false, "turn application panics into errors")
	backlog := flag.Int("backlog", 1, "listen queue length for all-interfaces binds")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: minipig [flags] package:application\n\napplications: %s\n\nflags:\n",
			strings.Join(apps.Names(), ", "))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Provide an application as package:name")
		flag.Usage()
		os.Exit(2)
	}

	app, err := apps.Lookup(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot find application: %v\n", err)
		os.Exit(1)
	}

	level, err := server.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	config := server.DefaultConfig()
	config.Addr = *addr
	config.Backlog = *backlog
	config.Logger = server.NewLogger(os.Stdout, level).With(server.Field{Key: "app", Value: flag.Arg(0)})
	if *strict {
		config.HeaderSeparator = response.StandardSeparator
	}

	srv, err := server.Listen(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	srv.SetApplication(app)
	if *recovery {
		srv.Use(server.RecoveryMiddleware(srv.Logger))
	}
	srv.Use(server.LoggingMiddleware(srv.Logger))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		srv.Close()
	}()

	fmt.Printf("minipig: serving HTTP on port %d ...\n", srv.Identity().Port)

	err = srv.ServeForever()

	stats := srv.Stats()
	fmt.Printf("requests=%d errors=%d avg_latency=%s\n", stats.RequestsTotal, stats.ErrorsTotal, stats.AverageLatency)

	if err != nil && !errors.Is(err, server.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
