package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/RodrigoMarques16/Networks-18/internal/chat"
)

func main() {
	metricsAddr := flag.String("metrics-addr", ":9090", "metrics listen address")
	wsAddr := flag.String("ws-addr", "", "optional websocket listen address")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <port>\n", os.Args[0])
		os.Exit(2)
	}
	port, err := strconv.Atoi(flag.Arg(0))
	if err != nil || port < 1 || port > 65535 {
		fmt.Fprintf(os.Stderr, "invalid port %q\n", flag.Arg(0))
		os.Exit(2)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	srv := chat.NewServer(fmt.Sprintf(":%d", port), logger)
	if err := srv.Start(); err != nil {
		logger.Error("failed to start server", "error", err)
		os.Exit(1)
	}

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
			logger.Error("metrics listener failed", "error", err)
		}
	}()

	if *wsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/ws", srv.WSHandler())
			if err := http.ListenAndServe(*wsAddr, mux); err != nil {
				logger.Error("websocket listener failed", "error", err)
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	srv.Stop()
}
