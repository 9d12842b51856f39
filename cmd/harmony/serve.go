package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jordan/harmony/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes /parse/text, /parse/image, and /health.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	p, cleanup, err := buildPipeline(context.Background())
	if err != nil {
		return err
	}
	defer cleanup()

	srv := server.New(server.Config{Port: servePort}, p)
	return srv.Start()
}
