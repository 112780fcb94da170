package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jonesrussell/scrapefeed/internal/api"
	"github.com/jonesrussell/scrapefeed/internal/extract"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the extraction HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg, log, err := loadDeps()
	if err != nil {
		return err
	}

	extractor := extract.New(log.WithComponent("extract"))
	server := api.NewServer(log.WithComponent("httpd"), extractor, cfg)

	return server.Run()
}
