package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/denlabs/den/internal/apilogger"
	"github.com/denlabs/den/internal/identity"
	"github.com/denlabs/den/internal/logging"
)

var loggerCmd = &cobra.Command{
	Use:   "logger",
	Short: "API logger proxy and usage reports",
}

var loggerServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the API logger reverse proxy",
	Long: `Run the reverse proxy that records model API traffic, one JSONL line per
request. This is the entrypoint of the api-logger sidecar container;
sandboxes reach it through ANTHROPIC_BASE_URL.

Endpoints: /health, /stats, everything else is proxied upstream.`,
	RunE: runLoggerServe,
}

var loggerReportCmd = &cobra.Command{
	Use:   "report [project]",
	Short: "Summarize logged API traffic per day",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLoggerReport,
}

var (
	loggerListen  string
	loggerProject string
	loggerLogDir  string
	loggerTarget  string

	loggerReportJSON bool
)

func init() {
	loggerServeCmd.Flags().StringVar(&loggerListen, "listen", fmt.Sprintf(":%d", apilogger.DefaultPort), "Address to listen on")
	loggerServeCmd.Flags().StringVar(&loggerProject, "project", "", "Project slug traffic is attributed to (required)")
	loggerServeCmd.Flags().StringVar(&loggerLogDir, "log-dir", "", "Directory holding per-project log directories")
	loggerServeCmd.Flags().StringVar(&loggerTarget, "target", apilogger.DefaultTarget, "Upstream API URL")
	if err := loggerServeCmd.MarkFlagRequired("project"); err != nil {
		panic(err)
	}

	loggerReportCmd.Flags().BoolVar(&loggerReportJSON, "json", false, "Output summaries as JSON lines")

	loggerCmd.AddCommand(loggerServeCmd)
	loggerCmd.AddCommand(loggerReportCmd)
	rootCmd.AddCommand(loggerCmd)
}

func runLoggerServe(cmd *cobra.Command, args []string) error {
	logDir := loggerLogDir
	if logDir == "" {
		logDir = application.Config.LogDir
	}

	server, err := apilogger.NewServer(&apilogger.Config{
		ListenAddr: loggerListen,
		Project:    loggerProject,
		LogRoot:    logDir,
		TargetURL:  loggerTarget,
		Logger:     logging.Logger,
	})
	if err != nil {
		return err
	}

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		logging.Info("shutting down api logger")
		_ = server.Stop() // Best-effort shutdown
	}()

	logInfo("Starting api logger on %s", loggerListen)
	logInfo("Project: %s", loggerProject)
	logInfo("Upstream: %s", loggerTarget)
	logInfo("Log dir: %s", logDir)

	return server.Start()
}

func runLoggerReport(cmd *cobra.Command, args []string) error {
	root := application.Config.LogDir

	var summaries []apilogger.DaySummary
	var err error
	if len(args) > 0 {
		summaries, err = apilogger.Report(root, identity.Slugify(args[0]))
	} else {
		summaries, err = apilogger.ReportAll(root)
	}
	if err != nil {
		return err
	}

	if len(summaries) == 0 {
		logInfo("No logged traffic found")
		return nil
	}

	if loggerReportJSON {
		for _, s := range summaries {
			data, err := json.Marshal(s)
			if err != nil {
				return fmt.Errorf("failed to marshal summary: %w", err)
			}
			fmt.Println(string(data))
		}
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tPROJECT\tREQUESTS\tIN\tOUT\tERRORS")
	fmt.Fprintln(w, "----\t-------\t--------\t--\t---\t------")
	for _, s := range summaries {
		project := s.Project
		if project == "" && len(args) > 0 {
			project = identity.Slugify(args[0])
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\n",
			s.Date, project, s.Requests, s.InputTokens, s.OutputTokens, s.Errors)
	}
	return w.Flush()
}
