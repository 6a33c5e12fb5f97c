package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	applookup "github.com/bryanwahyu/pwncheck/internal/application/lookup"
	"github.com/bryanwahyu/pwncheck/internal/bootstrap"
	"github.com/bryanwahyu/pwncheck/internal/config"
	"github.com/bryanwahyu/pwncheck/internal/domain/breach"
)

// Exit codes. No breaches and an upstream failure stay distinguishable.
const (
	exitFound    = 0
	exitFatal    = 1
	exitNotFound = 2
	exitUpstream = 3
)

func main() {
	log.SetOutput(os.Stderr)
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout))
}

func run(ctx context.Context, args []string, in io.Reader, out io.Writer) int {
	cfg, err := config.Load(bootstrap.ConfigPath())
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return exitFatal
	}

	account, err := readAccount(args, in, out)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return exitFatal
	}

	svc, err := bootstrap.NewLookupService(ctx, cfg)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return exitFatal
	}

	rep, err := svc.Run(ctx, account)
	printReport(out, account, rep, err)
	return exitCode(rep, err)
}

// readAccount takes the first argument or prompts for one line.
func readAccount(args []string, in io.Reader, out io.Writer) (string, error) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return strings.TrimSpace(args[0]), nil
	}
	fmt.Fprint(out, "Enter the email address or username to check: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	account := strings.TrimSpace(line)
	if account == "" {
		return "", breach.ErrEmptyAccount
	}
	return account, nil
}

func exitCode(rep *applookup.Report, err error) int {
	if err != nil {
		if errors.Is(err, breach.ErrUpstreamUnavailable) {
			return exitUpstream
		}
		return exitFatal
	}
	switch rep.Outcome {
	case breach.OutcomeFound:
		return exitFound
	case breach.OutcomeNotFound:
		return exitNotFound
	default:
		return exitUpstream
	}
}

func printReport(out io.Writer, account string, rep *applookup.Report, err error) {
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}
	switch rep.Outcome {
	case breach.OutcomeNotFound:
		fmt.Fprintf(out, "No breaches found for %s.\n", account)
		return
	case breach.OutcomeError:
		fmt.Fprintf(out, "Error: %d - %s\n", rep.StatusCode, rep.Message)
		return
	}

	fmt.Fprintf(out, "Breaches found for %s: %d\n\n", account, len(rep.Rows))
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tBREACH DATE\tVERIFIED\tDATA CLASSES")
	for _, r := range rep.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", r.Name, r.BreachDate, r.IsVerified, r.DataClassesText())
	}
	tw.Flush()

	if rep.Summary != "" {
		fmt.Fprintf(out, "\nSummary:\n%s\n", rep.Summary)
	}
	if rep.ChartPath != "" {
		fmt.Fprintf(out, "\nChart saved as %s\n", rep.ChartPath)
	}
	for _, p := range rep.ReportPaths {
		fmt.Fprintf(out, "Report saved as %s\n", p)
	}
	for _, u := range rep.ArtifactURLs {
		fmt.Fprintf(out, "Published %s\n", u)
	}
}
