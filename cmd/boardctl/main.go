package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fadilmartias/talent-pipeline/internal/client"
	"github.com/fadilmartias/talent-pipeline/internal/config"
	"github.com/fadilmartias/talent-pipeline/internal/tui"
)

const usage = `usage: boardctl [-config path] <command>

commands:
  jobs                     list your job postings
  board <job-id>           open the interactive pipeline board
  export <job-id> <file>   save the board as an .xlsx workbook
`

func main() {
	configPath := flag.String("config", config.DefaultBoardctlPath(), "path to boardctl.toml")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	cfg, err := config.LoadBoardctlFrom(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}
	if cfg.UserID == "" {
		fmt.Fprintf(os.Stderr, "user_id is not set: add it to %s or export BOARDCTL_USER_ID\n", *configPath)
		os.Exit(1)
	}

	api := client.New(cfg)
	timeout := time.Duration(cfg.Timeout) * time.Second
	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	switch args[0] {
	case "jobs":
		err = listJobs(api, timeout)
	case "board":
		if len(args) != 2 {
			flag.Usage()
			os.Exit(2)
		}
		_, err = tea.NewProgram(tui.NewBoardModel(api, args[1], timeout), tea.WithAltScreen()).Run()
	case "export":
		if len(args) != 3 {
			flag.Usage()
			os.Exit(2)
		}
		err = exportBoard(api, args[1], args[2], timeout)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func listJobs(api *client.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	jobs, err := api.MyJobs(ctx)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		fmt.Println("No job postings yet.")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTAGES\tCREATED")
	for _, j := range jobs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", j.ID, j.Title, len(j.Stages), j.CreatedAt.Format("2006-01-02"))
	}
	return w.Flush()
}

func exportBoard(api *client.Client, jobID, path string, timeout time.Duration) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := api.Export(ctx, jobID, f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Board saved to %s\n", path)
	return nil
}
