package apilogger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	securejoin "github.com/cyphar/filepath-securejoin"
)

const (
	logFilePrefix = "api-log-"
	logFileSuffix = ".jsonl"
)

// DaySummary aggregates one day of logged traffic.
type DaySummary struct {
	Project      string         `json:"project,omitempty"`
	Date         string         `json:"date"`
	Requests     int            `json:"requests"`
	InputTokens  int            `json:"input_tokens"`
	OutputTokens int            `json:"output_tokens"`
	Errors       int            `json:"errors"`
	Models       map[string]int `json:"models,omitempty"`
}

// Report reads a project's log files back into per-day summaries, oldest
// first. A project with no logs yields an empty report, not an error.
func Report(root, project string) ([]DaySummary, error) {
	dir, err := securejoin.SecureJoin(root, project)
	if err != nil {
		return nil, fmt.Errorf("invalid project name %q: %w", project, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read log directory: %w", err)
	}

	var summaries []DaySummary
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, logFilePrefix) || !strings.HasSuffix(name, logFileSuffix) {
			continue
		}
		date := strings.TrimSuffix(strings.TrimPrefix(name, logFilePrefix), logFileSuffix)

		summary, err := summarizeFile(filepath.Join(dir, name), date)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// Projects lists the project slugs that have a log directory, sorted.
func Projects(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read log root: %w", err)
	}

	var projects []string
	for _, entry := range entries {
		if entry.IsDir() {
			projects = append(projects, entry.Name())
		}
	}
	return projects, nil
}

// ReportAll aggregates every project's summaries, tagging each row with
// its project slug.
func ReportAll(root string) ([]DaySummary, error) {
	projects, err := Projects(root)
	if err != nil {
		return nil, err
	}

	var all []DaySummary
	for _, project := range projects {
		summaries, err := Report(root, project)
		if err != nil {
			return nil, err
		}
		for i := range summaries {
			summaries[i].Project = project
		}
		all = append(all, summaries...)
	}
	return all, nil
}

// summarizeFile aggregates one daily log file. A missing file yields an
// empty summary, so /stats works on days with no traffic yet.
func summarizeFile(path, date string) (DaySummary, error) {
	summary := DaySummary{Date: date}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return summary, nil
		}
		return summary, fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			continue // Skip malformed lines
		}

		summary.Requests++
		summary.InputTokens += rec.InputTokens
		summary.OutputTokens += rec.OutputTokens
		if rec.StatusCode >= 400 {
			summary.Errors++
		}
		if rec.Model != "" {
			if summary.Models == nil {
				summary.Models = make(map[string]int)
			}
			summary.Models[rec.Model]++
		}
	}

	if err := scanner.Err(); err != nil {
		return summary, fmt.Errorf("error reading log file: %w", err)
	}

	return summary, nil
}

func today() string {
	return time.Now().Format("2006-01-02")
}
