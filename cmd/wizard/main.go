// Command wizard is a terminal client for the recommendation API. It walks
// the four-step form, submits it, and caches returned results locally so
// they can be reopened by id.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"picki-backend/internal/recommendations"
	"picki-backend/internal/resultscache"
	"picki-backend/internal/wizard"
)

func main() {
	apiURL := flag.String("api", "http://localhost:8080", "API base URL")
	token := flag.String("token", os.Getenv("PICKI_TOKEN"), "Bearer token for the API")
	stateDir := flag.String("state-dir", defaultStateDir(), "Directory for wizard state and cached results")
	show := flag.String("show", "", "Print a cached result by id and exit")
	reset := flag.Bool("reset", false, "Discard saved form state before starting")
	flag.Parse()

	cache := resultscache.New(resultscache.NewFilePersister(*stateDir))

	if *show != "" {
		result, ok := cache.Get(*show)
		if !ok {
			exitErr(fmt.Sprintf("no cached result for id %q", *show))
		}
		printResult(result)
		return
	}

	snapshots := wizard.NewFileSnapshotStore(filepath.Join(*stateDir, "form.json"))
	form := wizard.NewForm()
	if *reset {
		if err := snapshots.Clear(); err != nil {
			exitErr(fmt.Sprintf("clear form state: %v", err))
		}
	} else if data, ok, err := snapshots.Load(); err != nil {
		exitErr(fmt.Sprintf("load form state: %v", err))
	} else if ok {
		form.Data = data
		fmt.Println("Resuming saved answers (run with -reset to start over).")
	}

	in := bufio.NewScanner(os.Stdin)
	runSteps(form, in, snapshots)

	var guard wizard.Guard
	if !guard.TryAcquire() {
		exitErr("a submission is already in flight")
	}
	defer guard.Release()

	fmt.Println("Generating recommendations...")
	id, result, err := submit(*apiURL, *token, form.Request())
	if err != nil {
		exitErr(err.Error())
	}

	cache.Save(id, result)
	form.Reset()
	if err := snapshots.Clear(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: clear form state: %v\n", err)
	}

	fmt.Printf("\nRecommendation id: %s (reopen later with -show %s)\n\n", id, id)
	printResult(result)
}

func runSteps(form *wizard.Form, in *bufio.Scanner, snapshots wizard.SnapshotStore) {
	for {
		switch form.CurrentStep {
		case wizard.StepProductType:
			form.SetProductType(choose(in, "Product type", recommendations.ProductTypes, form.Data.ProductType))
		case wizard.StepPurpose:
			form.SetPurpose(choose(in, "Main purpose", recommendations.Purposes, form.Data.Purpose))
			if form.Data.Purpose == "other" {
				form.SetCustomPurpose(prompt(in, "Describe the purpose", form.Data.CustomPurpose))
			}
		case wizard.StepBudget:
			readBudget(form, in)
		case wizard.StepParameters:
			readParameters(form, in)
		}

		atLast := form.CurrentStep == wizard.TotalSteps-1
		if !form.Next() {
			for field, code := range form.Errors {
				fmt.Printf("  %s: %s\n", field, code)
			}
			continue
		}
		if err := snapshots.Save(form.Data); err != nil {
			fmt.Fprintf(os.Stderr, "warning: save form state: %v\n", err)
		}
		if atLast {
			return
		}
	}
}

func choose(in *bufio.Scanner, label string, options []string, current string) string {
	fmt.Printf("\n%s:\n", label)
	for i, opt := range options {
		marker := " "
		if opt == current {
			marker = "*"
		}
		fmt.Printf("  %s %d) %s\n", marker, i+1, opt)
	}
	for {
		raw := prompt(in, "Choice", "")
		if raw == "" && current != "" {
			return current
		}
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= len(options) {
			return options[n-1]
		}
		for _, opt := range options {
			if strings.EqualFold(raw, opt) {
				return opt
			}
		}
		fmt.Printf("  pick 1-%d\n", len(options))
	}
}

func readBudget(form *wizard.Form, in *bufio.Scanner) {
	current := ""
	if form.Data.Budget != nil {
		current = strconv.FormatFloat(*form.Data.Budget, 'f', -1, 64)
	}
	raw := prompt(in, "\nBudget in EUR", current)
	if raw == "" {
		return
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		fmt.Println("  not a number")
		return
	}
	form.SetBudget(value)
}

func readParameters(form *wizard.Form, in *bufio.Scanner) {
	fmt.Printf("\nPriority parameters (up to %d, comma separated):\n", wizard.MaxSelections)
	fmt.Printf("  options: %s\n", strings.Join(recommendations.Parameters, ", "))
	if len(form.Data.Parameters) > 0 {
		fmt.Printf("  selected: %s\n", strings.Join(form.Data.Parameters, ", "))
	}
	raw := prompt(in, "Toggle", "")
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if !form.ToggleParameter(name) && len(form.Data.Parameters) >= wizard.MaxSelections {
			fmt.Printf("  %s skipped, %d already selected\n", name, wizard.MaxSelections)
		}
	}
}

func prompt(in *bufio.Scanner, label, current string) string {
	if current != "" {
		fmt.Printf("%s [%s]: ", label, current)
	} else {
		fmt.Printf("%s: ", label)
	}
	if !in.Scan() {
		fmt.Println()
		os.Exit(1)
	}
	answer := strings.TrimSpace(in.Text())
	if answer == "" {
		return current
	}
	return answer
}

func submit(apiURL, token string, req recommendations.Request) (string, recommendations.Result, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", recommendations.Result{}, err
	}

	httpReq, err := http.NewRequest(http.MethodPost, strings.TrimRight(apiURL, "/")+"/api/v1/recommend", bytes.NewReader(payload))
	if err != nil {
		return "", recommendations.Result{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 150 * time.Second}
	resp, err := client.Do(httpReq)
	if err != nil {
		return "", recommendations.Result{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", recommendations.Result{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return "", recommendations.Result{}, fmt.Errorf("api error (%d): %s", resp.StatusCode, apiErrorMessage(body))
	}

	var parsed struct {
		ID              string                 `json:"id"`
		Recommendations recommendations.Result `json:"recommendations"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", recommendations.Result{}, fmt.Errorf("decode response: %w", err)
	}
	return parsed.ID, parsed.Recommendations, nil
}

func apiErrorMessage(body []byte) string {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	return strings.TrimSpace(string(body))
}

func printResult(result recommendations.Result) {
	for i, device := range result.Results {
		fmt.Printf("%d. %s (score %.0f)\n", i+1, device.DeviceName, device.Score)
		if device.Price.Amount != nil {
			fmt.Printf("   price: %.2f %s", *device.Price.Amount, device.Price.Currency)
			if device.OverBudgetBy != nil && *device.OverBudgetBy > 0 {
				fmt.Printf(" (%.0f over budget)", *device.OverBudgetBy)
			}
			fmt.Println()
		}
		fmt.Printf("   %s\n", device.WhyRanked)
	}
	if result.OverallConclusion != "" {
		fmt.Printf("\n%s\n", result.OverallConclusion)
	}
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".picki"
	}
	return filepath.Join(home, ".picki")
}

func exitErr(msg string) {
	fmt.Fprintln(os.Stderr, "error: "+msg)
	os.Exit(1)
}
