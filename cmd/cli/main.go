package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
)

const (
	defaultServerURL = "http://localhost:8080"
	version          = "0.1.0"
)

type CLIConfig struct {
	ServerURL string
	Verbose   bool
}

func main() {
	var (
		serverURL = flag.String("server", defaultServerURL, "Forecast server URL")
		verbose   = flag.Bool("v", false, "Verbose output")
		command   = flag.String("cmd", "", "Command to execute")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help || *command == "" {
		showHelp()
		return
	}

	config := CLIConfig{
		ServerURL: *serverURL,
		Verbose:   *verbose,
	}

	args := flag.Args()

	switch *command {
	case "recompute":
		handleRecompute(config, args)
	case "models":
		handleGet(config, "/api/v1/models", "Fitted Model Families")
	case "features":
		handleGet(config, "/api/v1/features", "Predictor Importance Ranking")
	case "result":
		handleGet(config, "/api/v1/result", "Last Recomputation Result")
	case "health":
		handleHealth(config)
	default:
		fmt.Printf("Unknown command: %s\n", *command)
		showHelp()
		os.Exit(1)
	}
}

func showHelp() {
	fmt.Printf(`Commodity Forecast Engine CLI v%s

USAGE:
    forecast-cli --cmd <command> [options] [args]

COMMANDS:
    recompute - Recompute the forecast for a target month
    models    - List fitted model families and their scores
    features  - Show the predictor importance ranking
    result    - Show the last recomputation result
    health    - Check system health

RECOMPUTATION:
    forecast-cli --cmd recompute --year 2026 --month 6
    forecast-cli --cmd recompute --year 2026 --month 6 --threshold 185
    forecast-cli --cmd recompute --year 2026 --month 6 --predictor fuel_cost --adjust 10

MONITORING:
    forecast-cli --cmd models
    forecast-cli --cmd features
    forecast-cli --cmd health

OPTIONS:
    --server   Server URL (default: http://localhost:8080)
    --v        Verbose output
    --help     Show this help message

`, version)
}

func handleRecompute(config CLIConfig, args []string) {
	var (
		year      = getArg(args, "--year", "0")
		month     = getArg(args, "--month", "0")
		adjust    = getArg(args, "--adjust", "0")
		predictor = getArg(args, "--predictor", "")
		window    = getArg(args, "--window", "24")
		threshold = getArg(args, "--threshold", "")
	)

	var yearInt, monthInt, windowInt int
	var adjustFloat float64
	if _, err := fmt.Sscanf(year, "%d", &yearInt); err != nil {
		fmt.Printf("Error: Invalid year '%s': %v\n", year, err)
		return
	}
	if _, err := fmt.Sscanf(month, "%d", &monthInt); err != nil {
		fmt.Printf("Error: Invalid month '%s': %v\n", month, err)
		return
	}
	fmt.Sscanf(window, "%d", &windowInt)
	fmt.Sscanf(adjust, "%f", &adjustFloat)

	reqData := map[string]interface{}{
		"target_year":    yearInt,
		"target_month":   monthInt,
		"adjust_percent": adjustFloat,
		"predictor":      predictor,
		"window_points":  windowInt,
	}
	// The threshold field is optional; the server applies its configured
	// default when it is absent.
	if threshold != "" {
		var thresholdFloat float64
		if _, err := fmt.Sscanf(threshold, "%f", &thresholdFloat); err != nil {
			fmt.Printf("Error: Invalid threshold '%s': %v\n", threshold, err)
			return
		}
		reqData["threshold"] = thresholdFloat
	}

	jsonData, _ := json.Marshal(reqData)
	url := fmt.Sprintf("%s/api/v1/recompute", config.ServerURL)

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		fmt.Printf("Error recomputing forecast: %v\n", err)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Printf("Error reading response: %v\n", err)
		return
	}

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Recompute failed: %s\n", string(body))
		return
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Error parsing response: %v\n", err)
		return
	}

	fmt.Printf("📈 Forecast recomputed for %04d-%02d\n", yearInt, monthInt)
	if alert, ok := result["alert"].(map[string]interface{}); ok {
		fmt.Printf("Alert: %v\n", alert["message"])
	}
	if config.Verbose {
		prettyJSON, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(prettyJSON))
	} else {
		fmt.Println("Re-run with --v for the full forecast payload")
	}
}

func handleGet(config CLIConfig, path, title string) {
	url := config.ServerURL + path

	resp, err := http.Get(url)
	if err != nil {
		fmt.Printf("Error fetching %s: %v\n", path, err)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Printf("Error reading response: %v\n", err)
		return
	}

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed: %s\n", string(body))
		return
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Error parsing response: %v\n", err)
		return
	}

	fmt.Printf("📊 %s\n", title)
	prettyJSON, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(prettyJSON))
}

func handleHealth(config CLIConfig) {
	url := fmt.Sprintf("%s/health", config.ServerURL)

	resp, err := http.Get(url)
	if err != nil {
		fmt.Printf("❌ Health check failed: %v\n", err)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Printf("Error reading response: %v\n", err)
		return
	}

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("❌ System unhealthy: %s\n", string(body))
		return
	}

	fmt.Println("✅ System is healthy")
	if config.Verbose {
		var result map[string]interface{}
		if err := json.Unmarshal(body, &result); err == nil {
			prettyJSON, _ := json.MarshalIndent(result, "", "  ")
			fmt.Println(string(prettyJSON))
		}
	}
}

func getArg(args []string, flag, defaultValue string) string {
	for i, arg := range args {
		if arg == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return defaultValue
}
