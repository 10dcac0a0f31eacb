package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
	token   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "earnhub-cli",
		Short: "EarnHub operations CLI",
		Long:  `A command line interface for operating the EarnHub wallet and fairness engine.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the EarnHub API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token for authenticated deployments")

	walletCmd := &cobra.Command{
		Use:   "wallet",
		Short: "Wallet operations",
	}
	walletCmd.AddCommand(
		&cobra.Command{
			Use:   "get <userID>",
			Short: "Show a user's wallet balances",
			Args:  cobra.ExactArgs(1),
			Run: func(cmd *cobra.Command, args []string) {
				get(fmt.Sprintf("/api/v1/wallets/%s/", args[0]))
			},
		},
		&cobra.Command{
			Use:   "entries <userID>",
			Short: "Show a user's recent ledger entries",
			Args:  cobra.ExactArgs(1),
			Run: func(cmd *cobra.Command, args []string) {
				get(fmt.Sprintf("/api/v1/wallets/%s/entries", args[0]))
			},
		},
	)
	rootCmd.AddCommand(walletCmd)

	reconcileCmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Ledger reconciliation operations",
	}
	reconcileCmd.AddCommand(
		&cobra.Command{
			Use:   "run <userID>",
			Short: "Replay a user's ledger and report drift",
			Args:  cobra.ExactArgs(1),
			Run: func(cmd *cobra.Command, args []string) {
				post(fmt.Sprintf("/api/v1/wallets/%s/reconciliation/", args[0]))
			},
		},
		&cobra.Command{
			Use:   "report <userID>",
			Short: "Show the latest drift report for a user",
			Args:  cobra.ExactArgs(1),
			Run: func(cmd *cobra.Command, args []string) {
				get(fmt.Sprintf("/api/v1/wallets/%s/reconciliation/", args[0]))
			},
		},
	)
	rootCmd.AddCommand(reconcileCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "round",
		Short: "Show the current round state",
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/round")
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func get(path string) {
	do(http.MethodGet, path)
}

func post(path string) {
	do(http.MethodPost, path)
}

func do(method, path string) {
	req, err := http.NewRequest(method, baseURL+path, nil)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("%s\n", string(body))
		return
	}
	printJSON(result)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to render response: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
