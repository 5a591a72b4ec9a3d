package main

import (
	"bytes"
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
		Use:   "mhbank-cli",
		Short: "mhbank CLI tool",
		Long:  `A command line interface for interacting with the mhbank API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the mhbank API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("MHBANK_TOKEN"), "Bearer token (defaults to MHBANK_TOKEN)")

	loginCmd := &cobra.Command{
		Use:   "login <account-id> <credential>",
		Short: "Authenticate and print a session token",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			login(args[0], args[1])
		},
	}

	balanceCmd := &cobra.Command{
		Use:   "balance",
		Short: "Show the authenticated account's balance",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/me/balance")
		},
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show the authenticated account's history",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/me/history")
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the authenticated account's history as CSV",
		Run: func(cmd *cobra.Command, args []string) {
			exportHistory()
		},
	}

	depositsCmd := &cobra.Command{
		Use:   "deposits",
		Short: "Pending deposit operations (admin)",
	}

	depositsPendingCmd := &cobra.Command{
		Use:   "pending",
		Short: "List deposits awaiting approval",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/admin/deposits/pending")
		},
	}

	depositsApproveCmd := &cobra.Command{
		Use:   "approve <deposit-id>",
		Short: "Approve a pending deposit",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/admin/deposits/"+args[0]+"/approve", nil)
		},
	}

	depositsCmd.AddCommand(depositsPendingCmd, depositsApproveCmd)
	rootCmd.AddCommand(loginCmd, balanceCmd, historyCmd, exportCmd, depositsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func login(accountID, credential string) {
	payload, _ := json.Marshal(map[string]string{
		"account_id": accountID,
		"credential": credential,
	})

	body, status := request(http.MethodPost, "/api/v1/login", payload)
	if status != http.StatusOK {
		fmt.Printf("Login FAILED (Status: %d)\nResponse: %s\n", status, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s\n", result["token"])
}

func getJSON(path string) {
	body, status := request(http.MethodGet, path, nil)
	printJSON(body, status)
}

func postJSON(path string, payload []byte) {
	body, status := request(http.MethodPost, path, payload)
	printJSON(body, status)
}

func exportHistory() {
	body, status := request(http.MethodGet, "/api/v1/me/history/export", nil)
	if status != http.StatusOK {
		fmt.Printf("Export FAILED (Status: %d)\nResponse: %s\n", status, string(body))
		os.Exit(1)
	}
	os.Stdout.Write(body)
}

func printJSON(body []byte, status int) {
	if status < 200 || status >= 300 {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", status, string(body))
		os.Exit(1)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}
	fmt.Println(buf.String())
}

func request(method, path string, payload []byte) ([]byte, int) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(method, baseURL+path, bytes.NewReader(payload))
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return body, resp.StatusCode
}
