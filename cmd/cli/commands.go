package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
)

var (
	registerEmail      string
	registerUserID     string
	registerBirthDate  string
	registerFirstName  string
	registerLastName   string
	registerPosition   string
	registerClaimToken string
)

func init() {
	registerCmd.Flags().StringVar(&registerUserID, "user-id", "", "The auth user id of the registrant")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "The registrant's email")
	registerCmd.Flags().StringVar(&registerBirthDate, "birth-date", "", "Birth date (YYYY-MM-DD)")
	registerCmd.Flags().StringVar(&registerFirstName, "first-name", "", "First name")
	registerCmd.Flags().StringVar(&registerLastName, "last-name", "", "Last name")
	registerCmd.Flags().StringVar(&registerPosition, "position", "", "Preferred position")
	registerCmd.Flags().StringVar(&registerClaimToken, "claim-token", "", "Claim token handed out by an admin")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(suggestionsCmd)
	rootCmd.AddCommand(issueTokenCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Run a registration resolution pass",
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := map[string]string{
			"auth_user_id": registerUserID,
			"email":        registerEmail,
			"birth_date":   registerBirthDate,
			"first_name":   registerFirstName,
			"last_name":    registerLastName,
			"position":     registerPosition,
			"claim_token":  registerClaimToken,
		}
		return performPostRequest("/register", payload)
	},
}

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the profiles in the roster store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/profiles")
	},
}

var suggestionsCmd = &cobra.Command{
	Use:   "suggestions",
	Short: "List pending merge suggestions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/suggestions")
	},
}

var issueTokenCmd = &cobra.Command{
	Use:   "issue-token [profile-id]",
	Short: "Issue a claim token for an unlinked profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/issue-token", map[string]string{"profile_id": args[0]})
	},
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "List resolution audit entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/audit")
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Get durable operational counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/stats")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string, payload any) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
