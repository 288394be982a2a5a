// Command partnerdesk is a small operator CLI for the partnerdesk API. It
// talks to a running instance over HTTP with a bearer access token.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type client struct {
	BaseURL   string
	Token     string
	OutFormat string // "json" | "text"
	HTTP      *http.Client
}

func (c *client) do(method, path string, body []byte) (int, []byte, error) {
	u := strings.TrimRight(c.BaseURL, "/") + path
	req, err := http.NewRequest(method, u, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b, nil
}

func (c *client) print(status int, body []byte) {
	if c.OutFormat == "json" {
		var v any
		if json.Unmarshal(body, &v) == nil {
			p, _ := json.MarshalIndent(v, "", "  ")
			fmt.Println(string(p))
			return
		}
	}
	if len(body) > 0 {
		fmt.Println(string(body))
	} else {
		fmt.Printf("status=%d\n", status)
	}
}

func (c *client) expect2xx(op string, status int, body []byte) error {
	if status/100 != 2 {
		return fmt.Errorf("%s failed: status=%d body=%s", op, status, string(body))
	}
	return nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func main() {
	var (
		baseURL = envOr("PARTNERDESK_URL", "http://localhost:8080")
		token   = envOr("PARTNERDESK_TOKEN", "")
		out     = envOr("PARTNERDESK_OUT", "text")
	)

	root := &cobra.Command{
		Use:   "partnerdesk",
		Short: "Operator CLI for the partnerdesk API",
	}
	root.PersistentFlags().StringVar(&baseURL, "url", baseURL, "API base URL (env PARTNERDESK_URL)")
	root.PersistentFlags().StringVar(&token, "token", token, "Bearer access token (env PARTNERDESK_TOKEN)")
	root.PersistentFlags().StringVar(&out, "out", out, "Output format: json|text")

	cl := &client{HTTP: &http.Client{Timeout: 30 * time.Second}}
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cl.BaseURL, cl.Token, cl.OutFormat = baseURL, token, out
	}

	// login prints the token pair so it can be exported to the env.
	var loginEmail, loginPassword string
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Obtain a token pair with email and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, _ := json.Marshal(map[string]string{"email": loginEmail, "password": loginPassword})
			status, body, err := cl.do("POST", "/v1/auth/login", b)
			if err != nil {
				return err
			}
			if err := cl.expect2xx("login", status, body); err != nil {
				return err
			}
			cl.print(status, body)
			return nil
		},
	}
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "User administration (requires OWNER or ADMIN token)",
	}

	var listRole, listQuery string
	usersListCmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			if listRole != "" {
				q.Set("role", listRole)
			}
			if listQuery != "" {
				q.Set("q", listQuery)
			}
			path := "/v1/admin/users"
			if len(q) > 0 {
				path += "?" + q.Encode()
			}
			status, body, err := cl.do("GET", path, nil)
			if err != nil {
				return err
			}
			if err := cl.expect2xx("users list", status, body); err != nil {
				return err
			}
			cl.print(status, body)
			return nil
		},
	}
	usersListCmd.Flags().StringVar(&listRole, "role", "", "filter by role (OWNER|ADMIN|STAFF|MEMBER)")
	usersListCmd.Flags().StringVar(&listQuery, "q", "", "email/name substring filter")

	var createEmail, createPassword, createName, createRole string
	usersCreateCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, _ := json.Marshal(map[string]any{
				"email":    createEmail,
				"password": createPassword,
				"name":     createName,
				"role":     createRole,
			})
			status, body, err := cl.do("POST", "/v1/admin/users", b)
			if err != nil {
				return err
			}
			if err := cl.expect2xx("users create", status, body); err != nil {
				return err
			}
			cl.print(status, body)
			return nil
		},
	}
	usersCreateCmd.Flags().StringVar(&createEmail, "email", "", "email")
	usersCreateCmd.Flags().StringVar(&createPassword, "password", "", "initial password")
	usersCreateCmd.Flags().StringVar(&createName, "name", "", "display name")
	usersCreateCmd.Flags().StringVar(&createRole, "role", "MEMBER", "role (OWNER|ADMIN|STAFF|MEMBER)")
	_ = usersCreateCmd.MarkFlagRequired("email")
	_ = usersCreateCmd.MarkFlagRequired("password")

	var deactivateID string
	usersDeactivateCmd := &cobra.Command{
		Use:   "deactivate",
		Short: "Deactivate a user account",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, _ := json.Marshal(map[string]any{"active": false})
			status, body, err := cl.do("PUT", "/v1/admin/users/"+deactivateID, b)
			if err != nil {
				return err
			}
			if err := cl.expect2xx("users deactivate", status, body); err != nil {
				return err
			}
			cl.print(status, body)
			return nil
		},
	}
	usersDeactivateCmd.Flags().StringVar(&deactivateID, "id", "", "user id")
	_ = usersDeactivateCmd.MarkFlagRequired("id")

	var deleteID string
	usersDeleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := cl.do("DELETE", "/v1/admin/users/"+deleteID, nil)
			if err != nil {
				return err
			}
			if err := cl.expect2xx("users delete", status, body); err != nil {
				return err
			}
			cl.print(status, body)
			return nil
		},
	}
	usersDeleteCmd.Flags().StringVar(&deleteID, "id", "", "user id")
	_ = usersDeleteCmd.MarkFlagRequired("id")

	postsCmd := &cobra.Command{
		Use:   "posts",
		Short: "Post operations",
	}

	var postsStatus string
	postsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List posts visible to the token's role",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/v1/posts"
			if postsStatus != "" {
				path += "?status=" + url.QueryEscape(postsStatus)
			}
			status, body, err := cl.do("GET", path, nil)
			if err != nil {
				return err
			}
			if err := cl.expect2xx("posts list", status, body); err != nil {
				return err
			}
			cl.print(status, body)
			return nil
		},
	}
	postsListCmd.Flags().StringVar(&postsStatus, "status", "", "filter by status (DRAFT|PUBLISHED|ARCHIVED)")

	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Check service readiness",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := cl.do("GET", "/readyz", nil)
			if err != nil {
				return err
			}
			if err := cl.expect2xx("health", status, body); err != nil {
				return err
			}
			if cl.OutFormat == "text" {
				fmt.Println("ready")
				return nil
			}
			cl.print(status, body)
			return nil
		},
	}

	usersCmd.AddCommand(usersListCmd, usersCreateCmd, usersDeactivateCmd, usersDeleteCmd)
	postsCmd.AddCommand(postsListCmd)
	root.AddCommand(loginCmd, usersCmd, postsCmd, healthCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
