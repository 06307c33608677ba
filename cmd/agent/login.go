package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eldarkhalilouv/ai-browser-agent/pkg/browser"
)

// newLoginCommand opens a headed browser so the user can sign in manually,
// then saves the session state for later agent runs.
func newLoginCommand() *cobra.Command {
	var loginURL string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Open a browser to sign in manually and save the session",
		Long: "Opens a visible browser window. Sign in to the sites you need, then press " +
			"Enter in the terminal to save cookies and local storage for future runs.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			cfg.Headless = false

			service, err := browser.NewService(cfg)
			if err != nil {
				return err
			}
			if err := service.Start(); err != nil {
				return err
			}
			defer service.Stop()

			if loginURL != "" {
				fmt.Println(service.OpenURL(context.Background(), loginURL))
			}

			fmt.Println(taskStyle.Render("Sign in in the browser window, then press Enter here to save the session."))
			bufio.NewReader(os.Stdin).ReadString('\n')

			if err := service.SaveSession(); err != nil {
				return err
			}
			fmt.Printf("Session saved to %s\n", cfg.StorageStatePath)
			return nil
		},
	}

	cmd.Flags().StringVar(&loginURL, "url", "", "URL to open before signing in")
	return cmd
}
