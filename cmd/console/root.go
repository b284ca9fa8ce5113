package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"faq-chatbot-be/internal/bootstrap"
	"faq-chatbot-be/internal/config"
	"faq-chatbot-be/internal/model"
	"faq-chatbot-be/internal/pkg/logger"
	"faq-chatbot-be/pkg/database"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const quitCommand = "/quit"

type responder interface {
	Respond(ctx context.Context, userID, text string) string
}

func newRootCmd() *cobra.Command {
	var userID string
	var message string
	var logPath string

	cmd := &cobra.Command{
		Use:   "console",
		Short: "Chat with the FAQ bot from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			db, err := database.NewQuietGormDB(cfg.Database.Driver, cfg.Database.Connection)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			if cfg.Database.Driver == database.DriverSQLite {
				if err := db.AutoMigrate(model.All()...); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
			}

			container := bootstrap.NewContainer(db, cfg, bootstrap.Options{
				Logger:      logger.NewIsolatedLogger(logPath),
				SkipNats:    true,
				SyncChatLog: true,
			})
			defer container.Close()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			// Subscribed before the first message so no chat log is dropped.
			if err := container.ConsumerService.Consume(ctx); err != nil {
				return fmt.Errorf("start chat log consumer: %w", err)
			}

			if message != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), container.Orchestrator.Respond(ctx, userID, message))
				return nil
			}
			return runRepl(ctx, container.Orchestrator, userID, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&userID, "user", "console", "User id the conversation is stored under.")
	cmd.Flags().StringVarP(&message, "message", "m", "", "Send a single message and exit.")
	cmd.Flags().StringVar(&logPath, "log-file", "logs/console.log", "Where pipeline logs are written.")
	return cmd
}

// runRepl reads one message per line until EOF or /quit
func runRepl(ctx context.Context, bot responder, userID string, in io.Reader, out io.Writer) error {
	prompt := color.New(color.FgCyan, color.Bold)
	reply := color.New(color.FgGreen)

	_, _ = color.New(color.FgYellow).Fprintf(out, "FAQ bot console (user %s). Type %s to exit.\n", userID, quitCommand)

	scanner := bufio.NewScanner(in)
	for {
		_, _ = prompt.Fprint(out, "you> ")
		if !scanner.Scan() {
			_, _ = fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == quitCommand {
			return nil
		}

		_, _ = reply.Fprintf(out, "bot> %s\n", bot.Respond(ctx, userID, line))
	}
}
