package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"vendeya/internal/domain/entity"
	"vendeya/pkg/errors"
)

func newChatCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Read and send messages",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List conversations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Messaging.LoadConversations(cmd.Context()); err != nil {
				return err
			}
			for _, conv := range app.Messaging.Conversations() {
				marker := " "
				if conv.UnreadCount > 0 {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %d\t%s\t%s\t%s\n",
					marker, conv.ID, conv.CounterpartName,
					app.Messaging.FormatTimestamp(conv.UpdatedAt), conv.LastMessage)
			}
			return nil
		},
	}

	open := &cobra.Command{
		Use:   "open <conversation-id>",
		Short: "Open a conversation and show its messages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			conv, err := findConversation(app, cmd, id)
			if err != nil {
				return err
			}
			if err := app.Messaging.OpenConversation(cmd.Context(), *conv); err != nil {
				return err
			}
			printMessages(app, cmd)
			return nil
		},
	}

	var sendTo int
	send := &cobra.Command{
		Use:   "send <text>",
		Short: "Send a message in a conversation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if sendTo > 0 {
				conv, err := findConversation(app, cmd, sendTo)
				if err != nil {
					return err
				}
				if err := app.Messaging.OpenConversation(cmd.Context(), *conv); err != nil {
					return err
				}
			}
			if err := app.Messaging.SendMessage(cmd.Context(), text); err != nil {
				return err
			}
			printMessages(app, cmd)
			return nil
		},
	}
	send.Flags().IntVar(&sendTo, "conversation", 0, "conversation id to send in")

	start := &cobra.Command{
		Use:   "start <user-id> <text>",
		Short: "Start a conversation with a first message",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			counterpartID, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			text := strings.Join(args[1:], " ")
			if err := app.Messaging.StartConversation(cmd.Context(), counterpartID, text); err != nil {
				return err
			}
			printMessages(app, cmd)
			return nil
		},
	}

	search := &cobra.Command{
		Use:   "search <term>",
		Short: "Search users to message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Messaging.SearchCounterparts(cmd.Context(), args[0]); err != nil {
				return err
			}
			for _, user := range app.Messaging.SearchResults() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", user.ID, user.Name, user.Email)
			}
			return nil
		},
	}

	unread := &cobra.Command{
		Use:   "unread",
		Short: "Show the unread message count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Messaging.RefreshUnread(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d mensajes sin leer\n", app.Messaging.Unread())
			return nil
		},
	}

	cmd.AddCommand(list, open, send, start, search, unread)
	return cmd
}

func findConversation(app *App, cmd *cobra.Command, id int) (*entity.Conversation, error) {
	if err := app.Messaging.LoadConversations(cmd.Context()); err != nil {
		return nil, err
	}
	for _, conv := range app.Messaging.Conversations() {
		if conv.ID == id {
			return &conv, nil
		}
	}
	return nil, errors.NotFound("Conversación no encontrada", nil)
}

func printMessages(app *App, cmd *cobra.Command) {
	me := 0
	if user := app.Session.User(); user != nil {
		me = user.ID
	}
	for _, msg := range app.Messaging.Messages() {
		who := "ellos"
		if msg.SenderID == me {
			who = "yo"
		}
		suffix := ""
		if msg.IsPending() {
			suffix = " (enviando…)"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s: %s%s\n",
			app.Messaging.FormatTimestamp(msg.CreatedAt), who, msg.Content, suffix)
	}
}
