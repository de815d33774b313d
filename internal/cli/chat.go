package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PabloGalante/farum-calm/internal/app/chat"
	"github.com/PabloGalante/farum-calm/internal/domain"
)

func addChat(topLevel *cobra.Command, a *app) {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk with Farum. An empty line or Ctrl-D ends the chat.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := a.chatService(ctx)
			if err != nil {
				return err
			}

			conv := chat.NewConversation(svc, a.cfg.Now())
			_, _ = fmt.Fprintln(a.out, accent("Farum: ")+conv.Messages()[0].Content)

			sc := bufio.NewScanner(a.in)
			for {
				_, _ = fmt.Fprint(a.out, bold("You: "))
				if !sc.Scan() || strings.TrimSpace(sc.Text()) == "" {
					_, _ = fmt.Fprintln(a.out, faint("\nTake care."))
					return sc.Err()
				}

				reply, err := conv.Send(ctx, sc.Text())
				if err != nil && !errors.Is(err, domain.ErrRemoteService) {
					return err
				}
				_, _ = fmt.Fprintln(a.out, accent("Farum: ")+reply.Content)
				if err != nil {
					_, _ = fmt.Fprintln(a.out, warning("Couldn't reach the server. Check your connection."))
				}
			}
		},
	}
	topLevel.AddCommand(cmd)
}
